package repository

import (
	"context"

	"cloudzz/internal/models"

	"gorm.io/gorm"
)

// LinkOrder is a single (link id, new position) pair of a bulk reorder.
// The wire name is "order"; the column is "position" to dodge the SQL keyword.
type LinkOrder struct {
	ID       uint `json:"id"`
	Position int  `json:"order"`
}

// LinkRepository defines the interface for link data operations
type LinkRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Link, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	IDsByUser(ctx context.Context, userID uint) ([]uint, error)
	GetByID(ctx context.Context, id uint) (*models.Link, error)
	Create(ctx context.Context, link *models.Link) error
	Update(ctx context.Context, link *models.Link) error
	Delete(ctx context.Context, id uint) error
	Reorder(ctx context.Context, orders []LinkOrder) error
}

type linkRepository struct {
	db *gorm.DB
}

// NewLinkRepository creates a new link repository
func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{db: db}
}

func (r *linkRepository) ListByUser(ctx context.Context, userID uint) ([]models.Link, error) {
	var links []models.Link
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&links).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return links, nil
}

func (r *linkRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Link{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *linkRepository) IDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Link{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *linkRepository) GetByID(ctx context.Context, id uint) (*models.Link, error) {
	var link models.Link
	if err := r.db.WithContext(ctx).First(&link, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("Link", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &link, nil
}

func (r *linkRepository) Create(ctx context.Context, link *models.Link) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *linkRepository) Update(ctx context.Context, link *models.Link) error {
	if err := r.db.WithContext(ctx).Save(link).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *linkRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Link{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	// Deleting an already-gone link is a NotFound, not a silent success.
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Link", id)
	}
	return nil
}

// Reorder applies all (id, position) pairs in a single transaction so that a
// concurrent reader never observes a half-applied order.
func (r *linkRepository) Reorder(ctx context.Context, orders []LinkOrder) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, o := range orders {
			if err := tx.Model(&models.Link{}).
				Where("id = ?", o.ID).
				Update("position", o.Position).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
