// Package service contains the application's business logic, sitting between
// HTTP handlers and repositories.
package service

import (
	"context"

	"cloudzz/internal/models"
	"cloudzz/internal/observability"
	"cloudzz/internal/repository"
	"cloudzz/internal/validation"
)

// LinkService owns CRUD and ordering rules for a user's links.
type LinkService struct {
	linkRepo repository.LinkRepository
}

// CreateLinkInput carries the fields for creating a link.
type CreateLinkInput struct {
	OwnerID  uint
	Title    string
	URL      string
	Platform models.Platform
}

// UpdateLinkInput is a partial patch; nil fields are left untouched.
type UpdateLinkInput struct {
	Title    *string
	URL      *string
	Position *int
	Platform *models.Platform
}

// NewLinkService returns a new LinkService.
func NewLinkService(linkRepo repository.LinkRepository) *LinkService {
	return &LinkService{linkRepo: linkRepo}
}

// List returns the owner's links sorted ascending by position.
func (s *LinkService) List(ctx context.Context, ownerID uint) ([]models.Link, error) {
	return s.linkRepo.ListByUser(ctx, ownerID)
}

// Create appends a new link to the end of the owner's list: its position is
// the owner's current link count.
func (s *LinkService) Create(ctx context.Context, in CreateLinkInput) (*models.Link, error) {
	if err := validation.ValidateLinkTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateLinkURL(in.URL); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	count, err := s.linkRepo.CountByUser(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}

	link := &models.Link{
		UserID:   in.OwnerID,
		Title:    in.Title,
		URL:      in.URL,
		Platform: in.Platform,
		Position: int(count),
	}
	if err := s.linkRepo.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Update applies the provided fields to a link the caller owns. A link owned
// by somebody else reports NotFound, same as a missing id, so callers cannot
// probe for other users' link ids.
func (s *LinkService) Update(ctx context.Context, ownerID, linkID uint, in UpdateLinkInput) (*models.Link, error) {
	link, err := s.ownedLink(ctx, ownerID, linkID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := validation.ValidateLinkTitle(*in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		link.Title = *in.Title
	}
	if in.URL != nil {
		if err := validation.ValidateLinkURL(*in.URL); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		link.URL = *in.URL
	}
	if in.Position != nil {
		if *in.Position < 0 {
			return nil, models.NewValidationError("position must not be negative")
		}
		link.Position = *in.Position
	}
	if in.Platform != nil {
		link.Platform = *in.Platform
	}

	if err := s.linkRepo.Update(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Delete removes a link the caller owns, with the same ownership masking as
// Update. Deleting an already-gone link reports NotFound.
func (s *LinkService) Delete(ctx context.Context, ownerID, linkID uint) error {
	if _, err := s.ownedLink(ctx, ownerID, linkID); err != nil {
		return err
	}
	return s.linkRepo.Delete(ctx, linkID)
}

// Reorder applies a batch of (id, position) pairs atomically. If any id in
// the batch does not belong to the caller the whole batch is rejected with
// Forbidden and nothing is written.
func (s *LinkService) Reorder(ctx context.Context, ownerID uint, orders []repository.LinkOrder) error {
	if len(orders) == 0 {
		return nil
	}
	for _, o := range orders {
		if o.Position < 0 {
			return models.NewValidationError("position must not be negative")
		}
	}

	ownedIDs, err := s.linkRepo.IDsByUser(ctx, ownerID)
	if err != nil {
		return err
	}
	owned := make(map[uint]struct{}, len(ownedIDs))
	for _, id := range ownedIDs {
		owned[id] = struct{}{}
	}
	for _, o := range orders {
		if _, ok := owned[o.ID]; !ok {
			observability.LinkReordersTotal.WithLabelValues("rejected").Inc()
			return models.NewForbiddenError("Unauthorized access to some links")
		}
	}

	if err := s.linkRepo.Reorder(ctx, orders); err != nil {
		return err
	}
	observability.LinkReordersTotal.WithLabelValues("applied").Inc()
	return nil
}

// ownedLink loads a link and masks foreign ownership as NotFound.
func (s *LinkService) ownedLink(ctx context.Context, ownerID, linkID uint) (*models.Link, error) {
	link, err := s.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if link.UserID != ownerID {
		return nil, models.NewNotFoundError("Link", linkID)
	}
	return link, nil
}
