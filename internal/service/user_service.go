package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloudzz/internal/cache"
	"cloudzz/internal/models"
	"cloudzz/internal/observability"
	"cloudzz/internal/repository"
	"cloudzz/internal/validation"

	"gorm.io/gorm"
)

const publicProfileTTL = 5 * time.Minute

// UserService owns profile reads and writes, including the public profile
// page and its cache.
type UserService struct {
	userRepo repository.UserRepository
}

// UpdateProfileInput is a partial patch; nil fields are left untouched.
type UpdateProfileInput struct {
	UserID    uint
	Username  *string
	Bio       *string
	Theme     *models.Theme
	AvatarURL *string
	BannerURL *string
}

// PublicLink is the anonymous view of a link.
type PublicLink struct {
	ID       uint            `json:"id"`
	Title    string          `json:"title"`
	URL      string          `json:"url"`
	Platform models.Platform `json:"platform,omitempty"`
	Position int             `json:"order"`
}

// PublicProfile is the anonymous view of a user's page: no email, no ids
// beyond what the page needs.
type PublicProfile struct {
	Username  string       `json:"username"`
	Bio       string       `json:"bio"`
	Theme     models.Theme `json:"theme"`
	AvatarURL string       `json:"avatarUrl"`
	BannerURL string       `json:"bannerUrl"`
	Links     []PublicLink `json:"links"`
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile applies the provided fields to the caller's profile. A
// username change first probes for an existing owner of the name; the unique
// index on users.username is the backstop if two requests race past the
// probe.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	oldUsername := user.Username

	if in.Username != nil && *in.Username != user.Username {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByUsername(ctx, *in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, models.NewConflictError("Username taken")
		}
		user.Username = *in.Username
	}
	if in.Bio != nil {
		if err := validation.ValidateBio(*in.Bio); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Bio = *in.Bio
	}
	if in.Theme != nil {
		if !models.ValidTheme(*in.Theme) {
			return nil, models.NewValidationError("Invalid theme")
		}
		user.Theme = *in.Theme
	}
	if in.AvatarURL != nil {
		user.AvatarURL = *in.AvatarURL
	}
	if in.BannerURL != nil {
		user.BannerURL = *in.BannerURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewConflictError("Username taken")
		}
		return nil, err
	}

	_ = cache.Invalidate(ctx, profileCacheKey(oldUsername))
	if user.Username != oldUsername {
		_ = cache.Invalidate(ctx, profileCacheKey(user.Username))
	}
	return user, nil
}

// GetPublicProfile returns the anonymous view of a user's page, cache-aside
// with a short TTL. The cache is best-effort: a Redis outage degrades to DB
// reads.
func (s *UserService) GetPublicProfile(ctx context.Context, username string) (*PublicProfile, error) {
	var profile PublicProfile
	hit, err := cache.CacheAside(ctx, profileCacheKey(username), &profile, publicProfileTTL, func() error {
		user, err := s.userRepo.GetByUsernameWithLinks(ctx, username)
		if err != nil {
			return err
		}
		if user == nil {
			return models.NewNotFoundError("Profile", username)
		}

		links := make([]PublicLink, 0, len(user.Links))
		for _, l := range user.Links {
			links = append(links, PublicLink{
				ID:       l.ID,
				Title:    l.Title,
				URL:      l.URL,
				Platform: l.Platform,
				Position: l.Position,
			})
		}
		profile = PublicProfile{
			Username:  user.Username,
			Bio:       user.Bio,
			Theme:     user.Theme,
			AvatarURL: user.AvatarURL,
			BannerURL: user.BannerURL,
			Links:     links,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if hit {
		observability.PublicProfileViews.WithLabelValues("hit").Inc()
	} else {
		observability.PublicProfileViews.WithLabelValues("miss").Inc()
	}
	return &profile, nil
}

// InvalidatePublicProfile drops the cached page for a user, looked up by id.
// Called after link mutations so the public page never serves a stale list
// for longer than one request.
func (s *UserService) InvalidatePublicProfile(ctx context.Context, userID uint) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return
	}
	_ = cache.Invalidate(ctx, profileCacheKey(user.Username))
}

func profileCacheKey(username string) string {
	return fmt.Sprintf("profile:%s", username)
}
