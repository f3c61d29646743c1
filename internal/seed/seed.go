// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"cloudzz/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for a seeding run.
type Options struct {
	NumUsers     int
	LinksPerUser int
	ShouldClean  bool
}

var themes = []models.Theme{
	models.ThemeMinimal, models.ThemeDark, models.ThemeCyberpunk, models.ThemeApple,
	models.ThemeMidnight, models.ThemeSunset, models.ThemeForest, models.ThemeOcean,
	models.ThemeGlitch, models.ThemeRetro, models.ThemeMonochrome,
}

var platforms = []models.Platform{
	models.PlatformGitHub, models.PlatformTwitter, models.PlatformInstagram,
	models.PlatformLinkedIn, models.PlatformYouTube, models.PlatformTwitch,
	models.PlatformFacebook, models.PlatformTikTok, models.PlatformDiscord,
	models.PlatformSpotify, models.PlatformOther,
}

// Seeder builds demo accounts with populated link pages.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run executes one seeding pass per the options: an optional wipe followed by
// user and link creation.
func (s *Seeder) Run(opts Options) ([]models.User, error) {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return nil, fmt.Errorf("cleanup failed: %w", err)
		}
	}
	return s.SeedUsers(opts.NumUsers, opts.LinksPerUser)
}

// ClearAll removes all seeded rows. Links go first because of the FK.
func (s *Seeder) ClearAll() error {
	if err := s.db.Exec("DELETE FROM links").Error; err != nil {
		return err
	}
	return s.db.Exec("DELETE FROM users").Error
}

// SeedUsers creates n demo users, each with a populated link page. All demo
// users share the password "password123".
func (s *Seeder) SeedUsers(n, linksPerUser int) ([]models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Username:  fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:     gofakeit.Email(),
			Password:  string(hashedPassword),
			Bio:       gofakeit.Sentence(10),
			Theme:     themes[s.rng.Intn(len(themes))],
			AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %d: %w", i, err)
		}

		if err := s.seedLinks(&user, linksPerUser); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	log.Printf("seeded %d users with up to %d links each", len(users), linksPerUser)
	return users, nil
}

// seedLinks appends a randomized page of links for the user. Positions are
// the creation sequence, same as the API produces.
func (s *Seeder) seedLinks(user *models.User, maxLinks int) error {
	n := 1 + s.rng.Intn(maxLinks)
	for pos := 0; pos < n; pos++ {
		link := models.Link{
			UserID:   user.ID,
			Title:    gofakeit.Sentence(3),
			URL:      gofakeit.URL(),
			Platform: platforms[s.rng.Intn(len(platforms))],
			Position: pos,
		}
		if err := s.db.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to create link for user %d: %w", user.ID, err)
		}
	}
	return nil
}
