// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Theme identifies one of the built-in page styles a user can pick.
type Theme string

const (
	ThemeMinimal    Theme = "minimal"
	ThemeDark       Theme = "dark"
	ThemeCyberpunk  Theme = "cyberpunk"
	ThemeApple      Theme = "apple"
	ThemeMidnight   Theme = "midnight"
	ThemeSunset     Theme = "sunset"
	ThemeForest     Theme = "forest"
	ThemeOcean      Theme = "ocean"
	ThemeGlitch     Theme = "glitch"
	ThemeRetro      Theme = "retro"
	ThemeMonochrome Theme = "monochrome"
)

// Themes is the set of selectable page styles.
var Themes = map[Theme]struct{}{
	ThemeMinimal:    {},
	ThemeDark:       {},
	ThemeCyberpunk:  {},
	ThemeApple:      {},
	ThemeMidnight:   {},
	ThemeSunset:     {},
	ThemeForest:     {},
	ThemeOcean:      {},
	ThemeGlitch:     {},
	ThemeRetro:      {},
	ThemeMonochrome: {},
}

// ValidTheme reports whether t is a selectable theme.
func ValidTheme(t Theme) bool {
	_, ok := Themes[t]
	return ok
}

// User represents an account and the profile behind its public page.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Bio       string         `json:"bio"`
	Theme     Theme          `gorm:"type:varchar(20);default:'minimal'" json:"theme"`
	AvatarURL string         `json:"avatarUrl"`
	BannerURL string         `json:"bannerUrl"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Links     []Link         `gorm:"foreignKey:UserID" json:"links,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
