package models

import "time"

// Platform is an optional tag on a link so the frontend can show a matching
// icon. Free-form values are stored as-is.
type Platform string

const (
	PlatformGitHub    Platform = "github"
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformYouTube   Platform = "youtube"
	PlatformTwitch    Platform = "twitch"
	PlatformFacebook  Platform = "facebook"
	PlatformTikTok    Platform = "tiktok"
	PlatformDiscord   Platform = "discord"
	PlatformSpotify   Platform = "spotify"
	PlatformOther     Platform = "other"
)

// Link is one entry on a user's page. Position is its zero-based slot in the
// page order; new links are appended at the end.
type Link struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"not null" json:"title"`
	URL       string    `gorm:"not null" json:"url"`
	Platform  Platform  `gorm:"type:varchar(30)" json:"platform,omitempty"`
	Position  int       `gorm:"not null;default:0" json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Link) TableName() string {
	return "links"
}
