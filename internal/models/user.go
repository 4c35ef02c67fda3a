package models

import (
	"strings"
	"time"
)

// User represents a registered account. Username is the natural key and is
// stored lowercased; DisplayName keeps the casing the user typed at signup.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:255;uniqueIndex;not null" json:"username"`
	DisplayName  string    `gorm:"size:255;not null" json:"display_name"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"joined_at"`

	Reviews    []*Review `json:"-"`
	Wishlist   []*Game   `gorm:"many2many:wishlist_games;" json:"-"`
	Favourites []*Game   `gorm:"many2many:user_favourite_games;" json:"-"`
}

// NormalizeUsername maps a username to its storage form. All lookups and
// uniqueness checks go through this, so comparison is case-insensitive
// everywhere without per-call string juggling.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
