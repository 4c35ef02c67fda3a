package models

import "time"

// Game represents a catalogue entry. The ID comes from the ingested dataset
// and is immutable once created.
type Game struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:255;not null;index" json:"title"`
	Price           float64   `json:"price"`
	ReleaseDate     time.Time `gorm:"index" json:"release_date"`
	Description     string    `json:"description"`
	ImageURL        string    `gorm:"size:512" json:"image_url"`
	WebsiteURL      string    `gorm:"size:512" json:"website_url"`
	SupportsWindows bool      `json:"supports_windows"`
	SupportsMac     bool      `json:"supports_mac"`
	SupportsLinux   bool      `json:"supports_linux"`

	PublisherName string     `gorm:"size:255;index" json:"publisher"`
	Publisher     *Publisher `gorm:"foreignKey:PublisherName;references:Name" json:"-"`
	Genres        []*Genre   `gorm:"many2many:game_genres;" json:"genres,omitempty"`
}
