package models

// Publisher is identified by its name (natural key).
type Publisher struct {
	Name  string  `gorm:"primaryKey;size:255" json:"name"`
	Games []*Game `gorm:"foreignKey:PublisherName;references:Name" json:"-"`
}
