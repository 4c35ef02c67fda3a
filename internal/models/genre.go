package models

// Genre is identified by its name (case-sensitive natural key).
type Genre struct {
	Name  string  `gorm:"primaryKey;size:100" json:"name"`
	Games []*Game `gorm:"many2many:game_genres;" json:"-"`
}
