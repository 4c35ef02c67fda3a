package models

import "time"

// Review limits: ratings are whole stars, comments are capped at 500 runes.
const (
	MinRating        = 0
	MaxRating        = 5
	MaxCommentLength = 500
)

// Review is a single user's rating of a single game. The (UserID, GameID)
// pair is unique: one review per user per game.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reviews_user_game" json:"user_id"`
	GameID    uint      `gorm:"not null;uniqueIndex:idx_reviews_user_game" json:"game_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"size:500" json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Game *Game `gorm:"foreignKey:GameID" json:"-"`
}
