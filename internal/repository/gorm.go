package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"gamevault/backend/internal/apperror"
	"gamevault/backend/internal/models"
)

// GormRepository is the persistent backend. Each call runs in its own GORM
// session; uniqueness is enforced by a pre-insert lookup on the natural key,
// backed by the schema's unique constraints. Entities come back reconstructed
// from rows, never as shared references.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository wraps an open GORM connection.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// region --- Publishers ---

func (r *GormRepository) AddPublisher(p *models.Publisher) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return addPublisherTx(tx, p)
	})
}

func (r *GormRepository) AddPublishers(ps []*models.Publisher) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range ps {
			if err := addPublisherTx(tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func addPublisherTx(tx *gorm.DB, p *models.Publisher) error {
	var count int64
	if err := tx.Model(&models.Publisher{}).Where("name = ?", p.Name).Count(&count).Error; err != nil {
		return apperror.NewDatabase("failed to query publishers", err)
	}
	if count > 0 {
		return apperror.NewConflict(fmt.Sprintf("publisher %q already exists", p.Name))
	}
	if err := tx.Create(p).Error; err != nil {
		return apperror.NewDatabase("failed to create publisher", err)
	}
	return nil
}

func (r *GormRepository) GetPublisher(name string) (*models.Publisher, error) {
	var p models.Publisher
	if err := r.db.Where("name = ?", name).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound(fmt.Sprintf("publisher %q not found", name))
		}
		return nil, apperror.NewDatabase("failed to query publisher", err)
	}
	return &p, nil
}

// endregion

// region --- Genres ---

func (r *GormRepository) AddGenre(g *models.Genre) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return addGenreTx(tx, g)
	})
}

func (r *GormRepository) AddGenres(gs []*models.Genre) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, g := range gs {
			if err := addGenreTx(tx, g); err != nil {
				return err
			}
		}
		return nil
	})
}

func addGenreTx(tx *gorm.DB, g *models.Genre) error {
	var count int64
	if err := tx.Model(&models.Genre{}).Where("name = ?", g.Name).Count(&count).Error; err != nil {
		return apperror.NewDatabase("failed to query genres", err)
	}
	if count > 0 {
		return apperror.NewConflict(fmt.Sprintf("genre %q already exists", g.Name))
	}
	if err := tx.Create(g).Error; err != nil {
		return apperror.NewDatabase("failed to create genre", err)
	}
	return nil
}

func (r *GormRepository) GetGenre(name string) (*models.Genre, error) {
	var g models.Genre
	if err := r.db.Where("name = ?", name).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound(fmt.Sprintf("genre %q not found", name))
		}
		return nil, apperror.NewDatabase("failed to query genre", err)
	}
	return &g, nil
}

func (r *GormRepository) GetGenres() ([]*models.Genre, error) {
	var genres []*models.Genre
	if err := r.db.Order("name").Find(&genres).Error; err != nil {
		return nil, apperror.NewDatabase("failed to query genres", err)
	}
	return genres, nil
}

// endregion

// region --- Games ---

func (r *GormRepository) AddGame(g *models.Game) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return addGameTx(tx, g)
	})
}

func (r *GormRepository) AddGames(gs []*models.Game) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, g := range gs {
			if err := addGameTx(tx, g); err != nil {
				return err
			}
		}
		return nil
	})
}

func addGameTx(tx *gorm.DB, g *models.Game) error {
	var count int64
	if err := tx.Model(&models.Game{}).Where("id = ?", g.ID).Count(&count).Error; err != nil {
		return apperror.NewDatabase("failed to query games", err)
	}
	if count > 0 {
		return apperror.NewConflict(fmt.Sprintf("game %d already exists", g.ID))
	}
	// FullSaveAssociations would re-save shared genres; let the join table
	// entries be created and skip upserting the referenced rows.
	if err := tx.Omit("Genres.*", "Publisher").Create(g).Error; err != nil {
		return apperror.NewDatabase("failed to create game", err)
	}
	return nil
}

func (r *GormRepository) GetGame(id uint) (*models.Game, error) {
	var g models.Game
	if err := r.db.Preload("Genres").First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound(fmt.Sprintf("game %d not found", id))
		}
		return nil, apperror.NewDatabase("failed to query game", err)
	}
	return &g, nil
}

func (r *GormRepository) GameCount() (int, error) {
	var count int64
	if err := r.db.Model(&models.Game{}).Count(&count).Error; err != nil {
		return 0, apperror.NewDatabase("failed to count games", err)
	}
	return int(count), nil
}

func (r *GormRepository) GameCountByGenre(genreName string) (int, error) {
	var count int64
	err := r.db.Model(&models.Game{}).
		Joins("JOIN game_genres ON game_genres.game_id = games.id").
		Where("game_genres.genre_name = ?", genreName).
		Count(&count).Error
	if err != nil {
		return 0, apperror.NewDatabase("failed to count games by genre", err)
	}
	return int(count), nil
}

func (r *GormRepository) Games(start, end int, order SortOrder) ([]*models.Game, error) {
	total, err := r.GameCount()
	if err != nil {
		return nil, err
	}
	start, end = clampRange(start, end, total)
	if start == end {
		return []*models.Game{}, nil
	}

	orderBy := "release_date ASC, id ASC"
	if order == SortNewest {
		orderBy = "release_date DESC, id ASC"
	}

	var games []*models.Game
	err = r.db.Preload("Genres").
		Order(orderBy).
		Offset(start).
		Limit(end - start).
		Find(&games).Error
	if err != nil {
		return nil, apperror.NewDatabase("failed to query games", err)
	}
	return games, nil
}

func (r *GormRepository) GamesByGenre(start, end int, genreName string) ([]*models.Game, error) {
	total, err := r.GameCountByGenre(genreName)
	if err != nil {
		return nil, err
	}
	start, end = clampRange(start, end, total)
	if start == end {
		return []*models.Game{}, nil
	}

	var games []*models.Game
	err = r.db.Preload("Genres").
		Joins("JOIN game_genres ON game_genres.game_id = games.id").
		Where("game_genres.genre_name = ?", genreName).
		Order("release_date ASC, id ASC").
		Offset(start).
		Limit(end - start).
		Find(&games).Error
	if err != nil {
		return nil, apperror.NewDatabase("failed to query games by genre", err)
	}
	return games, nil
}

func (r *GormRepository) SearchGames(term string, field SearchField) ([]*models.Game, error) {
	var column string
	switch field {
	case FieldTitle:
		column = "title"
	case FieldDescription:
		column = "description"
	case FieldPublisher:
		column = "publisher_name"
	default:
		return nil, apperror.NewInvalidKey("invalid search key")
	}

	// lower(...) LIKE keeps the match case-insensitive on both postgres and
	// the sqlite test driver, unlike ILIKE.
	pattern := "%" + strings.ToLower(term) + "%"
	var games []*models.Game
	err := r.db.Preload("Genres").
		Where("LOWER("+column+") LIKE ?", pattern).
		Order("id ASC").
		Find(&games).Error
	if err != nil {
		return nil, apperror.NewDatabase("failed to search games", err)
	}
	return games, nil
}

// endregion

// region --- Users ---

func (r *GormRepository) AddUser(u *models.User) error {
	u.Username = models.NormalizeUsername(u.Username)
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", u.Username).Count(&count).Error; err != nil {
			return apperror.NewDatabase("failed to query users", err)
		}
		if count > 0 {
			return apperror.NewConflict(fmt.Sprintf("user %q already exists", u.Username))
		}
		if err := tx.Create(u).Error; err != nil {
			return apperror.NewDatabase("failed to create user", err)
		}
		return nil
	})
}

func (r *GormRepository) GetUser(username string) (*models.User, error) {
	var u models.User
	err := r.db.Where("username = ?", models.NormalizeUsername(username)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound(fmt.Sprintf("user %q not found", username))
		}
		return nil, apperror.NewDatabase("failed to query user", err)
	}
	return &u, nil
}

// endregion

// region --- Reviews ---

func (r *GormRepository) AddReview(review *models.Review) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Review{}).
			Where("user_id = ? AND game_id = ?", review.UserID, review.GameID).
			Count(&count).Error
		if err != nil {
			return apperror.NewDatabase("failed to query reviews", err)
		}
		if count > 0 {
			return apperror.NewConflict("user has already reviewed this game")
		}
		if err := tx.Omit("User", "Game").Create(review).Error; err != nil {
			return apperror.NewDatabase("failed to create review", err)
		}
		return nil
	})
}

func (r *GormRepository) ReviewsForGame(gameID uint) ([]*models.Review, error) {
	reviews := []*models.Review{}
	err := r.db.Preload("User").
		Where("game_id = ?", gameID).
		Order("created_at ASC, id ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, apperror.NewDatabase("failed to query reviews", err)
	}
	return reviews, nil
}

func (r *GormRepository) ReviewsByUser(username string) ([]*models.Review, error) {
	u, err := r.GetUser(username)
	if err != nil {
		return nil, err
	}
	reviews := []*models.Review{}
	err = r.db.Preload("Game").
		Where("user_id = ?", u.ID).
		Order("created_at ASC, id ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, apperror.NewDatabase("failed to query reviews", err)
	}
	return reviews, nil
}

// endregion

// region --- Wishlist & favourites ---

func (r *GormRepository) WishlistGames(username string) ([]*models.Game, error) {
	u, err := r.GetUser(username)
	if err != nil {
		return nil, err
	}
	games := []*models.Game{}
	err = r.db.Preload("Genres").
		Joins("JOIN wishlist_games ON wishlist_games.game_id = games.id").
		Where("wishlist_games.user_id = ?", u.ID).
		Order("games.id ASC").
		Find(&games).Error
	if err != nil {
		return nil, apperror.NewDatabase("failed to query wishlist", err)
	}
	return games, nil
}

func (r *GormRepository) AddGameToWishlist(username string, gameID uint) error {
	u, err := r.GetUser(username)
	if err != nil {
		return err
	}
	game, err := r.GetGame(gameID)
	if err != nil {
		return err
	}

	var count int64
	err = r.db.Table("wishlist_games").
		Where("user_id = ? AND game_id = ?", u.ID, game.ID).
		Count(&count).Error
	if err != nil {
		return apperror.NewDatabase("failed to query wishlist", err)
	}
	if count > 0 {
		return apperror.NewConflict(fmt.Sprintf("game %d is already in the wishlist", gameID))
	}

	if err := r.db.Model(u).Association("Wishlist").Append(&models.Game{ID: game.ID}); err != nil {
		return apperror.NewDatabase("failed to add game to wishlist", err)
	}
	return nil
}

func (r *GormRepository) RemoveGameFromWishlist(username string, gameID uint) (bool, error) {
	u, err := r.GetUser(username)
	if err != nil {
		return false, err
	}

	var count int64
	err = r.db.Table("wishlist_games").
		Where("user_id = ? AND game_id = ?", u.ID, gameID).
		Count(&count).Error
	if err != nil {
		return false, apperror.NewDatabase("failed to query wishlist", err)
	}
	if count == 0 {
		return false, nil
	}

	if err := r.db.Model(u).Association("Wishlist").Delete(&models.Game{ID: gameID}); err != nil {
		return false, apperror.NewDatabase("failed to remove game from wishlist", err)
	}
	return true, nil
}

func (r *GormRepository) ToggleFavourite(username string, gameID uint) (bool, error) {
	u, err := r.GetUser(username)
	if err != nil {
		return false, err
	}
	game, err := r.GetGame(gameID)
	if err != nil {
		return false, err
	}

	var count int64
	err = r.db.Table("user_favourite_games").
		Where("user_id = ? AND game_id = ?", u.ID, game.ID).
		Count(&count).Error
	if err != nil {
		return false, apperror.NewDatabase("failed to query favourites", err)
	}

	if count > 0 {
		if err := r.db.Model(u).Association("Favourites").Delete(&models.Game{ID: game.ID}); err != nil {
			return false, apperror.NewDatabase("failed to remove favourite", err)
		}
		return false, nil
	}
	if err := r.db.Model(u).Association("Favourites").Append(&models.Game{ID: game.ID}); err != nil {
		return false, apperror.NewDatabase("failed to add favourite", err)
	}
	return true, nil
}

func (r *GormRepository) FavouriteGames(username string) ([]*models.Game, error) {
	u, err := r.GetUser(username)
	if err != nil {
		return nil, err
	}
	games := []*models.Game{}
	err = r.db.Preload("Genres").
		Joins("JOIN user_favourite_games ON user_favourite_games.game_id = games.id").
		Where("user_favourite_games.user_id = ?", u.ID).
		Order("games.id ASC").
		Find(&games).Error
	if err != nil {
		return nil, apperror.NewDatabase("failed to query favourites", err)
	}
	return games, nil
}

// endregion
