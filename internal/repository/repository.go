// Package repository defines the storage contract for the game catalogue and
// its two implementations: a transient in-memory store and a persistent
// GORM-backed store. Both honor identical semantics for pagination, sorting,
// uniqueness, and relationship updates; the shared contract tests hold them to
// it.
package repository

import (
	"gamevault/backend/internal/apperror"
	"gamevault/backend/internal/models"
)

// SortOrder selects the release-date ordering of a library listing.
type SortOrder int

const (
	// SortNewest orders by release date descending.
	SortNewest SortOrder = iota
	// SortOldest orders by release date ascending.
	SortOldest
)

// ParseSortOrder resolves the wire-level sort key once at the boundary.
func ParseSortOrder(key string) (SortOrder, error) {
	switch key {
	case "Newest", "newest":
		return SortNewest, nil
	case "Oldest", "oldest":
		return SortOldest, nil
	default:
		return SortNewest, apperror.NewInvalidKey("invalid sort key: " + key)
	}
}

func (o SortOrder) String() string {
	if o == SortOldest {
		return "Oldest"
	}
	return "Newest"
}

// SearchField selects the game attribute a search term is matched against.
type SearchField int

const (
	// FieldTitle matches against the game title.
	FieldTitle SearchField = iota
	// FieldDescription matches against the game description.
	FieldDescription
	// FieldPublisher matches against the publisher name.
	FieldPublisher
)

// ParseSearchField resolves the wire-level search key once at the boundary.
func ParseSearchField(key string) (SearchField, error) {
	switch key {
	case "title":
		return FieldTitle, nil
	case "description":
		return FieldDescription, nil
	case "publisher":
		return FieldPublisher, nil
	default:
		return FieldTitle, apperror.NewInvalidKey("invalid search key: " + key)
	}
}

func (f SearchField) String() string {
	switch f {
	case FieldDescription:
		return "description"
	case FieldPublisher:
		return "publisher"
	default:
		return "title"
	}
}

// Repository is the storage contract. Add operations fail with a Conflict
// error when the natural key already exists; Get operations fail with a
// NotFound error for absence. Listing slices are half-open [start, end)
// ranges clamped to the collection size, ordered by release date with the
// game id as the deterministic tie-breaker.
type Repository interface {
	AddPublisher(p *models.Publisher) error
	AddPublishers(ps []*models.Publisher) error
	GetPublisher(name string) (*models.Publisher, error)

	AddGenre(g *models.Genre) error
	AddGenres(gs []*models.Genre) error
	GetGenre(name string) (*models.Genre, error)
	GetGenres() ([]*models.Genre, error)

	AddGame(g *models.Game) error
	AddGames(gs []*models.Game) error
	GetGame(id uint) (*models.Game, error)
	GameCount() (int, error)
	GameCountByGenre(genreName string) (int, error)
	Games(start, end int, order SortOrder) ([]*models.Game, error)
	GamesByGenre(start, end int, genreName string) ([]*models.Game, error)
	SearchGames(term string, field SearchField) ([]*models.Game, error)

	AddUser(u *models.User) error
	GetUser(username string) (*models.User, error)

	AddReview(r *models.Review) error
	ReviewsForGame(gameID uint) ([]*models.Review, error)
	ReviewsByUser(username string) ([]*models.Review, error)

	WishlistGames(username string) ([]*models.Game, error)
	AddGameToWishlist(username string, gameID uint) error
	// RemoveGameFromWishlist reports whether the game was present. Removing a
	// non-member is a no-op returning (false, nil), not an error.
	RemoveGameFromWishlist(username string, gameID uint) (bool, error)

	// ToggleFavourite flips a game's membership in the user's favourites and
	// reports the new state.
	ToggleFavourite(username string, gameID uint) (bool, error)
	FavouriteGames(username string) ([]*models.Game, error)
}

// clampRange clamps a half-open [start, end) slice request to a collection of
// n elements. A start at or past the end yields the empty range.
func clampRange(start, end, n int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end < 0 {
		end = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}
