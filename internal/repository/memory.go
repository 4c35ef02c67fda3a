package repository

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"gamevault/backend/internal/apperror"
	"gamevault/backend/internal/models"
)

// MemoryRepository is the transient backend: maps keyed by natural key, with
// insertion handled in-process. Access is gated by a mutex because the store
// is mounted inside a concurrent HTTP server. Callers receive the stored
// pointers, not copies.
type MemoryRepository struct {
	mu           sync.RWMutex
	nextUserID   uint
	nextReviewID uint

	publishers map[string]*models.Publisher
	genres     map[string]*models.Genre
	games      map[uint]*models.Game
	users      map[string]*models.User
	reviews    []*models.Review
	wishlists  map[string][]uint
	favourites map[string][]uint
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextUserID:   1,
		nextReviewID: 1,
		publishers:   make(map[string]*models.Publisher),
		genres:       make(map[string]*models.Genre),
		games:        make(map[uint]*models.Game),
		users:        make(map[string]*models.User),
		wishlists:    make(map[string][]uint),
		favourites:   make(map[string][]uint),
	}
}

// region --- Publishers ---

func (r *MemoryRepository) AddPublisher(p *models.Publisher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addPublisherLocked(p)
}

func (r *MemoryRepository) AddPublishers(ps []*models.Publisher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range ps {
		if _, ok := r.publishers[p.Name]; ok {
			return apperror.NewConflict(fmt.Sprintf("publisher %q already exists", p.Name))
		}
	}
	for _, p := range ps {
		if err := r.addPublisherLocked(p); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryRepository) addPublisherLocked(p *models.Publisher) error {
	if _, ok := r.publishers[p.Name]; ok {
		return apperror.NewConflict(fmt.Sprintf("publisher %q already exists", p.Name))
	}
	r.publishers[p.Name] = p
	return nil
}

func (r *MemoryRepository) GetPublisher(name string) (*models.Publisher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.publishers[name]
	if !ok {
		return nil, apperror.NewNotFound(fmt.Sprintf("publisher %q not found", name))
	}
	return p, nil
}

// endregion

// region --- Genres ---

func (r *MemoryRepository) AddGenre(g *models.Genre) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addGenreLocked(g)
}

func (r *MemoryRepository) AddGenres(gs []*models.Genre) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range gs {
		if _, ok := r.genres[g.Name]; ok {
			return apperror.NewConflict(fmt.Sprintf("genre %q already exists", g.Name))
		}
	}
	for _, g := range gs {
		if err := r.addGenreLocked(g); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryRepository) addGenreLocked(g *models.Genre) error {
	if _, ok := r.genres[g.Name]; ok {
		return apperror.NewConflict(fmt.Sprintf("genre %q already exists", g.Name))
	}
	r.genres[g.Name] = g
	return nil
}

func (r *MemoryRepository) GetGenre(name string) (*models.Genre, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.genres[name]
	if !ok {
		return nil, apperror.NewNotFound(fmt.Sprintf("genre %q not found", name))
	}
	return g, nil
}

func (r *MemoryRepository) GetGenres() ([]*models.Genre, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	genres := make([]*models.Genre, 0, len(r.genres))
	for _, g := range r.genres {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })
	return genres, nil
}

// endregion

// region --- Games ---

func (r *MemoryRepository) AddGame(g *models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addGameLocked(g)
}

func (r *MemoryRepository) AddGames(gs []*models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range gs {
		if _, ok := r.games[g.ID]; ok {
			return apperror.NewConflict(fmt.Sprintf("game %d already exists", g.ID))
		}
	}
	for _, g := range gs {
		if err := r.addGameLocked(g); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryRepository) addGameLocked(g *models.Game) error {
	if _, ok := r.games[g.ID]; ok {
		return apperror.NewConflict(fmt.Sprintf("game %d already exists", g.ID))
	}
	r.games[g.ID] = g
	return nil
}

func (r *MemoryRepository) GetGame(id uint) (*models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.games[id]
	if !ok {
		return nil, apperror.NewNotFound(fmt.Sprintf("game %d not found", id))
	}
	return g, nil
}

func (r *MemoryRepository) GameCount() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games), nil
}

func (r *MemoryRepository) GameCountByGenre(genreName string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, g := range r.games {
		if gameHasGenre(g, genreName) {
			count++
		}
	}
	return count, nil
}

func (r *MemoryRepository) Games(start, end int, order SortOrder) ([]*models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	games := r.allGamesLocked()
	sortGamesByRelease(games, order)
	start, end = clampRange(start, end, len(games))
	return games[start:end], nil
}

func (r *MemoryRepository) GamesByGenre(start, end int, genreName string) ([]*models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var games []*models.Game
	for _, g := range r.games {
		if gameHasGenre(g, genreName) {
			games = append(games, g)
		}
	}
	sortGamesByRelease(games, SortOldest)
	start, end = clampRange(start, end, len(games))
	return games[start:end], nil
}

func (r *MemoryRepository) SearchGames(term string, field SearchField) ([]*models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	term = strings.ToLower(term)
	var matches []*models.Game
	for _, g := range r.allGamesLocked() {
		var haystack string
		switch field {
		case FieldTitle:
			haystack = g.Title
		case FieldDescription:
			haystack = g.Description
		case FieldPublisher:
			haystack = g.PublisherName
		default:
			return nil, apperror.NewInvalidKey("invalid search key")
		}
		if strings.Contains(strings.ToLower(haystack), term) {
			matches = append(matches, g)
		}
	}
	return matches, nil
}

// allGamesLocked snapshots the games map in id order so slicing is
// deterministic before sorting.
func (r *MemoryRepository) allGamesLocked() []*models.Game {
	games := make([]*models.Game, 0, len(r.games))
	for _, g := range r.games {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games
}

// sortGamesByRelease orders games by release date with ascending id breaking
// ties, matching the persistent backend's ORDER BY.
func sortGamesByRelease(games []*models.Game, order SortOrder) {
	sort.Slice(games, func(i, j int) bool {
		a, b := games[i], games[j]
		if !a.ReleaseDate.Equal(b.ReleaseDate) {
			if order == SortNewest {
				return a.ReleaseDate.After(b.ReleaseDate)
			}
			return a.ReleaseDate.Before(b.ReleaseDate)
		}
		return a.ID < b.ID
	})
}

func gameHasGenre(g *models.Game, genreName string) bool {
	for _, genre := range g.Genres {
		if genre != nil && genre.Name == genreName {
			return true
		}
	}
	return false
}

// endregion

// region --- Users ---

func (r *MemoryRepository) AddUser(u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.Username = models.NormalizeUsername(u.Username)
	if _, ok := r.users[u.Username]; ok {
		return apperror.NewConflict(fmt.Sprintf("user %q already exists", u.Username))
	}
	if u.ID == 0 {
		u.ID = r.nextUserID
		r.nextUserID++
	}
	r.users[u.Username] = u
	return nil
}

func (r *MemoryRepository) GetUser(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[models.NormalizeUsername(username)]
	if !ok {
		return nil, apperror.NewNotFound(fmt.Sprintf("user %q not found", username))
	}
	return u, nil
}

// endregion

// region --- Reviews ---

func (r *MemoryRepository) AddReview(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.UserID == review.UserID && existing.GameID == review.GameID {
			return apperror.NewConflict("user has already reviewed this game")
		}
	}
	if review.ID == 0 {
		review.ID = r.nextReviewID
		r.nextReviewID++
	}
	r.reviews = append(r.reviews, review)
	return nil
}

func (r *MemoryRepository) ReviewsForGame(gameID uint) ([]*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reviews := []*models.Review{}
	for _, review := range r.reviews {
		if review.GameID == gameID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

func (r *MemoryRepository) ReviewsByUser(username string) ([]*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[models.NormalizeUsername(username)]
	if !ok {
		return nil, apperror.NewNotFound(fmt.Sprintf("user %q not found", username))
	}
	reviews := []*models.Review{}
	for _, review := range r.reviews {
		if review.UserID == u.ID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

// endregion

// region --- Wishlist & favourites ---

func (r *MemoryRepository) WishlistGames(username string) ([]*models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.users[models.NormalizeUsername(username)]; !ok {
		return nil, apperror.NewNotFound(fmt.Sprintf("user %q not found", username))
	}
	return r.gamesByIDsLocked(r.wishlists[models.NormalizeUsername(username)]), nil
}

func (r *MemoryRepository) AddGameToWishlist(username string, gameID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := models.NormalizeUsername(username)
	if _, ok := r.users[key]; !ok {
		return apperror.NewNotFound(fmt.Sprintf("user %q not found", username))
	}
	if _, ok := r.games[gameID]; !ok {
		return apperror.NewNotFound(fmt.Sprintf("game %d not found", gameID))
	}
	for _, id := range r.wishlists[key] {
		if id == gameID {
			return apperror.NewConflict(fmt.Sprintf("game %d is already in the wishlist", gameID))
		}
	}
	r.wishlists[key] = append(r.wishlists[key], gameID)
	return nil
}

func (r *MemoryRepository) RemoveGameFromWishlist(username string, gameID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := models.NormalizeUsername(username)
	if _, ok := r.users[key]; !ok {
		return false, apperror.NewNotFound(fmt.Sprintf("user %q not found", username))
	}
	list := r.wishlists[key]
	for i, id := range list {
		if id == gameID {
			r.wishlists[key] = append(list[:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) ToggleFavourite(username string, gameID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := models.NormalizeUsername(username)
	if _, ok := r.users[key]; !ok {
		return false, apperror.NewNotFound(fmt.Sprintf("user %q not found", username))
	}
	if _, ok := r.games[gameID]; !ok {
		return false, apperror.NewNotFound(fmt.Sprintf("game %d not found", gameID))
	}
	list := r.favourites[key]
	for i, id := range list {
		if id == gameID {
			r.favourites[key] = append(list[:i], list[i+1:]...)
			return false, nil
		}
	}
	r.favourites[key] = append(list, gameID)
	return true, nil
}

func (r *MemoryRepository) FavouriteGames(username string) ([]*models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key := models.NormalizeUsername(username)
	if _, ok := r.users[key]; !ok {
		return nil, apperror.NewNotFound(fmt.Sprintf("user %q not found", username))
	}
	return r.gamesByIDsLocked(r.favourites[key]), nil
}

func (r *MemoryRepository) gamesByIDsLocked(ids []uint) []*models.Game {
	games := []*models.Game{}
	for _, id := range ids {
		if g, ok := r.games[id]; ok {
			games = append(games, g)
		}
	}
	return games
}

// endregion
