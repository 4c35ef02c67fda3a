package service

import (
	"gamevault/backend/internal/models"
	"gamevault/backend/internal/repository"
)

// LibraryService serves catalogue browsing: paginated listings, genre
// filtering, and search.
type LibraryService struct {
	repo repository.Repository
}

// NewLibraryService creates a LibraryService backed by the given repository.
func NewLibraryService(repo repository.Repository) *LibraryService {
	return &LibraryService{repo: repo}
}

// Games returns page `page` of size `size`, sorted by release date, along
// with the total game count. Page N of size S maps to the half-open slice
// [(N-1)*S, N*S).
func (s *LibraryService) Games(page, size int, order repository.SortOrder) ([]*models.Game, int, error) {
	total, err := s.repo.GameCount()
	if err != nil {
		return nil, 0, err
	}
	games, err := s.repo.Games((page-1)*size, page*size, order)
	if err != nil {
		return nil, 0, err
	}
	return games, total, nil
}

// GamesByGenre returns a page of the genre-filtered listing along with the
// total count of games in that genre.
func (s *LibraryService) GamesByGenre(page, size int, genreName string) ([]*models.Game, int, error) {
	total, err := s.repo.GameCountByGenre(genreName)
	if err != nil {
		return nil, 0, err
	}
	games, err := s.repo.GamesByGenre((page-1)*size, page*size, genreName)
	if err != nil {
		return nil, 0, err
	}
	return games, total, nil
}

// Game returns a single catalogue entry.
func (s *LibraryService) Game(id uint) (*models.Game, error) {
	return s.repo.GetGame(id)
}

// Genres returns all genres.
func (s *LibraryService) Genres() ([]*models.Genre, error) {
	return s.repo.GetGenres()
}

// Search performs a case-insensitive substring search over the given field.
func (s *LibraryService) Search(term string, field repository.SearchField) ([]*models.Game, error) {
	return s.repo.SearchGames(term, field)
}
