package service

import (
	"gamevault/backend/internal/models"
	"gamevault/backend/internal/repository"
)

// WishlistService manages per-user wishlists and the favourites toggle.
type WishlistService struct {
	repo repository.Repository
}

// NewWishlistService creates a WishlistService backed by the given repository.
func NewWishlistService(repo repository.Repository) *WishlistService {
	return &WishlistService{repo: repo}
}

// Add puts a game on the user's wishlist. Adding a game that is already there
// fails with a conflict.
func (s *WishlistService) Add(username string, gameID uint) error {
	return s.repo.AddGameToWishlist(username, gameID)
}

// Remove takes a game off the user's wishlist. Removing a game that is not
// there reports false without error and leaves the wishlist untouched.
func (s *WishlistService) Remove(username string, gameID uint) (bool, error) {
	return s.repo.RemoveGameFromWishlist(username, gameID)
}

// Games returns the user's wishlist.
func (s *WishlistService) Games(username string) ([]*models.Game, error) {
	return s.repo.WishlistGames(username)
}

// ToggleFavourite flips a game's favourite state for the user and reports the
// new state.
func (s *WishlistService) ToggleFavourite(username string, gameID uint) (bool, error) {
	return s.repo.ToggleFavourite(username, gameID)
}

// Favourites returns the user's favourite games.
func (s *WishlistService) Favourites(username string) ([]*models.Game, error) {
	return s.repo.FavouriteGames(username)
}
