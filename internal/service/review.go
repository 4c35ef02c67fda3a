package service

import (
	"fmt"
	"time"
	"unicode/utf8"

	"gamevault/backend/internal/apperror"
	"gamevault/backend/internal/models"
	"gamevault/backend/internal/repository"
)

// ReviewService handles review submission and rating aggregation.
type ReviewService struct {
	repo repository.Repository
}

// NewReviewService creates a ReviewService backed by the given repository.
func NewReviewService(repo repository.Repository) *ReviewService {
	return &ReviewService{repo: repo}
}

// AddReview validates and stores a review. Validation failures reject the
// review before anything touches the repository; a second review for the same
// (user, game) pair fails with a conflict.
func (s *ReviewService) AddReview(username string, gameID uint, rating int, comment string) (*models.Review, error) {
	if rating < models.MinRating || rating > models.MaxRating {
		return nil, apperror.NewValidation(fmt.Sprintf("rating must be between %d and %d", models.MinRating, models.MaxRating))
	}
	if utf8.RuneCountInString(comment) > models.MaxCommentLength {
		return nil, apperror.NewValidation(fmt.Sprintf("comment must be at most %d characters", models.MaxCommentLength))
	}

	user, err := s.repo.GetUser(username)
	if err != nil {
		return nil, err
	}
	game, err := s.repo.GetGame(gameID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		UserID:    user.ID,
		GameID:    game.ID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	if err := s.repo.AddReview(review); err != nil {
		return nil, err
	}
	return review, nil
}

// ReviewsForGame returns all reviews for a game, empty when there are none.
func (s *ReviewService) ReviewsForGame(gameID uint) ([]*models.Review, error) {
	return s.repo.ReviewsForGame(gameID)
}

// ReviewsByUser returns all reviews a user has written.
func (s *ReviewService) ReviewsByUser(username string) ([]*models.Review, error) {
	return s.repo.ReviewsByUser(username)
}

// AverageRating is the arithmetic mean of a game's ratings, 0 when the game
// has no reviews.
func (s *ReviewService) AverageRating(gameID uint) (float64, error) {
	reviews, err := s.repo.ReviewsForGame(gameID)
	if err != nil {
		return 0, err
	}
	if len(reviews) == 0 {
		return 0, nil
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return float64(total) / float64(len(reviews)), nil
}
