package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gamevault/backend/internal/models"
	"gamevault/backend/internal/service"
)

// region --- DTOs ---

// ReviewInput defines the structure for submitting a review.
type ReviewInput struct {
	Rating  int    `json:"rating" binding:"min=0,max=5" example:"4"`
	Comment string `json:"comment" binding:"max=500" example:"Tough but fair."`
}

// ReviewResponse is a single review.
type ReviewResponse struct {
	ID        uint      `json:"id"`
	GameID    uint      `json:"game_id"`
	Username  string    `json:"username,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// GameReviewsResponse bundles a game's reviews with the average rating.
type GameReviewsResponse struct {
	GameID        uint             `json:"game_id"`
	AverageRating float64          `json:"average_rating"`
	Reviews       []ReviewResponse `json:"reviews"`
}

func newReviewResponse(review *models.Review) ReviewResponse {
	response := ReviewResponse{
		ID:        review.ID,
		GameID:    review.GameID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
	if review.User != nil {
		response.Username = review.User.Username
	}
	return response
}

// endregion

// ReviewHandler serves review submission and listing.
type ReviewHandler struct {
	reviews *service.ReviewService
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// CreateReview godoc
// @Summary      Write a review
// @Description  Submits the current user's review for a game. Rating is 0-5 and the comment is capped at 500 characters; a user can review a game only once.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int          true  "Game ID"
// @Param        input body  ReviewInput  true  "Review"
// @Success      201  {object}  ReviewResponse
// @Failure      400  {object}  ErrorResponse "Rating or comment out of bounds"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Failure      409  {object}  ErrorResponse "Already reviewed"
// @Router       /games/{id}/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	username := c.GetString("username")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid game ID"})
		return
	}

	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	review, err := h.reviews.AddReview(username, uint(id), input.Rating, input.Comment)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newReviewResponse(review))
}

// GetGameReviews godoc
// @Summary      Get a game's reviews
// @Description  Returns all reviews for a game plus the average rating (0 when unreviewed).
// @Tags         reviews
// @Produce      json
// @Param        id  path  int  true  "Game ID"
// @Success      200  {object}  GameReviewsResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /games/{id}/reviews [get]
func (h *ReviewHandler) GetGameReviews(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid game ID"})
		return
	}

	reviews, err := h.reviews.ReviewsForGame(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	average, err := h.reviews.AverageRating(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}

	responses := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, newReviewResponse(review))
	}

	c.JSON(http.StatusOK, GameReviewsResponse{
		GameID:        uint(id),
		AverageRating: average,
		Reviews:       responses,
	})
}
