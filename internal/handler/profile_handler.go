package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gamevault/backend/internal/service"
)

// ProfileResponse is the current user's profile: identity plus the reviews
// they have written.
type ProfileResponse struct {
	Username    string           `json:"username"`
	DisplayName string           `json:"display_name"`
	JoinedAt    time.Time        `json:"joined_at"`
	Reviews     []ReviewResponse `json:"reviews"`
}

// ProfileHandler serves the authenticated user's profile.
type ProfileHandler struct {
	auth    *service.AuthService
	reviews *service.ReviewService
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(auth *service.AuthService, reviews *service.ReviewService) *ProfileHandler {
	return &ProfileHandler{auth: auth, reviews: reviews}
}

// GetProfile godoc
// @Summary      Get the current user's profile
// @Description  Returns the authenticated user's account info and reviews.
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ProfileResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	username := c.GetString("username")

	user, err := h.auth.GetUser(username)
	if err != nil {
		writeError(c, err)
		return
	}

	reviews, err := h.reviews.ReviewsByUser(username)
	if err != nil {
		writeError(c, err)
		return
	}

	responses := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, newReviewResponse(review))
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Username:    user.Username,
		DisplayName: user.DisplayName,
		JoinedAt:    user.CreatedAt,
		Reviews:     responses,
	})
}
