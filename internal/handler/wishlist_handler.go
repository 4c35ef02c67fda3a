package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gamevault/backend/internal/service"
)

// region --- DTOs ---

// WishlistInput identifies the game being added or removed.
type WishlistInput struct {
	GameID uint `json:"game_id" binding:"required" example:"7940"`
}

// WishlistResponse is the current user's wishlist.
type WishlistResponse struct {
	Games []GameResponse `json:"games"`
}

// WishlistRemoveResponse reports whether the removal actually found the game.
type WishlistRemoveResponse struct {
	GameID  uint `json:"game_id"`
	Removed bool `json:"removed"`
}

// endregion

// WishlistHandler serves wishlist management for the authenticated user.
type WishlistHandler struct {
	wishlist *service.WishlistService
}

// NewWishlistHandler creates a WishlistHandler.
func NewWishlistHandler(wishlist *service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist}
}

// GetWishlist godoc
// @Summary      Get the wishlist
// @Description  Returns the current user's wishlist.
// @Tags         wishlist
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  WishlistResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /wishlist [get]
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	username := c.GetString("username")

	games, err := h.wishlist.Games(username)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, WishlistResponse{Games: newGameResponses(games)})
}

// AddToWishlist godoc
// @Summary      Add a game to the wishlist
// @Description  Adds a game to the current user's wishlist. Adding a game that is already there fails with a conflict.
// @Tags         wishlist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body WishlistInput true "Game"
// @Success      201  {object}  WishlistResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Failure      409  {object}  ErrorResponse "Already in wishlist"
// @Router       /wishlist [post]
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	username := c.GetString("username")

	var input WishlistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.wishlist.Add(username, input.GameID); err != nil {
		writeError(c, err)
		return
	}

	games, err := h.wishlist.Games(username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, WishlistResponse{Games: newGameResponses(games)})
}

// RemoveFromWishlist godoc
// @Summary      Remove a game from the wishlist
// @Description  Removes a game from the current user's wishlist. Removing a game that is not there is a no-op reported as removed=false.
// @Tags         wishlist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body WishlistInput true "Game"
// @Success      200  {object}  WishlistRemoveResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /wishlist [delete]
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	username := c.GetString("username")

	var input WishlistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	removed, err := h.wishlist.Remove(username, input.GameID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, WishlistRemoveResponse{GameID: input.GameID, Removed: removed})
}

// GetFavourites godoc
// @Summary      Get favourite games
// @Description  Returns the current user's favourite games.
// @Tags         wishlist
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   GameResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /favourites [get]
func (h *WishlistHandler) GetFavourites(c *gin.Context) {
	username := c.GetString("username")

	games, err := h.wishlist.Favourites(username)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newGameResponses(games))
}
