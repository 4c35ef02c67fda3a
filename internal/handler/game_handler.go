package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gamevault/backend/internal/models"
	"gamevault/backend/internal/repository"
	"gamevault/backend/internal/service"
)

// region --- DTOs ---

// GameResponse is the catalogue view of a game.
type GameResponse struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Price           float64   `json:"price"`
	ReleaseDate     time.Time `json:"release_date"`
	Description     string    `json:"description,omitempty"`
	ImageURL        string    `json:"image_url"`
	WebsiteURL      string    `json:"website_url,omitempty"`
	SupportsWindows bool      `json:"supports_windows"`
	SupportsMac     bool      `json:"supports_mac"`
	SupportsLinux   bool      `json:"supports_linux"`
	Publisher       string    `json:"publisher"`
	Genres          []string  `json:"genres"`
}

// GameDetailResponse adds the aggregated rating to the catalogue view.
type GameDetailResponse struct {
	GameResponse
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

// GenreResponse is a single genre.
type GenreResponse struct {
	Name string `json:"name"`
}

// FavouriteResponse reports a game's favourite state after a toggle.
type FavouriteResponse struct {
	GameID    uint `json:"game_id"`
	Favourite bool `json:"favourite"`
}

func newGameResponse(game *models.Game) GameResponse {
	genres := make([]string, 0, len(game.Genres))
	for _, genre := range game.Genres {
		if genre != nil {
			genres = append(genres, genre.Name)
		}
	}

	return GameResponse{
		ID:              game.ID,
		Title:           game.Title,
		Price:           game.Price,
		ReleaseDate:     game.ReleaseDate,
		Description:     game.Description,
		ImageURL:        game.ImageURL,
		WebsiteURL:      game.WebsiteURL,
		SupportsWindows: game.SupportsWindows,
		SupportsMac:     game.SupportsMac,
		SupportsLinux:   game.SupportsLinux,
		Publisher:       game.PublisherName,
		Genres:          genres,
	}
}

func newGameResponses(games []*models.Game) []GameResponse {
	responses := make([]GameResponse, 0, len(games))
	for _, game := range games {
		responses = append(responses, newGameResponse(game))
	}
	return responses
}

// endregion

// GameHandler serves the library listings, game detail, genres, and search.
type GameHandler struct {
	library  *service.LibraryService
	reviews  *service.ReviewService
	wishlist *service.WishlistService
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(library *service.LibraryService, reviews *service.ReviewService, wishlist *service.WishlistService) *GameHandler {
	return &GameHandler{library: library, reviews: reviews, wishlist: wishlist}
}

// GetGames godoc
// @Summary      Browse the game library
// @Description  Returns a page of the library sorted by release date. sort_by is "Newest" (default) or "Oldest".
// @Tags         games
// @Produce      json
// @Param        page    query  int     false  "Page number" default(1)
// @Param        limit   query  int     false  "Items per page" default(10)
// @Param        sort_by query  string  false  "Newest or Oldest" default(Newest)
// @Success      200  {object}  PaginatedResponse[GameResponse]
// @Failure      400  {object}  ErrorResponse "Invalid sort key"
// @Router       /games [get]
func (h *GameHandler) GetGames(c *gin.Context) {
	page, limit := pageParams(c)

	order, err := repository.ParseSortOrder(c.DefaultQuery("sort_by", "Newest"))
	if err != nil {
		writeError(c, err)
		return
	}

	games, total, err := h.library.Games(page, limit, order)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(newGameResponses(games), total, page, limit))
}

// GetGameByID godoc
// @Summary      Get game detail
// @Description  Returns a single game with its genres and average rating.
// @Tags         games
// @Produce      json
// @Param        id  path  int  true  "Game ID"
// @Success      200  {object}  GameDetailResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /games/{id} [get]
func (h *GameHandler) GetGameByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid game ID"})
		return
	}

	game, err := h.library.Game(uint(id))
	if err != nil {
		writeError(c, err)
		return
	}

	average, err := h.reviews.AverageRating(game.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	reviews, err := h.reviews.ReviewsForGame(game.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, GameDetailResponse{
		GameResponse:  newGameResponse(game),
		AverageRating: average,
		ReviewCount:   len(reviews),
	})
}

// GetGenres godoc
// @Summary      List genres
// @Description  Returns every genre in the catalogue.
// @Tags         genres
// @Produce      json
// @Success      200  {array}  GenreResponse
// @Router       /genres [get]
func (h *GameHandler) GetGenres(c *gin.Context) {
	genres, err := h.library.Genres()
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]GenreResponse, 0, len(genres))
	for _, genre := range genres {
		response = append(response, GenreResponse{Name: genre.Name})
	}
	c.JSON(http.StatusOK, response)
}

// GetGamesByGenre godoc
// @Summary      Browse games in a genre
// @Description  Returns a page of the games belonging to the named genre.
// @Tags         genres
// @Produce      json
// @Param        name   path   string  true   "Genre name"
// @Param        page   query  int     false  "Page number" default(1)
// @Param        limit  query  int     false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[GameResponse]
// @Router       /genres/{name}/games [get]
func (h *GameHandler) GetGamesByGenre(c *gin.Context) {
	page, limit := pageParams(c)
	genreName := c.Param("name")

	games, total, err := h.library.GamesByGenre(page, limit, genreName)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(newGameResponses(games), total, page, limit))
}

// SearchGames godoc
// @Summary      Search games
// @Description  Case-insensitive substring search. key is "title" (default), "description", or "publisher".
// @Tags         games
// @Produce      json
// @Param        term  query  string  true   "Search term"
// @Param        key   query  string  false  "title, description, or publisher" default(title)
// @Success      200  {array}   GameResponse
// @Failure      400  {object}  ErrorResponse "Invalid search key"
// @Router       /search [get]
func (h *GameHandler) SearchGames(c *gin.Context) {
	field, err := repository.ParseSearchField(c.DefaultQuery("key", "title"))
	if err != nil {
		writeError(c, err)
		return
	}

	games, err := h.library.Search(c.Query("term"), field)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newGameResponses(games))
}

// ToggleFavourite godoc
// @Summary      Toggle a favourite game
// @Description  Flips the game's membership in the current user's favourites.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Game ID"
// @Success      200  {object}  FavouriteResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /games/{id}/favourite [post]
func (h *GameHandler) ToggleFavourite(c *gin.Context) {
	username := c.GetString("username")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid game ID"})
		return
	}

	favourite, err := h.wishlist.ToggleFavourite(username, uint(id))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, FavouriteResponse{GameID: uint(id), Favourite: favourite})
}
