package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamevault/backend/internal/auth"
	"gamevault/backend/internal/config"
	"gamevault/backend/internal/handler"
	"gamevault/backend/internal/models"
	"gamevault/backend/internal/repository"
	"gamevault/backend/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	repo := repository.NewMemoryRepository()
	seedCatalogue(t, repo)

	authService := service.NewAuthService(repo)
	libraryService := service.NewLibraryService(repo)
	reviewService := service.NewReviewService(repo)
	wishlistService := service.NewWishlistService(repo)

	authHandler := handler.NewAuthHandler(authService)
	gameHandler := handler.NewGameHandler(libraryService, reviewService, wishlistService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	wishlistHandler := handler.NewWishlistHandler(wishlistService)
	profileHandler := handler.NewProfileHandler(authService, reviewService)

	router := gin.New()
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/auth/register", authHandler.Register)
		apiV1.POST("/auth/login", authHandler.Login)

		apiV1.GET("/games", gameHandler.GetGames)
		apiV1.GET("/games/:id", gameHandler.GetGameByID)
		apiV1.GET("/games/:id/reviews", reviewHandler.GetGameReviews)
		apiV1.GET("/genres", gameHandler.GetGenres)
		apiV1.GET("/genres/:name/games", gameHandler.GetGamesByGenre)
		apiV1.GET("/search", gameHandler.SearchGames)

		protected := apiV1.Group("")
		protected.Use(auth.AuthMiddleware())
		{
			protected.POST("/games/:id/reviews", reviewHandler.CreateReview)
			protected.POST("/games/:id/favourite", gameHandler.ToggleFavourite)
			protected.GET("/favourites", wishlistHandler.GetFavourites)
			protected.GET("/wishlist", wishlistHandler.GetWishlist)
			protected.POST("/wishlist", wishlistHandler.AddToWishlist)
			protected.DELETE("/wishlist", wishlistHandler.RemoveFromWishlist)
			protected.GET("/profile", profileHandler.GetProfile)
		}
	}
	return router
}

func seedCatalogue(t *testing.T, repo repository.Repository) {
	t.Helper()

	indie := &models.Genre{Name: "Indie"}
	require.NoError(t, repo.AddGenre(indie))
	require.NoError(t, repo.AddPublisher(&models.Publisher{Name: "Team Meat"}))
	require.NoError(t, repo.AddGame(&models.Game{
		ID:            40800,
		Title:         "Super Meat Boy",
		ReleaseDate:   time.Date(2010, time.October, 21, 0, 0, 0, 0, time.UTC),
		PublisherName: "Team Meat",
		Genres:        []*models.Genre{indie},
	}))
}

func doJSON(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":"cLQ^C#oFXloS"}`, username)
	w := doJSON(router, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp handler.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRegisterLoginFlow(t *testing.T) {
	router := newTestRouter(t)

	token := registerAndLogin(t, router, "Thorke")
	assert.NotEmpty(t, token)

	// Same letters, different case: rejected.
	w := doJSON(router, http.MethodPost, "/api/v1/auth/register", "", `{"username":"THORKE","password":"cLQ^C#oFXloS"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/auth/login", "", `{"username":"thorke","password":"cLQ^C#oFXloS"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/auth/login", "", `{"username":"thorke","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/auth/login", "", `{"username":"nobody","password":"cLQ^C#oFXloS"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLibraryEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/v1/games?page=1&sort_by=Oldest", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var page handler.PaginatedResponse[handler.GameResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Super Meat Boy", page.Data[0].Title)
	assert.Equal(t, 1, page.Meta.TotalItems)

	w = doJSON(router, http.MethodGet, "/api/v1/games?sort_by=Sideways", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/search?term=super+meat&key=title", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var results []handler.GameResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	assert.Len(t, results, 1)

	w = doJSON(router, http.MethodGet, "/api/v1/search?term=x&key=genre", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/games/999999", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWishlistEndpoints(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "collector")

	// No token: rejected by the middleware.
	w := doJSON(router, http.MethodGet, "/api/v1/wishlist", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/wishlist", token, `{"game_id":40800}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(router, http.MethodPost, "/api/v1/wishlist", token, `{"game_id":40800}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/wishlist", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var wishlist handler.WishlistResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wishlist))
	require.Len(t, wishlist.Games, 1)
	assert.Equal(t, uint(40800), wishlist.Games[0].ID)

	w = doJSON(router, http.MethodDelete, "/api/v1/wishlist", token, `{"game_id":12345}`)
	require.Equal(t, http.StatusOK, w.Code)
	var removal handler.WishlistRemoveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &removal))
	assert.False(t, removal.Removed)
}

func TestReviewEndpoints(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "reviewer")

	w := doJSON(router, http.MethodPost, "/api/v1/games/40800/reviews", token, `{"rating":5,"comment":"tough but fair"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// 501-character comment: rejected, nothing persisted.
	long := strings.Repeat("a", 501)
	w = doJSON(router, http.MethodPost, "/api/v1/games/40800/reviews", token, `{"rating":5,"comment":"`+long+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Second review by the same user for the same game: conflict.
	w = doJSON(router, http.MethodPost, "/api/v1/games/40800/reviews", token, `{"rating":2,"comment":"on reflection"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/games/40800/reviews", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var reviews handler.GameReviewsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reviews))
	require.Len(t, reviews.Reviews, 1)
	assert.Equal(t, 5.0, reviews.AverageRating)
}

func TestProfileEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "Thorke")

	w := doJSON(router, http.MethodPost, "/api/v1/games/40800/reviews", token, `{"rating":4,"comment":"good"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/profile", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var profile handler.ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "thorke", profile.Username)
	assert.Equal(t, "Thorke", profile.DisplayName)
	require.Len(t, profile.Reviews, 1)
	assert.Equal(t, 4, profile.Reviews[0].Rating)
}

func TestFavouriteEndpoints(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "collector")

	w := doJSON(router, http.MethodPost, "/api/v1/games/40800/favourite", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var toggled handler.FavouriteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggled))
	assert.True(t, toggled.Favourite)

	w = doJSON(router, http.MethodGet, "/api/v1/favourites", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var favourites []handler.GameResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &favourites))
	require.Len(t, favourites, 1)
	assert.Equal(t, uint(40800), favourites[0].ID)

	w = doJSON(router, http.MethodPost, "/api/v1/games/40800/favourite", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggled))
	assert.False(t, toggled.Favourite)
}
