package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"gamevault/backend/internal/auth"
	"gamevault/backend/internal/config"
	"gamevault/backend/internal/database"
	"gamevault/backend/internal/handler"
	"gamevault/backend/internal/ingest"
	"gamevault/backend/internal/repository"
	"gamevault/backend/internal/service"

	// Swagger imports
	_ "gamevault/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           GameVault API
// @version         1.0
// @description     Catalogue/storefront API for browsing, searching, reviewing, and wishlisting games.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	repo, err := buildRepository(log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize repository")
	}

	authService := service.NewAuthService(repo)
	libraryService := service.NewLibraryService(repo)
	reviewService := service.NewReviewService(repo)
	wishlistService := service.NewWishlistService(repo)

	authHandler := handler.NewAuthHandler(authService)
	gameHandler := handler.NewGameHandler(libraryService, reviewService, wishlistService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	wishlistHandler := handler.NewWishlistHandler(wishlistService)
	profileHandler := handler.NewProfileHandler(authService, reviewService)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		// Public catalogue routes
		apiV1.GET("/games", gameHandler.GetGames)
		apiV1.GET("/games/:id", gameHandler.GetGameByID)
		apiV1.GET("/games/:id/reviews", reviewHandler.GetGameReviews)
		apiV1.GET("/genres", gameHandler.GetGenres)
		apiV1.GET("/genres/:name/games", gameHandler.GetGamesByGenre)
		apiV1.GET("/search", gameHandler.SearchGames)

		// Routes requiring an authenticated user
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

	addr := ":" + config.AppConfig.Port
	log.Info().Str("addr", addr).Msg("server is running")
	log.Info().Msgf("swagger UI is available at http://localhost%s/swagger/index.html", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// buildRepository wires the backend selected by REPOSITORY. The memory
// backend always ingests the CSV catalogue; the database backend ingests it
// only when the games table is empty.
func buildRepository(log zerolog.Logger) (repository.Repository, error) {
	switch config.AppConfig.Repository {
	case "memory":
		repo := repository.NewMemoryRepository()
		if err := ingest.Populate(repo, config.AppConfig.GamesCSV, log); err != nil {
			return nil, err
		}
		return repo, nil
	default:
		db, err := database.Connect(config.AppConfig.DatabaseURL)
		if err != nil {
			return nil, err
		}
		repo := repository.NewGormRepository(db)
		count, err := repo.GameCount()
		if err != nil {
			return nil, err
		}
		if count == 0 {
			if err := ingest.Populate(repo, config.AppConfig.GamesCSV, log); err != nil {
				return nil, err
			}
		}
		return repo, nil
	}
}
