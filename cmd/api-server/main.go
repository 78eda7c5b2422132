package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"moviehub/database"
	"moviehub/internal/api/handler"
	"moviehub/internal/api/middleware"
	"moviehub/internal/api/repository"
	"moviehub/internal/api/service"
	"moviehub/internal/config"
)

func main() {
	superuserEmail := flag.String("create-superuser", "", "create a superuser with the given email and exit (password read from SUPERUSER_PASSWORD)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	movieRepo := repository.NewMovieRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	// Optional Redis token cache
	var tokenCache *repository.TokenCache
	if cfg.RedisURL != "" {
		tokenCache, err = repository.NewTokenCache(cfg.RedisURL, cfg.RedisPassword, cfg.TokenCacheTTL)
		if err != nil {
			logger.Warn("token cache unavailable, falling back to database lookups", "error", err)
			tokenCache = nil
		} else {
			defer tokenCache.Close()
			logger.Info("token cache connected")
		}
	}

	// Services
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userService, tokenRepo, tokenCache, logger)
	movieService := service.NewMovieService(movieRepo, ratingRepo)
	ratingService := service.NewRatingService(ratingRepo, movieRepo)

	if *superuserEmail != "" {
		createSuperuser(userService, *superuserEmail, logger)
		return
	}

	// Handlers
	userHandler := handler.NewUserHandler(userService, authService)
	movieHandler := handler.NewMovieHandler(movieService, cfg.MediaRoot)
	ratingHandler := handler.NewRatingHandler(ratingService)
	adminHandler := handler.NewAdminHandler(userService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	// registered paths answer 405 for the wrong method (POST /api/user/me)
	r.HandleMethodNotAllowed = true

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// uploaded posters
	r.Static("/media", cfg.MediaRoot)

	authMW := middleware.AuthMiddleware(authService)
	staffMW := middleware.RequireStaff()
	rateMW := middleware.RateLimit(cfg.AuthRatePerSec, cfg.AuthRateBurst)

	api := r.Group("/api")
	{
		userHandler.RegisterRoutes(api, authMW, rateMW)

		authed := api.Group("", authMW)
		movieHandler.RegisterRoutes(authed, staffMW)
		ratingHandler.RegisterRoutes(authed)
		adminHandler.RegisterRoutes(authed, staffMW)
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("api server listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// createSuperuser provisions a full-privilege account from the command line,
// the stand-in for interactive admin provisioning.
func createSuperuser(users service.UserService, email string, logger *slog.Logger) {
	password := os.Getenv("SUPERUSER_PASSWORD")
	if password == "" {
		log.Fatal("SUPERUSER_PASSWORD must be set to create a superuser")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := users.CreateSuperuser(ctx, email, password)
	if err != nil {
		log.Fatalf("could not create superuser: %v", err)
	}
	logger.Info("superuser created", "id", user.ID, "email", user.Email)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
