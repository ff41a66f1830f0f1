package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"moreview/database"
	"moreview/internal/cache"
	"moreview/internal/config"
	"moreview/internal/handler"
	"moreview/internal/middleware"
	"moreview/internal/repository"
	"moreview/internal/service"
	"moreview/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("could not connect to database", "error", err)
		os.Exit(1)
	}

	ratingCache, err := cache.NewRatingCache(cfg.RedisURL, cfg.RedisPassword, cfg.CacheTTL)
	if err != nil {
		// The cache is an optimization; averages fall back to the database.
		logger.Warn("redis unavailable, rating cache disabled", "error", err)
	}
	defer ratingCache.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	tagRepo := repository.NewTagRepository(db)
	movieRepo := repository.NewMovieRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	heartRepo := repository.NewHeartRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := service.NewUserService(userRepo, refreshTokenRepo)
	movieService := service.NewMovieService(movieRepo, tagRepo, reviewRepo, heartRepo, reportRepo, ratingCache)
	reviewService := service.NewReviewService(reviewRepo, movieRepo, heartRepo, ratingCache)
	reportService := service.NewReportService(reportRepo, reviewRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	movieHandler := handler.NewMovieHandler(movieService, storage.NewImageStore(cfg.MediaDir))
	reviewHandler := handler.NewReviewHandler(reviewService)
	reportHandler := handler.NewReportHandler(reportService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.Static("/media", cfg.MediaDir)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	api := r.Group("/api")

	public := api.Group("", middleware.OptionalAuth(authService))
	authHandler.RegisterRoutes(api.Group("/auth", rateLimiter.Middleware()))

	authed := api.Group("", middleware.AuthMiddleware(authService), rateLimiter.Middleware())
	admin := api.Group("/admin", middleware.AuthMiddleware(authService), middleware.RequireAdmin(), rateLimiter.Middleware())

	movieHandler.RegisterRoutes(public, admin)
	reviewHandler.RegisterRoutes(authed)
	reportHandler.RegisterRoutes(authed, admin)
	userHandler.RegisterRoutes(authed, admin)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
