package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitlog-server/internal/config"
	"github.com/fitlog-server/internal/handler"
	"github.com/fitlog-server/internal/middleware"
	"github.com/fitlog-server/internal/models"
	"github.com/fitlog-server/internal/repository"
	"github.com/fitlog-server/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Build info (injected at build time via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// devJWTSecret is only acceptable outside release mode
const devJWTSecret = "fitlog-dev-secret-do-not-use-in-production"

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// A missing signing secret is a hard misconfiguration in production
	if cfg.JWT.Secret == "" {
		if cfg.Server.Mode == "release" {
			log.Fatal("JWT secret is not configured; refusing to start in release mode")
		}
		log.Println("Warning: JWT secret not configured, using development default")
		cfg.JWT.Secret = devJWTSecret
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize file logging
	if err := middleware.InitLogger(cfg.Log.Dir); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Initialize database
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis
	rdb := initRedis(cfg)

	// Auto migrate database
	if err := autoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	mealRepo := repository.NewMealRepository(db)
	measurementRepo := repository.NewMeasurementRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Initialize services
	statsCache := service.NewStatsCache(rdb)
	authService := service.NewAuthService(userRepo, cfg.JWT)
	workoutService := service.NewWorkoutService(workoutRepo, statsCache)
	mealService := service.NewMealService(mealRepo, statsCache)
	measurementService := service.NewMeasurementService(measurementRepo, statsCache)
	goalService := service.NewGoalService(goalRepo, statsCache)
	statsService := service.NewStatsService(statsRepo, mealRepo, statsCache)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	workoutHandler := handler.NewWorkoutHandler(workoutService, statsService)
	mealHandler := handler.NewMealHandler(mealService, statsService)
	measurementHandler := handler.NewMeasurementHandler(measurementService, statsService)
	goalHandler := handler.NewGoalHandler(goalService)
	statsHandler := handler.NewStatsHandler(statsService)

	// Create Gin router
	router := gin.Default()

	// Add request logging middleware
	router.Use(middleware.RequestLoggerMiddleware())

	// Add CORS middleware
	router.Use(corsMiddleware())

	// Health check endpoints
	healthCheck := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"version":    Version,
			"commit":     Commit,
			"build_time": BuildTime,
			"time":       time.Now().Unix(),
		})
	}
	router.GET("/health", healthCheck)
	router.GET("/api/health", healthCheck)

	// API routes
	api := router.Group("/api")
	{
		authMiddleware := middleware.AuthMiddleware(authService)

		// User routes (register/login public, profile protected)
		authHandler.RegisterRoutes(api, authMiddleware)

		// Resource routes (protected)
		workoutHandler.RegisterRoutes(api, authMiddleware)
		mealHandler.RegisterRoutes(api, authMiddleware)
		measurementHandler.RegisterRoutes(api, authMiddleware)
		goalHandler.RegisterRoutes(api, authMiddleware)
		statsHandler.RegisterRoutes(api, authMiddleware)
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 10 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Close Redis connection
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}

	log.Println("Server exited properly")
}

func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.Server.Mode == "release" {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	if cfg.Redis.Host == "" {
		log.Println("Redis not configured, dashboard caching disabled")
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Workout{},
		&models.Exercise{},
		&models.ExerciseSet{},
		&models.Meal{},
		&models.Measurement{},
		&models.Goal{},
	)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
