package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pantryos/inventory-service/config"
	"github.com/pantryos/inventory-service/internal/api"
	"github.com/pantryos/inventory-service/internal/database"
	"github.com/pantryos/inventory-service/pkg/cache"
	"github.com/pantryos/inventory-service/pkg/logger"
	"github.com/pantryos/inventory-service/pkg/postgres"

	"github.com/pantryos/inventory-service/internal/alert"
	alertH "github.com/pantryos/inventory-service/internal/alert/handler"
	alertRepoPkg "github.com/pantryos/inventory-service/internal/alert/repository"
	alertUCPkg "github.com/pantryos/inventory-service/internal/alert/usecase"

	categoryH "github.com/pantryos/inventory-service/internal/category/handler"
	categoryRepoPkg "github.com/pantryos/inventory-service/internal/category/repository"
	categoryUCPkg "github.com/pantryos/inventory-service/internal/category/usecase"

	itemH "github.com/pantryos/inventory-service/internal/item/handler"
	itemRepoPkg "github.com/pantryos/inventory-service/internal/item/repository"
	itemUCPkg "github.com/pantryos/inventory-service/internal/item/usecase"

	shoppingH "github.com/pantryos/inventory-service/internal/shoppinglist/handler"
	shoppingRepoPkg "github.com/pantryos/inventory-service/internal/shoppinglist/repository"
	shoppingUCPkg "github.com/pantryos/inventory-service/internal/shoppinglist/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if err := database.Migrate(context.Background(), db.DB); err != nil {
		appLogger.Fatal("Could not run migrations", zap.Error(err))
	}

	// 4. Initialize Redis (optional; the category cache degrades to direct reads)
	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, category caching disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 5. Initialize Repositories
	itemRepo := itemRepoPkg.NewPGRepository(db.DB)
	categoryRepo := categoryRepoPkg.NewPGRepository(db.DB)
	alertRepo := alertRepoPkg.NewPGRepository(db.DB)
	shoppingRepo := shoppingRepoPkg.NewPGRepository(db.DB)

	// 6. Initialize UseCases
	evaluator := alert.NewEvaluator(cfg.Alerts.ExpiryWindowDays)
	cacheTTL := time.Duration(cfg.Alerts.CategoryCacheTTLSeconds) * time.Second

	categoryUC := categoryUCPkg.NewCategoryUseCase(categoryRepo, redisClient, cacheTTL, appLogger)
	alertUC := alertUCPkg.NewAlertUseCase(alertRepo, appLogger)
	shoppingUC := shoppingUCPkg.NewShoppingListUseCase(shoppingRepo, appLogger)
	itemUC := itemUCPkg.NewItemUseCase(db, itemRepo, alertRepo, shoppingRepo, categoryRepo,
		evaluator, cfg.Alerts.MutationRetries, appLogger)

	// 7. Initialize Handlers + Router
	router := api.SetupRouter(&api.Handlers{
		Item:         itemH.NewItemHandler(itemUC, appLogger),
		Category:     categoryH.NewCategoryHandler(categoryUC, appLogger),
		Alert:        alertH.NewAlertHandler(alertUC, appLogger),
		ShoppingList: shoppingH.NewShoppingListHandler(shoppingUC, appLogger),
	})

	// 8. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
