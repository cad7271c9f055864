package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tillpoint/internal/handler"
	"tillpoint/internal/middleware"
	"tillpoint/internal/repositories"
	"tillpoint/internal/router"
	"tillpoint/internal/service"
	"tillpoint/pkg/cache"
	"tillpoint/pkg/database"
	"tillpoint/pkg/envconfig"
	"tillpoint/pkg/flags"
	"tillpoint/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	flagConfig := flags.Parse()

	envErr := envconfig.LoadEnvFile(".env")

	loggerConfig := logger.Config{
		Level:       envconfig.GetLogLevel(),
		Format:      envconfig.GetEnv("LOG_FORMAT", "json"),
		Output:      envconfig.GetEnv("LOG_OUTPUT", "stdout"),
		Environment: envconfig.GetEnv("ENVIRONMENT", "development"),
	}

	appLogger := logger.New(loggerConfig)
	defer appLogger.Close()

	if envErr != nil {
		appLogger.Warn("Failed to load .env file", "error", envErr)
	} else {
		appLogger.Debug(".env file loaded successfully")
	}

	appLogger.Info("Starting Tillpoint application",
		"environment", loggerConfig.Environment,
		"log_level", loggerConfig.Level)

	authConfig := envconfig.LoadAuthConfig()
	if authConfig.JWTSecret == "" {
		appLogger.Fatal("JWT_SECRET must be set")
	}

	db, err := database.NewConnection(envconfig.LoadDatabaseConfig(), appLogger)
	if err != nil {
		appLogger.Fatal("Failed to establish database connection", "error", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := db.HealthCheck(); err != nil {
		appLogger.Error("Database health check failed", "error", err)
	} else {
		appLogger.Info("Database health check passed")
	}

	cacheConfig := envconfig.LoadCacheConfig()
	productCache := cache.New(cacheConfig.Addr, cacheConfig.Password, cacheConfig.DB, cacheConfig.TTL, appLogger)
	defer productCache.Close()

	userRepo := repositories.NewUserRepository(appLogger, db)
	categoryRepo := repositories.NewCategoryRepository(appLogger, db)
	productRepo := repositories.NewProductRepository(appLogger, db)
	ingredientRepo := repositories.NewIngredientRepository(appLogger, db)
	orderRepo := repositories.NewOrderRepository(appLogger, db)
	purchaseRepo := repositories.NewPurchaseRepository(appLogger, db)
	reportRepo := repositories.NewReportRepository(appLogger, db)

	authService := service.NewAuthService(userRepo, authConfig, appLogger)
	categoryService := service.NewCategoryService(categoryRepo, appLogger)
	productService := service.NewProductService(productRepo, ingredientRepo, productCache, appLogger)
	ingredientService := service.NewIngredientService(ingredientRepo, productCache, appLogger)
	orderService := service.NewOrderService(orderRepo, productRepo, productCache, appLogger)
	purchaseService := service.NewPurchaseService(purchaseRepo, ingredientRepo, productCache, appLogger)
	reportService := service.NewReportService(reportRepo, appLogger)

	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authService, appLogger),
		Category:   handler.NewCategoryHandler(categoryService, appLogger),
		Product:    handler.NewProductHandler(productService, appLogger),
		Ingredient: handler.NewIngredientHandler(ingredientService, appLogger),
		Order:      handler.NewOrderHandler(orderService, appLogger),
		Purchase:   handler.NewPurchaseHandler(purchaseService, appLogger),
		Report:     handler.NewReportHandler(reportService, appLogger),
		Health:     handler.NewHealthHandler(db, appLogger),
	}

	authMiddleware := middleware.NewAuth(authService, userRepo, appLogger)
	mux := router.New(handlers, authMiddleware)

	httpHandler := appLogger.HTTPMiddleware(mux)

	host := envconfig.GetEnv("HOST", "localhost")
	port := flagConfig.Port
	if port == "" {
		port = envconfig.GetEnv("PORT", "8080")
	}

	server := &http.Server{
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		server.Addr = host + ":" + port

		go func() {
			appLogger.Info("Starting HTTP server", "address", server.Addr)

			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				serverErrors <- err
			}
		}()

		select {
		case err := <-serverErrors:
			if strings.Contains(err.Error(), "address already in use") && i < maxRetries-1 {
				port = fmt.Sprintf("%d", 8080+i+1)
				appLogger.Warn("Port already in use, trying alternative port",
					"current_address", server.Addr, "next_port", port)
				continue
			}
			appLogger.Fatal("Failed to start server after retries", "error", err)
		case <-time.After(200 * time.Millisecond):
			appLogger.Info("Server started successfully", "port", port)
		}

		break
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		appLogger.Fatal("Server error", "error", err)
	case sig := <-quit:
		appLogger.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Graceful shutdown failed, forcing close", "error", err)
		server.Close()
	}

	appLogger.Info("Server stopped")
}
