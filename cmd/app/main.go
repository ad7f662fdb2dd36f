package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"swiftserve/cmd"
	httpin "swiftserve/internal/adapters/in/http"
	"swiftserve/internal/adapters/out/postgres/orderrepo"
	"swiftserve/internal/adapters/out/postgres/restaurantrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck //best-effort flush on exit

	configs := getConfigs(logger)

	db, err := openDatabase(configs)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	app := cmd.NewCompositionRoot(configs, db, logger)

	hub := app.Hub()
	go hub.Run()

	jobManager := app.CreateJobManager(configs.DigestSchedule)
	if err := jobManager.StartAll(); err != nil {
		logger.Fatal("failed to start background jobs", zap.Error(err))
	}

	e, rateLimiter := buildWebServer(&app, configs, logger)

	serverErrors := make(chan error, 1)
	go func() {
		if err := e.Start("0.0.0.0:" + configs.HTTPPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	waitForShutdown(logger, serverErrors)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	jobManager.StopAll()
	rateLimiter.Close()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("web server shutdown failed", zap.Error(err))
	}
	if err := hub.Shutdown(ctx); err != nil {
		logger.Error("websocket hub shutdown failed", zap.Error(err))
	}
}

func getConfigs(logger *zap.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Warn("no .env file loaded, relying on process environment")
	}

	return cmd.Config{
		HTTPPort:       envOrDefault("HTTP_PORT", "8080"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         envOrDefault("DB_PORT", "5432"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBSslMode:      envOrDefault("DB_SSLMODE", "disable"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		DigestSchedule: envOrDefault("DIGEST_SCHEDULE", "@every 1m"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&restaurantrepo.RestaurantDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func buildWebServer(
	app *cmd.CompositionRoot, configs cmd.Config, logger *zap.Logger,
) (*echo.Echo, *httpin.RateLimiter) {
	e := echo.New()
	e.HideBanner = true

	e.Use(httpin.RequestLogger(logger))

	server := httpin.NewServer(
		app.CreatePlaceOrderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateClaimOrderCommandHandler(),
		app.CreateGetCustomerOrdersQueryHandler(),
		app.CreateGetRestaurantOrdersQueryHandler(),
		app.CreateGetOrderDetailsQueryHandler(),
		app.CreateGetAvailableOrdersQueryHandler(),
		app.CreateGetAgentOrdersQueryHandler(),
		app.Hub(),
	)
	rateLimiter := httpin.NewRateLimiter(20, 40)
	server.RegisterRoutes(e, httpin.NewSessionGate([]byte(configs.SessionSecret)), rateLimiter)

	return e, rateLimiter
}

func waitForShutdown(logger *zap.Logger, serverErrors <-chan error) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErrors:
		logger.Error("web server failed, shutting down", zap.Error(err))
	}
}
