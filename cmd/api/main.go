package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"

	"storefront-catalog/internal/config"
	"storefront-catalog/internal/database"
	"storefront-catalog/internal/handlers"
	"storefront-catalog/internal/media"
	"storefront-catalog/internal/repository"
	"storefront-catalog/internal/routes"
	"storefront-catalog/internal/server"
)

func main() {
	envFile := pflag.String("env-file", ".env", "archivo .env para desarrollo local")
	pflag.Parse()

	cfg := config.LoadConfig(*envFile)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Error("connect to mongo", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("disconnect mongo", "err", err)
		}
	}()

	collection := client.Database(cfg.MongoDB).Collection(database.ProductsCollection)
	if err := database.EnsureIndexes(ctx, collection); err != nil {
		logger.Warn("ensure indexes", "err", err)
	}

	photos, err := media.NewCloudinary(cfg.CloudinaryURL, cfg.CloudinaryFolder, logger)
	if err != nil {
		logger.Error("init media store", "err", err)
		os.Exit(1)
	}

	repo := repository.NewProductRepository(collection)
	productHandler := handlers.NewProductHandler(repo, photos, cfg.ProductsPerPage, logger)

	gin.SetMode(gin.ReleaseMode)
	router := routes.NewRouter(productHandler, routes.Options{
		Logger:         logger,
		CORSOrigins:    cfg.CORSOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Ready: func(ctx context.Context) error {
			return database.Ping(ctx, client)
		},
	})

	srv := server.New(":"+cfg.Port, router, logger)
	if err := srv.Run(ctx, cfg.ShutdownTimeout); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
