package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AmanLovesCats/RCC-Bot/config"
	"github.com/AmanLovesCats/RCC-Bot/handlers"
	"github.com/AmanLovesCats/RCC-Bot/ingest"
	"github.com/AmanLovesCats/RCC-Bot/live"
	"github.com/AmanLovesCats/RCC-Bot/middleware"
	"github.com/AmanLovesCats/RCC-Bot/roster"
	api "github.com/AmanLovesCats/RCC-Bot/routes"
	"github.com/AmanLovesCats/RCC-Bot/services"
	"github.com/AmanLovesCats/RCC-Bot/storage"
	"github.com/AmanLovesCats/RCC-Bot/store"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Флат-файловое хранилище базы
	fileStore := store.New(cfg.DataFile, cfg.BackupFile, logger)
	logger.Info("file store initialized", slog.String("path", fileStore.Path()))

	// Cloudflare R2 — опционально: без кредов нет снапшотов и архива загрузок
	var uploader storage.FileUploader
	if cfg.SnapshotsEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("R2 credentials not set, snapshots disabled")
	}

	// WebSocket Hub дашборда
	wsHub := live.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Сервисы
	clanRoster := roster.New(cfg.RosterBaseURL, cfg.ClanGuildID)
	statsService := services.NewStatsService(clanRoster)
	uploadService := services.NewUploadService(
		cfg.UploadWait,
		ingest.New(logger),
		ingest.NewHTTPFetcher(),
		fileStore,
		uploader,
		logger,
	)
	authService := services.NewAuthService(cfg.AdminPasswordHash, []byte(cfg.JWTSecretKey))
	cooldownGuard := middleware.NewCooldownGuard(cfg.Cooldown)
	logger.Info("services initialized")

	// Фоновые задачи: снапшоты и уборка истёкшего состояния
	scheduler, err := services.StartScheduler(fileStore, uploader, cfg.SnapshotInterval, logger, uploadService, cooldownGuard)
	if err != nil {
		logger.Error("failed to start scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			logger.Error("failed to stop scheduler", slog.Any("error", err))
		}
	}()

	// Обработчики HTTP
	gatewayHandler := handlers.NewGatewayHandler(
		fileStore,
		statsService,
		uploadService,
		clanRoster,
		cooldownGuard,
		wsHub,
		cfg.UploadWait,
		logger,
	)
	dashboardHandler := handlers.NewDashboardHandler(fileStore, wsHub, logger)
	authHandler := handlers.NewAuthHandler(authService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, logger)
	logger.Info("HTTP handlers initialized")

	// Маршрутизатор
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		gatewayHandler,
		dashboardHandler,
		authHandler,
		webSocketHandler,
		[]byte(cfg.JWTSecretKey),
	)
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server stopped gracefully")
		}
	}
}
