package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/httpapi"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/service"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level)

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	handler := httpapi.New(
		service.NewUserService(store),
		service.NewExpenseService(store),
		service.NewBalanceService(store),
	)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logging(), middleware.Metrics(), middleware.CORS())
	handler.RegisterRoutes(router)

	slog.Info("Server starting", "address", cfg.Server.Addr)
	if err := router.Run(cfg.Server.Addr); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
