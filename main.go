package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/common-nighthawk/go-figure"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"procurement.GO/api"
	_ "procurement.GO/api/graphql"
	_ "procurement.GO/api/purchaseorder"
	_ "procurement.GO/api/report"
	_ "procurement.GO/api/supplier"
	"procurement.GO/config"
	"procurement.GO/core/auth"
	"procurement.GO/core/logger"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadAppConfig()

	zaplog, err := logger.NewZapLog(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zaplog.Sync()

	if cfg.JWTSecret == "" {
		zaplog.Fatal("JWT_SECRET must be set")
	}

	// Initialize Redis
	if err := config.ConnectRedis(); err != nil {
		zaplog.Warn("Redis configured but not reachable, using in-memory price cache", zap.Error(err))
	} else if config.RedisClient != nil {
		zaplog.Info("Redis connection successful.")
	}

	db, err := config.NewDB()
	if err != nil {
		zaplog.Fatal("failed to connect to DB", zap.Error(err))
	}
	sqldb, err := db.DB()
	if err != nil {
		zaplog.Fatal("failed to get DB instance", zap.Error(err))
	}
	if err := sqldb.Ping(); err != nil {
		zaplog.Fatal("database connection failed", zap.Error(err))
	}
	zaplog.Info("Database connection successful.")

	deps := api.NewDepsFromConfig(cfg, db, zaplog, config.RedisClient)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(logger.RequestLog(zaplog))

	api.ApplyRoutes(e, deps)
	apiGroup := e.Group("/api", auth.Middleware(cfg.JWTSecret))
	api.ApplyModules(apiGroup, deps)

	figure.NewFigure(cfg.AppName, "slant", true).Print()

	zaplog.Info("Server running", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zaplog.Fatal("server stopped", zap.Error(err))
	}
}
