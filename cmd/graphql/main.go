// Standalone GraphQL server: go run ./cmd/graphql
package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"procurement.GO/api"
	graphqlApi "procurement.GO/api/graphql"
	"procurement.GO/config"
	"procurement.GO/core/auth"
	"procurement.GO/core/logger"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadAppConfig()

	zaplog, err := logger.NewZapLog(cfg.LogLevel)
	if err != nil {
		log.Fatal("logger:", err)
	}
	defer zaplog.Sync()

	if cfg.JWTSecret == "" {
		zaplog.Fatal("JWT_SECRET must be set")
	}

	db, err := config.NewDB()
	if err != nil {
		zaplog.Fatal("db", zap.Error(err))
	}
	if err := config.ConnectRedis(); err != nil {
		zaplog.Warn("redis unavailable", zap.Error(err))
	}
	deps := api.NewDepsFromConfig(cfg, db, zaplog, config.RedisClient)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(logger.RequestLog(zaplog))
	graphqlApi.RegisterGraphQLRoutes(e.Group("/api", auth.Middleware(cfg.JWTSecret)), deps)
	api.ApplyRoutes(e, deps)

	// ASCII banner on start (random font each run)
	gqlFonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "doom", "larry3d", "puffy", "rectangles", "bigchief"}
	fig := figure.NewFigure("PO GQL ->", gqlFonts[rand.Intn(len(gqlFonts))], true)
	fig.Print()
	fmt.Println("Standalone GraphQL server")

	zaplog.Info("GraphQL endpoint", zap.String("url", fmt.Sprintf("http://localhost:%s/api/graphql", cfg.Port)))
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
