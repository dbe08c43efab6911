package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/RamanShrikant/basketball-manager/internal/api/handlers"
	"github.com/RamanShrikant/basketball-manager/internal/websocket"
	"github.com/RamanShrikant/basketball-manager/pkg/cache"
	"github.com/RamanShrikant/basketball-manager/pkg/config"
	"github.com/RamanShrikant/basketball-manager/pkg/database"
	"github.com/RamanShrikant/basketball-manager/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	structuredLogger := logger.InitLogger("info", cfg.IsDevelopment())
	logger.WithService("season-service").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
	}).Info("starting basketball season service")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	var db *database.DB
	if cfg.DatabaseURL != "" {
		db, err = database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
		if err != nil {
			logger.WithService("season-service").WithError(err).Warn("failed to connect to database, continuing without persistence")
		} else {
			defer db.Close()
		}
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.WithService("season-service").Fatalf("failed to parse redis url: %v", err)
	}
	redisClient := redis.NewClient(opt)
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithService("season-service").Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	cacheService := cache.NewSeasonCacheService(redisClient, structuredLogger)

	wsHub := websocket.NewHub(structuredLogger)
	go wsHub.Run()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	gamesHandler := handlers.NewGamesHandler(cacheService, cfg, structuredLogger)
	seasonsHandler := handlers.NewSeasonsHandler(db, cacheService, wsHub, cfg, structuredLogger)
	progressionHandler := handlers.NewProgressionHandler(cfg, structuredLogger)
	healthHandler := handlers.NewHealthHandler(db, redisClient, structuredLogger)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/games/simulate", gamesHandler.SimulateGame)

		apiV1.POST("/seasons/run", seasonsHandler.RunSeason)
		apiV1.GET("/seasons/:run_id/results", seasonsHandler.GetResults)

		apiV1.POST("/progression/apply", progressionHandler.Apply)
	}

	router.GET("/ws/season-progress/:run_id", wsHub.HandleWebSocket)

	router.GET("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)
	router.GET("/metrics", healthHandler.GetMetrics)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.WithService("season-service").WithField("port", cfg.Port).Info("season service started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithService("season-service").Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.WithService("season-service").Info("shutting down season service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithService("season-service").Fatalf("season service forced to shutdown: %v", err)
	}

	logger.WithService("season-service").Info("season service exited")
}
