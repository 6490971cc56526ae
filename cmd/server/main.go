package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gayish/internal/cache"
	"gayish/internal/config"
	"gayish/internal/repository"
	"gayish/internal/service"
	"gayish/internal/transport/rest"
	"gayish/internal/transport/ws"
)

// @title Gayish Analysis API
// @version 1.0
// @description Chat screenshot scoring backend
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// Load analyzer config and log settings
	analyzerCfg := config.DefaultAnalyzerConfig()
	log.Printf("Analyzer Config:")
	log.Printf("  Timeout: %s", analyzerCfg.Timeout())
	if analyzerCfg.IsEnabled() {
		log.Printf("  Endpoint: %s", analyzerCfg.Endpoint)
	} else {
		log.Println("  Endpoint: NOT SET (returning reference results)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	analysisRepo := repository.NewAnalysisRepo(db)
	statsRepo := repository.NewStatsRepo(db)

	// Initialize caches
	resultCache := cache.NewResultCache(rdb)
	scoreboard := cache.NewScoreboardCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService()
	analyzer := service.NewAnalyzerService(analyzerCfg)
	statsSvc := service.NewStatsService(statsRepo, scoreboard)
	analysisSvc := service.NewAnalysisService(analyzer, analysisRepo, resultCache, statsSvc)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	analysisSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:     authSvc,
		AnalysisService: analysisSvc,
		StatsService:    statsSvc,
		WSHub:           wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/device")
		log.Println("  POST /v1/analyze")
		log.Println("  GET  /v1/analyses")
		log.Println("  GET  /v1/stats")
		log.Println("  POST /v1/share")
		log.Println("  GET  /v1/scoreboard")
		log.Println("  WS   /v1/ws/feed")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
