package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nvieira/go-asteroid-watch/internal/api"
	"github.com/nvieira/go-asteroid-watch/internal/config"
	"github.com/nvieira/go-asteroid-watch/internal/engine"
	"github.com/nvieira/go-asteroid-watch/internal/ingestion"
	"github.com/nvieira/go-asteroid-watch/internal/logging"
	"github.com/nvieira/go-asteroid-watch/internal/lookup"
	"github.com/nvieira/go-asteroid-watch/internal/observability"
	"github.com/nvieira/go-asteroid-watch/internal/repository"
	"github.com/nvieira/go-asteroid-watch/internal/stream"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	strategies := []engine.Strategy{engine.KineticImpactorStrategy()}
	if cfg.Engine.GravityTractorEnabled {
		strategies = append(strategies, engine.GravityTractorStrategy())
	}
	eng := engine.New(strategies...)

	places := lookup.NewStaticSource()
	metrics := observability.NewMetrics()

	// Broadcaster fans severe assessments out to SSE subscribers
	broadcaster := stream.NewBroadcaster()

	// Start ingestion manager (NEO feed poller + worker pool)
	mgr := ingestion.NewManager(cfg, db, broadcaster, eng, places, metrics)
	mgr.Start(ctx)

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(5, 10)) // 5 req/s global limit

	handler := api.NewHandler(eng, db, broadcaster, places, metrics, cfg.Engine.DefaultTimeToImpactHours)
	handler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	mgr.Stop()
	broadcaster.Close() // Close all streams gracefully

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
