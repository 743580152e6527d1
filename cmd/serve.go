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

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	_ "github.com/shenikar/rescue_dashboard/docs"
	v1 "github.com/shenikar/rescue_dashboard/internal/handler/http/v1"
	"github.com/shenikar/rescue_dashboard/internal/push"
	"github.com/shenikar/rescue_dashboard/internal/repository"
	"github.com/shenikar/rescue_dashboard/internal/service"
	"github.com/shenikar/rescue_dashboard/internal/webhook"
	redisclient "github.com/shenikar/rescue_dashboard/pkg/redis"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func serveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard daemon with the local API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

// core - ядро синхронизации с его зависимостями
type core struct {
	incidents   service.IncidentService
	analysis    service.AnalysisService
	redisClient *redis.Client
	worker      *webhook.AlertWorker
}

// buildCore собирает шлюз, push-канал и ядро. Redis необязателен.
func (a *app) buildCore(ctx context.Context) (*core, error) {
	gw := a.newGateway()

	bridge, err := push.NewBridge(a.cfg, a.log, a.metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create push bridge: %w", err)
	}

	c := &core{analysis: service.NewAnalysisService(gw, a.log)}

	var (
		cache     service.SnapshotCache
		publisher webhook.AlertPublisher
	)
	if a.cfg.RedisAddr != "" {
		redisClient, err := redisclient.NewRedisClient(ctx, a.cfg.RedisAddr, a.cfg.RedisPass, a.cfg.RedisDB)
		if err != nil {
			// без Redis работаем без офлайн-кеша и алертов
			a.log.WithError(err).Warn("Redis is unavailable, offline cache and alerts are disabled")
		} else {
			a.log.Info("Successfully connected to Redis")
			c.redisClient = redisClient
			cache = repository.NewSnapshotRepository(redisClient, a.cfg.SnapshotCacheTTL)
			publisher = webhook.NewRedisAlertPublisher(redisClient)
			c.worker = webhook.NewAlertWorker(redisClient, a.log, a.cfg)
		}
	}

	c.incidents = service.NewIncidentService(gw, bridge, cache, publisher, a.log, a.metrics)
	return c, nil
}

func (c *core) close() {
	c.incidents.Stop()
	if c.redisClient != nil {
		_ = c.redisClient.Close()
	}
}

func (a *app) serve(parent context.Context) error {
	log := a.log

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	c, err := a.buildCore(ctx)
	if err != nil {
		return err
	}
	defer c.close()

	if c.worker != nil {
		c.worker.Start(ctx)
	}

	if err := c.incidents.Start(ctx); err != nil {
		log.WithError(err).Warn("Dashboard started without data, waiting for the backend")
	}

	// Инициализация хэндлеров
	handler := v1.NewHandler(c.incidents, c.analysis, log, a.cfg)

	// Настройка Gin роутера
	router := gin.New()
	router.Use(gin.Recovery())
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(a.metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", a.cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	log.Infof("HTTP server started on port %s", a.cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		log.Info("Received shutdown signal, shutting down server...")
	case <-ctx.Done():
	case err := <-serverErr:
		return fmt.Errorf("error starting HTTP server: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	cancel()
	if c.worker != nil {
		<-c.worker.Done()
	}
	log.Info("Server gracefully stopped")
	return nil
}
