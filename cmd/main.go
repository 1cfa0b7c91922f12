package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ucode/ucode_go_task_service/api"
	"ucode/ucode_go_task_service/config"
	"ucode/ucode_go_task_service/pkg/cron"
	"ucode/ucode_go_task_service/pkg/jaeger"
	"ucode/ucode_go_task_service/pkg/logger"
	"ucode/ucode_go_task_service/storage/postgres"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	loggerLevel := logger.LevelDebug

	switch cfg.Environment {
	case config.DebugMode:
		loggerLevel = logger.LevelDebug
		gin.SetMode(gin.DebugMode)
	case config.TestMode:
		loggerLevel = logger.LevelDebug
		gin.SetMode(gin.TestMode)
	default:
		loggerLevel = logger.LevelInfo
		gin.SetMode(gin.ReleaseMode)
	}

	log := logger.NewLogger(cfg.ServiceName, loggerLevel)
	defer logger.Cleanup(log)
	log.Info("Service env", logger.String("environment", cfg.Environment), logger.String("version", cfg.Version))

	closer, err := jaeger.InitTracer(cfg.ServiceName, cfg.JaegerHostPort)
	if err != nil {
		log.Panic("jaeger.InitTracer", logger.Error(err))
	}
	defer closer.Close()

	if err = postgres.Migrate(cfg); err != nil {
		log.Panic("postgres.Migrate", logger.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pgStore, err := postgres.NewPostgres(ctx, cfg, log)
	if err != nil {
		log.Panic("postgres.NewPostgres", logger.Error(err))
	}
	defer pgStore.CloseDB()

	scheduler := cron.New(cfg, log, pgStore)
	if err = scheduler.RunJobs(ctx); err != nil {
		log.Panic("scheduler.RunJobs", logger.Error(err))
	}
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              cfg.HTTPPort,
		Handler:           api.SetUpRouter(cfg, log, pgStore),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP: Server being started...", logger.String("port", cfg.HTTPPort))

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Panic("server.ListenAndServe", logger.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("HTTP: Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		log.Error("server.Shutdown", logger.Error(err))
	}
}
