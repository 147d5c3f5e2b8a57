package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/events"
	"github.com/portfolio/internal/logging"
	"github.com/portfolio/internal/router"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Must("error", "console").Fatal("failed to load config", zap.Error(err))
	}

	logger := logging.Must(cfg.Log.Level, cfg.Log.Format)
	defer logger.Sync()

	gin.SetMode(cfg.Server.GinMode)

	// 初始化数据库
	gdb, err := db.Open(cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}

	created, err := db.EnsureUser(gdb, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		logger.Fatal("failed to ensure admin user", zap.Error(err))
	}
	if created {
		logger.Info("admin user created", zap.String("email", cfg.Admin.Email))
	}

	var eventLog events.Log = events.NewGormLog(gdb)
	if cfg.Redis.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := events.Connect(ctx, cfg.Redis.URL)
		cancel()
		if err != nil {
			logger.Warn("redis unavailable, database events fall back to sql table", zap.Error(err))
		} else {
			defer rdb.Close()
			eventLog = events.NewRedisLog(rdb, events.StreamKey).WithLogger(logger)
		}
	}

	r, api, err := router.SetupRouter(gdb, router.Options{
		SessionSecret:      cfg.Session.Secret,
		Logger:             logger,
		EventLog:           eventLog,
		PollInterval:       cfg.Events.PollInterval,
		FeaturedSkillsOnly: cfg.Landing.FeaturedSkillsOnly,
		UploadDir:          cfg.Upload.Dir,
		UploadURL:          cfg.Upload.URLPath,
		Metrics:            cfg.Metrics.Enabled,
	})
	if err != nil {
		logger.Fatal("failed to set up router", zap.Error(err))
	}
	api.Database().RecordConnection(context.Background())

	srv := newHTTPServer(cfg.Server.ListenAddr, r)

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("driver", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}
