package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/savedsphere/sphered/internal/config"
	"github.com/savedsphere/sphered/internal/enrich"
	"github.com/savedsphere/sphered/internal/httpserver"
	"github.com/savedsphere/sphered/internal/httpserver/deps"
	"github.com/savedsphere/sphered/internal/logger"
	"github.com/savedsphere/sphered/internal/mirror"
	"github.com/savedsphere/sphered/internal/redis"
	"github.com/savedsphere/sphered/internal/repository"
	"github.com/savedsphere/sphered/internal/scheduler"
	"github.com/savedsphere/sphered/internal/sources/seed"
	"github.com/savedsphere/sphered/internal/store/redisstore"
	"github.com/savedsphere/sphered/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	redisStore  *redisstore.Store
	repo        *repository.Repository
	hub         *mirror.Hub
	purger      *scheduler.TrashPurger
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Initialize Redis-backed store
	st := redisstore.New(redisClient, loggerClient)

	// Repository with thumbnail enrichment
	fetcher := enrich.NewFetcher(cfg.EnrichTimeout, loggerClient)
	repo := repository.New(st, fetcher, loggerClient)

	// Mirror hub with debounced refresh on store changes
	hub := mirror.NewHub(repo, st, loggerClient, cfg.RefreshDebounce)

	// Trash purger
	purger := scheduler.NewTrashPurger(repo, loggerClient, cfg.PurgeInterval)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:      loggerClient,
		StartTime:   time.Now(),
		Version:     version.Version,
		Commit:      version.Commit,
		BuildDate:   version.BuildDate,
		GoVersion:   version.GoVersion,
		TimeNow:     time.Now,
		Repo:        repo,
		Hub:         hub,
		Store:       st,
		RedisClient: redisClient,
		CORSOrigins: cfg.CORSOrigins,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		redisStore:  st,
		repo:        repo,
		hub:         hub,
		purger:      purger,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Sphered v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Sphered %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Subscribe to cross-instance change notifications
	if err := a.redisStore.Start(ctx); err != nil {
		return fmt.Errorf("failed to start store change listener: %w", err)
	}

	// Ensure one platform folder per main platform exists
	if err := a.repo.InitializePlatformFolders(ctx); err != nil {
		return fmt.Errorf("failed to initialize platform folders: %w", err)
	}

	// Seed collections from file (if configured)
	if a.cfg.SeedFile != "" {
		a.logger.Info("seed file configured, importing",
			logger.String("file", a.cfg.SeedFile))
		loader := seed.NewLoader(a.cfg.SeedFile)
		file, err := loader.Load()
		if err != nil {
			a.logger.Warn("failed to load seed file", logger.Error(err))
		} else {
			importer := seed.NewImporter(a.repo, a.logger)
			if _, err := importer.Import(ctx, file); err != nil {
				a.logger.Warn("seed import failed", logger.Error(err))
			}
		}
	}

	// Start mirror hub (initial refresh + change-driven refreshes)
	if err := a.hub.Start(ctx); err != nil {
		return fmt.Errorf("failed to start mirror hub: %w", err)
	}
	a.logger.Info("mirror hub started",
		logger.Duration("debounce", a.cfg.RefreshDebounce))

	// Log what came up
	syncer := scheduler.NewStoreSyncer(a.hub, a.logger)
	if err := syncer.Sync(ctx); err != nil {
		a.logger.Warn("startup sync failed", logger.Error(err))
	}

	// Start trash purger
	if err := a.purger.Start(ctx); err != nil {
		return fmt.Errorf("failed to start trash purger: %w", err)
	}
	a.logger.Info("trash purger started",
		logger.Duration("interval", a.cfg.PurgeInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	// Stop schedulers and the hub
	a.purger.Stop()
	a.hub.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Sphered stopped cleanly")
	return nil
}
