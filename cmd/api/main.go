package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assetdesk/internal/cache"
	"assetdesk/internal/config"
	httpx "assetdesk/internal/http"
	"assetdesk/internal/logging"
	"assetdesk/internal/services/inventory"
	"assetdesk/internal/store/memory"
	"assetdesk/internal/store/postgres"
	"assetdesk/internal/store/repositories"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.App)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init store
	var repo repositories.AssetRepository
	if cfg.DB.DSN != "" {
		pool := postgres.MustOpen(ctx, cfg.DB.DSN)
		defer pool.Close()
		repo = postgres.NewAssetRepository(pool)
	} else {
		log.Warn().Msg("DB_DSN not set, using in-memory store")
		repo = memory.NewAssetRepository()
	}

	// Init list cache
	var listCache cache.ListCache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		rdb, err := cache.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis connect failed")
		}
		defer rdb.Close()
		listCache = cache.NewRedis(rdb, cfg.Redis.ListTTL)
	}

	if cfg.Seed.Enabled {
		if _, err := inventory.Seed(ctx, repo, cfg.Seed.Count, time.Now()); err != nil {
			log.Fatal().Err(err).Msg("seed failed")
		}
	}

	r := httpx.NewRouter(httpx.RouterDependencies{
		Config:    cfg,
		Inventory: inventory.NewService(repo, listCache),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Msgf("assetdesk API listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	log.Info().Msg("server stopped")
}
