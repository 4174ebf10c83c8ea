package main

import (
	"context"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"

	"frt-offers/config"
	"frt-offers/data"
	"frt-offers/repository"
	"frt-offers/service"
)

// app holds the wired components shared by the commands.
type app struct {
	store   *repository.ReferenceStore
	offers  *service.OfferService
	closers []func() error
}

func referenceSource(dc config.DataConfig) fs.FS {
	if dc.Dir != "" {
		return os.DirFS(dc.Dir)
	}
	return data.Files
}

// newApp loads the reference data and builds the offer service. A reference
// data error is fatal: the caller must not serve requests.
func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger, withCache bool) (*app, error) {
	store, err := repository.NewReferenceStore(referenceSource(cfg.Data), logger.Named("reference"))
	if err != nil {
		return nil, err
	}
	a := &app{store: store}

	var cache repository.CacheRepository
	if withCache {
		cache = a.newCache(ctx, cfg.Cache, logger)
	}
	a.offers = service.NewOfferService(store, cache, cfg.GetCacheTTL(), logger.Named("offers"))
	return a, nil
}

func (a *app) newCache(ctx context.Context, cc config.CacheConfig, logger *zap.Logger) repository.CacheRepository {
	switch cc.Backend {
	case "none":
		return nil
	case "redis":
		rc := repository.NewRedisCache(cc.RedisAddr, cc.RedisPassword, cc.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := rc.Ping(pingCtx); err != nil {
			logger.Warn("redis unavailable, using in-memory cache", zap.String("addr", cc.RedisAddr), zap.Error(err))
			_ = rc.Close()
			return a.newMemoryCache(cc)
		}
		a.closers = append(a.closers, rc.Close)
		logger.Info("using redis cache", zap.String("addr", cc.RedisAddr))
		return rc
	default:
		return a.newMemoryCache(cc)
	}
}

func (a *app) newMemoryCache(cc config.CacheConfig) *repository.MemoryCache {
	mc := repository.NewBoundedMemoryCache(cc.MaxEntries, 0)
	a.closers = append(a.closers, func() error {
		mc.Stop()
		return nil
	})
	return mc
}

func (a *app) Close() {
	for _, closeFn := range a.closers {
		_ = closeFn()
	}
}
