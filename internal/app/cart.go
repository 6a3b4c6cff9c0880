package app

import (
	"context"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/httpapi"
	cartsvc "github.com/vladislavdragonenkov/storefront/internal/service/cart"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	redisstore "github.com/vladislavdragonenkov/storefront/internal/storage/redis"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

// RunCartService запускает корзины поверх Redis или памяти процесса.
func RunCartService(ctx context.Context, cfg CartConfig) error {
	logger := log.WithField("component", "app").WithField("service", "cart-service")

	store, checker, closeFn, err := initCartStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	logger.WithField("addr", cfg.Addr).Info("cart service starting")
	return serveHTTP(ctx, cfg.Addr, newCartHandler(cfg, store, checker), logger)
}

func newCartHandler(cfg CartConfig, store domain.CartStore, checker healthcheck.Checker) http.Handler {
	carts := cartsvc.NewService(store, cfg.CartTTL, log.WithField("component", "cart-service"))

	health := healthcheck.NewHandler("cart-service", version.Current().Version)
	if checker != nil {
		health.RegisterChecker("redis", checker)
	}

	return httpapi.NewHandler(
		log.WithField("component", "http").WithField("served_by", cfg.InstanceName),
		httpapi.NewCartHandler(carts, cfg.InstanceName, log.WithField("component", "cart-handler")),
		probeRoutes{health: health},
	)
}

// initCartStore подключается к Redis, если задан REDIS_ADDR, иначе хранит корзины в памяти.
func initCartStore(ctx context.Context, cfg CartConfig, logger *log.Entry) (domain.CartStore, healthcheck.Checker, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR is not set, using in-memory cart storage")
		return memory.NewCartStore(), nil, func() {}, nil
	}

	client, err := redisstore.Open(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	store := redisstore.NewCartStore(client)
	logger.WithField("redis_addr", cfg.RedisAddr).Info("using redis cart storage")

	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.WithError(err).Warn("failed to close redis client")
		}
	}
	return store, healthcheck.NewCheckFunc("redis", store.Ping), closeFn, nil
}
