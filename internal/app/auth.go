package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/httpapi"
	authsvc "github.com/vladislavdragonenkov/storefront/internal/service/auth"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

// userStorage - выбранное хранилище пользователей и его обслуживание.
type userStorage struct {
	users   domain.UserRepository
	checker healthcheck.Checker
	closeFn func()
}

func (s userStorage) close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

// RunAuthService запускает регистрацию и логин.
func RunAuthService(ctx context.Context, cfg AuthConfig) error {
	logger := log.WithField("component", "app").WithField("service", "auth-service")

	storage, err := initUserStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer storage.close()

	logger.WithFields(log.Fields{
		"addr":           cfg.Addr,
		"storage_driver": cfg.StorageDriver,
	}).Info("auth service starting")
	return serveHTTP(ctx, cfg.Addr, newAuthHandler(cfg, storage), logger)
}

func newAuthHandler(cfg AuthConfig, storage userStorage) http.Handler {
	users := authsvc.NewService(
		storage.users,
		auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL),
		log.WithField("component", "auth-service"),
	)

	health := healthcheck.NewHandler("auth-service", version.Current().Version)
	if storage.checker != nil {
		health.RegisterChecker("storage", storage.checker)
	}

	return httpapi.NewHandler(
		log.WithField("component", "http").WithField("served_by", cfg.InstanceName),
		httpapi.NewAuthHandler(users, cfg.InstanceName, log.WithField("component", "auth-handler")),
		probeRoutes{health: health},
	)
}

// initUserStorage открывает хранилище пользователей согласно STORAGE_DRIVER.
func initUserStorage(ctx context.Context, cfg AuthConfig, logger *log.Entry) (userStorage, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.StorageDriver)) {
	case "", StorageDriverMemory:
		logger.Info("using in-memory user storage")
		return userStorage{users: memory.NewUserRepository()}, nil
	case StorageDriverPostgres:
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			return userStorage{}, errors.New("postgres storage driver requires POSTGRES_DSN")
		}

		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return userStorage{}, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.MigrateUp(ctx); err != nil {
				store.Close()
				return userStorage{}, fmt.Errorf("migrate postgres: %w", err)
			}
			logger.Info("postgres migrations applied")
		}

		logger.Info("using postgres user storage")
		return userStorage{
			users:   postgres.NewUserRepository(store),
			checker: healthcheck.NewCheckFunc("postgres", store.Ping),
			closeFn: store.Close,
		}, nil
	default:
		return userStorage{}, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}
}
