package main

import (
	"github.com/vladislavdragonenkov/storefront/internal/app"
	"github.com/vladislavdragonenkov/storefront/internal/envconfig"
)

const (
	envPort                = "PORT"
	envJWTSecret           = "JWT_SECRET"
	envTokenTTL            = "TOKEN_TTL"
	envStorageDriver       = "STORAGE_DRIVER"
	envPostgresDSN         = "POSTGRES_DSN"
	envPostgresAutoMigrate = "POSTGRES_AUTO_MIGRATE"
	envInstanceName        = "INSTANCE_NAME"
	envLogLevel            = "LOG_LEVEL"
)

func readConfigFromEnv(lookup envconfig.Lookup) (app.AuthConfig, []string) {
	cfg := app.DefaultAuthConfig()
	r := envconfig.NewReader(lookup)

	r.Port(envPort, &cfg.Addr)
	r.String(envJWTSecret, &cfg.JWTSecret)
	r.Duration(envTokenTTL, &cfg.TokenTTL, envconfig.PositiveDuration, "must be > 0")
	r.OneOf(envStorageDriver, &cfg.StorageDriver, app.StorageDriverMemory, app.StorageDriverPostgres)
	r.String(envPostgresDSN, &cfg.PostgresDSN)
	r.Bool(envPostgresAutoMigrate, &cfg.PostgresAutoMigrate)
	r.String(envInstanceName, &cfg.InstanceName)

	return cfg, r.Warnings()
}
