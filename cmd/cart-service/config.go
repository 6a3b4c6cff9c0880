package main

import (
	"github.com/vladislavdragonenkov/storefront/internal/app"
	"github.com/vladislavdragonenkov/storefront/internal/envconfig"
)

const (
	envPort          = "PORT"
	envRedisAddr     = "REDIS_ADDR"
	envRedisPassword = "REDIS_PASSWORD"
	envRedisDB       = "REDIS_DB"
	envCartTTL       = "CART_TTL"
	envInstanceName  = "INSTANCE_NAME"
	envLogLevel      = "LOG_LEVEL"
)

func readConfigFromEnv(lookup envconfig.Lookup) (app.CartConfig, []string) {
	cfg := app.DefaultCartConfig()
	r := envconfig.NewReader(lookup)

	r.Port(envPort, &cfg.Addr)
	r.String(envRedisAddr, &cfg.RedisAddr)
	r.String(envRedisPassword, &cfg.RedisPassword)
	r.Int(envRedisDB, &cfg.RedisDB, envconfig.NonNegative, "must be >= 0")
	r.Duration(envCartTTL, &cfg.CartTTL, envconfig.PositiveDuration, "must be > 0")
	r.String(envInstanceName, &cfg.InstanceName)

	return cfg, r.Warnings()
}
