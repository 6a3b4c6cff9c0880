package main

import (
	"github.com/vladislavdragonenkov/storefront/internal/app"
	"github.com/vladislavdragonenkov/storefront/internal/envconfig"
)

const (
	envPort         = "PORT"
	envJWTSecret    = "JWT_SECRET"
	envInstanceName = "INSTANCE_NAME"
	envLogLevel     = "LOG_LEVEL"
)

func readConfigFromEnv(lookup envconfig.Lookup) (app.ProductConfig, []string) {
	cfg := app.DefaultProductConfig()
	r := envconfig.NewReader(lookup)

	r.Port(envPort, &cfg.Addr)
	r.String(envJWTSecret, &cfg.JWTSecret)
	r.String(envInstanceName, &cfg.InstanceName)

	return cfg, r.Warnings()
}
