package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/app"
	"github.com/vladislavdragonenkov/storefront/internal/envconfig"
)

func main() {
	decimal.MarshalJSONWithoutQuotes = true
	if err := app.SetupLogger(os.Getenv(envLogLevel)); err != nil {
		log.WithError(err).Warn("using info log level")
	}

	cfg, warnings := readConfigFromEnv(envconfig.WithFallback(os.LookupEnv, envInstanceName, os.Hostname))
	for _, warning := range warnings {
		log.Warn(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{"addr": cfg.Addr, "instance": cfg.InstanceName}).Info("запускаем product-service")

	if err := app.RunProductService(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("product-service остановлен")
}
