package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/app"
	"github.com/vladislavdragonenkov/storefront/internal/envconfig"
)

func main() {
	if err := app.SetupLogger(os.Getenv(envLogLevel)); err != nil {
		log.WithError(err).Warn("using info log level")
	}

	cfg, warnings := readConfigFromEnv(envconfig.WithFallback(os.LookupEnv, envInstanceName, os.Hostname))
	for _, warning := range warnings {
		log.Warn(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"addr":          cfg.Addr,
		"kafka_brokers": cfg.KafkaBrokers,
		"instance":      cfg.InstanceName,
	}).Info("запускаем notification-service")

	if err := app.RunNotificationService(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("notification-service остановлен")
}
