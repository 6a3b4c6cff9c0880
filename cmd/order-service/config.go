package main

import (
	"github.com/vladislavdragonenkov/storefront/internal/app"
	"github.com/vladislavdragonenkov/storefront/internal/envconfig"
)

const (
	envPort                  = "PORT"
	envMetricsAddr           = "METRICS_ADDR"
	envJWTSecret             = "JWT_SECRET"
	envNotificationURL       = "NOTIFICATION_SERVICE_URL"
	envNotificationTransport = "NOTIFICATION_TRANSPORT"
	envKafkaBrokers          = "KAFKA_BROKERS"
	envNotificationTopic     = "NOTIFICATION_TOPIC"
	envNotificationTimeout   = "NOTIFICATION_TIMEOUT"
	envInstanceName          = "INSTANCE_NAME"
	envLogLevel              = "LOG_LEVEL"
)

// readConfigFromEnv собирает конфигурацию; некорректные значения заменяются значениями по умолчанию.
func readConfigFromEnv(lookup envconfig.Lookup) (app.OrderConfig, []string) {
	cfg := app.DefaultOrderConfig()
	r := envconfig.NewReader(lookup)

	r.Port(envPort, &cfg.Addr)
	r.String(envMetricsAddr, &cfg.MetricsAddr)
	r.String(envJWTSecret, &cfg.JWTSecret)
	r.String(envNotificationURL, &cfg.NotificationURL)
	r.OneOf(envNotificationTransport, &cfg.NotificationTransport, app.TransportHTTP, app.TransportKafka)
	r.List(envKafkaBrokers, &cfg.KafkaBrokers)
	r.String(envNotificationTopic, &cfg.NotificationTopic)
	r.Duration(envNotificationTimeout, &cfg.NotificationTimeout, envconfig.PositiveDuration, "must be > 0")
	r.String(envInstanceName, &cfg.InstanceName)

	return cfg, r.Warnings()
}
