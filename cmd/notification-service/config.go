package main

import (
	"github.com/vladislavdragonenkov/storefront/internal/app"
	"github.com/vladislavdragonenkov/storefront/internal/envconfig"
)

const (
	envPort              = "PORT"
	envKafkaBrokers      = "KAFKA_BROKERS"
	envNotificationTopic = "NOTIFICATION_TOPIC"
	envKafkaGroupID      = "KAFKA_GROUP_ID"
	envInstanceName      = "INSTANCE_NAME"
	envLogLevel          = "LOG_LEVEL"
)

func readConfigFromEnv(lookup envconfig.Lookup) (app.NotificationConfig, []string) {
	cfg := app.DefaultNotificationConfig()
	r := envconfig.NewReader(lookup)

	r.Port(envPort, &cfg.Addr)
	r.List(envKafkaBrokers, &cfg.KafkaBrokers)
	r.String(envNotificationTopic, &cfg.NotificationTopic)
	r.String(envKafkaGroupID, &cfg.KafkaGroupID)
	r.String(envInstanceName, &cfg.InstanceName)

	return cfg, r.Warnings()
}
