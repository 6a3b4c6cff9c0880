package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/httpapi"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/notification"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

// RunNotificationService принимает уведомления по HTTP и, если заданы брокеры, из Kafka.
func RunNotificationService(ctx context.Context, cfg NotificationConfig) error {
	logger := log.WithField("component", "app").WithField("service", "notification-service")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sink := notification.NewSink(log.WithField("component", "notification-sink"), cfg.InstanceName)
	health := healthcheck.NewHandler("notification-service", version.Current().Version)

	consumer, err := startNotificationConsumer(ctx, cfg, sink, health, logger)
	if err != nil {
		return err
	}
	if consumer != nil {
		defer func() {
			// Consume крутится в цикле до отмены контекста, поэтому сначала cancel.
			cancel()
			stopKafkaConsumer(consumer, logger)
		}()
	}

	handler := newNotificationHandler(cfg, sink, health)
	logger.WithField("addr", cfg.Addr).Info("notification service starting")
	return serveHTTP(ctx, cfg.Addr, handler, logger)
}

// startNotificationConsumer подключает Kafka, если заданы брокеры. Недоступная Kafka не мешает
// принимать HTTP: сервис помечается degraded.
func startNotificationConsumer(
	ctx context.Context,
	cfg NotificationConfig,
	sink *notification.Sink,
	health *healthcheck.Handler,
	logger *log.Entry,
) (*kafka.Consumer, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return nil, nil
	}

	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, []string{cfg.NotificationTopic}, notificationMessageHandler(sink))
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka consumer, continuing with http only")
		health.RegisterChecker("kafka", healthcheck.Optional(healthcheck.NewCheckFunc("kafka", func(context.Context) error {
			return err
		})))
		return nil, nil
	}
	if err := consumer.Start(ctx); err != nil {
		return nil, fmt.Errorf("start kafka consumer: %w", err)
	}
	return consumer, nil
}

func newNotificationHandler(cfg NotificationConfig, sink *notification.Sink, health *healthcheck.Handler) http.Handler {
	return httpapi.NewHandler(
		log.WithField("component", "http").WithField("served_by", cfg.InstanceName),
		httpapi.NewNotifyHandler(sink, cfg.InstanceName, log.WithField("component", "notify-handler")),
		probeRoutes{health: health},
	)
}

// notificationMessageHandler передает события из Kafka в тот же приемник, что и POST /notify.
func notificationMessageHandler(sink *notification.Sink) kafka.MessageHandler {
	return func(ctx context.Context, message *sarama.ConsumerMessage) error {
		event, err := kafka.ParseNotificationEvent(message)
		if err != nil {
			return err
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encode notification event: %w", err)
		}
		return sink.Handle(ctx, payload)
	}
}
