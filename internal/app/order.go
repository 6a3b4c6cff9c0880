package app

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/httpapi"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/notification"
	ordersvc "github.com/vladislavdragonenkov/storefront/internal/service/order"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

// orderRuntime - собранные зависимости order-сервиса.
type orderRuntime struct {
	handler    http.Handler
	health     *healthcheck.Handler
	orders     *ordersvc.Service
	dispatcher *notification.AsyncDispatcher
	producer   *kafka.Producer
}

// RunOrderService запускает order-сервис и сервер метрик до отмены ctx.
func RunOrderService(ctx context.Context, cfg OrderConfig) error {
	logger := log.WithField("component", "app").WithField("service", "order-service")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rt := buildOrderRuntime(cfg, prometheus.DefaultRegisterer, logger)
	defer rt.close(logger)

	startMetricsServer(ctx, cfg.MetricsAddr, logger, rt.health)

	logger.WithFields(log.Fields{
		"addr":      cfg.Addr,
		"transport": cfg.NotificationTransport,
		"version":   version.String(),
	}).Info("order service starting")
	return serveHTTP(ctx, cfg.Addr, rt.handler, logger)
}

func buildOrderRuntime(cfg OrderConfig, registerer prometheus.Registerer, logger *log.Entry) *orderRuntime {
	orderMetrics := metrics.NewOrderMetricsWithRegisterer(registerer)
	ledger := memory.NewOrderLedger()

	dispatcher, producer := newNotificationDispatcher(cfg, logger)
	async := notification.NewAsyncDispatcher(
		dispatcher,
		cfg.NotificationTimeout,
		orderMetrics,
		log.WithField("component", "notification-dispatcher"),
	)

	orders := ordersvc.NewService(ledger, async, orderMetrics, log.WithField("component", "order-service"))
	verifier := auth.NewVerifier(cfg.JWTSecret)

	handler := httpapi.NewHandler(
		log.WithField("component", "http").WithField("served_by", cfg.InstanceName),
		httpapi.NewOrderHandler(orders, verifier, cfg.InstanceName, log.WithField("component", "order-handler")),
	)

	health := healthcheck.NewHandler("order-service", version.Current().Version)
	health.RegisterChecker("notifications", healthcheck.NewCheckFunc("notifications", async.Check))

	return &orderRuntime{
		handler:    handler,
		health:     health,
		orders:     orders,
		dispatcher: async,
		producer:   producer,
	}
}

// newNotificationDispatcher выбирает транспорт уведомлений. Если Kafka недоступна,
// сервис продолжает работу через HTTP.
func newNotificationDispatcher(cfg OrderConfig, logger *log.Entry) (domain.NotificationDispatcher, *kafka.Producer) {
	httpDispatcher := notification.NewHTTPDispatcher(cfg.NotificationURL, nil)
	if cfg.NotificationTransport != TransportKafka {
		return httpDispatcher, nil
	}

	producer, err := initKafkaProducer(cfg.KafkaBrokers, cfg.NotificationTimeout, logger)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, falling back to http notifications")
		return httpDispatcher, nil
	}
	if producer == nil {
		logger.Warn("kafka transport selected without KAFKA_BROKERS, falling back to http notifications")
		return httpDispatcher, nil
	}
	return notification.NewKafkaDispatcher(producer, cfg.NotificationTopic), producer
}

// close дожидается отправки поставленных уведомлений и освобождает транспорт.
func (rt *orderRuntime) close(logger *log.Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := rt.dispatcher.Shutdown(ctx); err != nil {
		logger.WithError(err).Warn("notification dispatcher shutdown timed out")
	}
	closeKafka(rt.producer, logger)
}
