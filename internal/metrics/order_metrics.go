package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты доставки уведомлений (значения label result).
const (
	NotificationDelivered = "delivered"
	NotificationFailed    = "failed"
	NotificationSkipped   = "skipped"
)

// OrderMetrics содержит метрики order-сервиса. Nil-значение безопасно: все вызовы становятся no-op.
type OrderMetrics struct {
	ordersPlaced     prometheus.Counter
	rejections       *prometheus.CounterVec
	notifications    *prometheus.CounterVec
	dispatchDuration prometheus.Histogram
	ledgerOrders     prometheus.Gauge

	// Журнал только растет; гейдж не опускается ниже уже записанного размера.
	ledgerMu  sync.Mutex
	ledgerMax int
}

// NewOrderMetricsWithRegisterer регистрирует метрики в заданном реестре; nil означает DefaultRegisterer.
func NewOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersPlaced: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_placed_total",
			Help: "Total number of orders appended to the ledger",
		})),
		rejections: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_order_rejections_total",
			Help: "Total number of rejected place-order requests grouped by reason",
		}, []string{"reason"})),
		notifications: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_notifications_total",
			Help: "Total number of notification dispatch attempts grouped by result",
		}, []string{"result"})),
		dispatchDuration: register(registerer, prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "storefront_notification_dispatch_seconds",
			Help:    "Duration of a single notification dispatch attempt in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		})),
		ledgerOrders: register(registerer, prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_ledger_orders",
			Help: "Number of orders currently held in the in-process ledger",
		})),
	}
}

// register регистрирует коллектор; при повторной регистрации возвращает уже существующий.
func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) T {
	if err := registerer.Register(collector); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := already.ExistingCollector.(T)
			if !ok {
				panic(fmt.Sprintf("collector already registered with unexpected type %T", already.ExistingCollector))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector: %v", err))
	}
	return collector
}

// RecordOrderPlaced учитывает заказ и обновляет размер журнала. ledgerLen - длина,
// которую вернул Append; запоздавший вызов с меньшим значением гейдж не меняет.
func (m *OrderMetrics) RecordOrderPlaced(ledgerLen int) {
	if m == nil {
		return
	}
	m.ordersPlaced.Inc()

	m.ledgerMu.Lock()
	defer m.ledgerMu.Unlock()
	if ledgerLen > m.ledgerMax {
		m.ledgerMax = ledgerLen
		m.ledgerOrders.Set(float64(ledgerLen))
	}
}

// RecordRejection учитывает отклонённый запрос.
func (m *OrderMetrics) RecordRejection(reason string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(reason).Inc()
}

// RecordNotification учитывает результат одной попытки доставки.
func (m *OrderMetrics) RecordNotification(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(result).Inc()
	if duration > 0 {
		m.dispatchDuration.Observe(duration.Seconds())
	}
}
