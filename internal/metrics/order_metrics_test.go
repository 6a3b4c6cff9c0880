package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewOrderMetrics(t *testing.T) {
	metrics := NewOrderMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics == nil {
		t.Fatal("NewOrderMetricsWithRegisterer should not return nil")
	}
	if metrics.ordersPlaced == nil {
		t.Error("ordersPlaced counter should not be nil")
	}
	if metrics.rejections == nil {
		t.Error("rejections counter vec should not be nil")
	}
	if metrics.notifications == nil {
		t.Error("notifications counter vec should not be nil")
	}
	if metrics.dispatchDuration == nil {
		t.Error("dispatchDuration histogram should not be nil")
	}
	if metrics.ledgerOrders == nil {
		t.Error("ledgerOrders gauge should not be nil")
	}
}

func TestNewOrderMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewOrderMetricsWithRegisterer(reg)
	second := NewOrderMetricsWithRegisterer(reg)

	first.RecordOrderPlaced(1)
	second.RecordOrderPlaced(2)

	metric := &dto.Metric{}
	if err := first.ordersPlaced.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2.0 {
		t.Errorf("expected shared counter value 2.0, got %f", metric.Counter.GetValue())
	}
}

func TestRecordOrderPlaced(t *testing.T) {
	metrics := NewOrderMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordOrderPlaced(7)
	metrics.RecordOrderPlaced(5)

	counter := &dto.Metric{}
	if err := metrics.ordersPlaced.Write(counter); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if counter.Counter.GetValue() != 2.0 {
		t.Errorf("expected counter value 2.0, got %f", counter.Counter.GetValue())
	}

	gauge := &dto.Metric{}
	if err := metrics.ledgerOrders.Write(gauge); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}
	if gauge.Gauge.GetValue() != 7.0 {
		t.Errorf("expected ledger size 7.0, got %f", gauge.Gauge.GetValue())
	}
}

func TestRecordRejectionAndNotification(t *testing.T) {
	metrics := NewOrderMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordRejection("invalid_request")
	metrics.RecordRejection("invalid_request")
	metrics.RecordNotification(NotificationFailed, 20*time.Millisecond)
	metrics.RecordNotification(NotificationSkipped, 0)

	rejected := &dto.Metric{}
	if err := metrics.rejections.WithLabelValues("invalid_request").Write(rejected); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if rejected.Counter.GetValue() != 2.0 {
		t.Errorf("expected 2 rejections, got %f", rejected.Counter.GetValue())
	}

	failed := &dto.Metric{}
	if err := metrics.notifications.WithLabelValues(NotificationFailed).Write(failed); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if failed.Counter.GetValue() != 1.0 {
		t.Errorf("expected 1 failed notification, got %f", failed.Counter.GetValue())
	}

	hist := &dto.Metric{}
	if err := metrics.dispatchDuration.Write(hist); err != nil {
		t.Fatalf("failed to write histogram: %v", err)
	}
	if hist.Histogram.GetSampleCount() != 1 {
		t.Errorf("expected 1 duration sample, got %d", hist.Histogram.GetSampleCount())
	}
}

func TestNilOrderMetrics(t *testing.T) {
	var metrics *OrderMetrics

	// Не должно паниковать.
	metrics.RecordOrderPlaced(1)
	metrics.RecordRejection("x")
	metrics.RecordNotification(NotificationDelivered, time.Millisecond)
}
