package notification

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

func quietLogger() *log.Entry {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("component", "notification-test")
}

func sampleEvent() domain.NotificationEvent {
	return domain.NotificationEvent{
		Kind:        domain.NotificationKindOrderConfirmation,
		OrderID:     "ORD-42",
		OwnerName:   "alice",
		ProductName: "Widget",
		Quantity:    3,
		TotalAmount: decimal.NewFromInt(30),
	}
}

func TestHTTPDispatcher_Delivered(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/notify", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	dispatcher := NewHTTPDispatcher(server.URL+"/", server.Client())
	require.NoError(t, dispatcher.Dispatch(context.Background(), sampleEvent()))

	assert.Equal(t, "order_confirmation", received["type"])
	assert.Equal(t, "ORD-42", received["orderId"])
	assert.Equal(t, "alice", received["username"])
	assert.Equal(t, "Widget", received["productName"])
	assert.EqualValues(t, 3, received["quantity"])
	assert.NotNil(t, received["totalAmount"])
}

func TestHTTPDispatcher_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	err := NewHTTPDispatcher(server.URL, server.Client()).Dispatch(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, domain.ErrNotificationUndeliverable)
}

func TestHTTPDispatcher_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	err := NewHTTPDispatcher(url, nil).Dispatch(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, domain.ErrNotificationUndeliverable)
}

func TestHTTPDispatcher_RespectsContextDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := NewHTTPDispatcher(server.URL, server.Client()).Dispatch(ctx, sampleEvent())
	assert.ErrorIs(t, err, domain.ErrNotificationUndeliverable)
}

func TestKafkaDispatcher(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != kafka.TopicNotifications {
			return errors.New("unexpected topic " + msg.Topic)
		}
		return nil
	})
	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	dispatcher := NewKafkaDispatcher(kafka.NewProducerFromSync(mockProducer), "")

	require.NoError(t, dispatcher.Dispatch(context.Background(), sampleEvent()))
	assert.ErrorIs(t, dispatcher.Dispatch(context.Background(), sampleEvent()), domain.ErrNotificationUndeliverable)
	require.NoError(t, mockProducer.Close())
}

func TestKafkaDispatcher_CanceledContext(t *testing.T) {
	publisher := &recordingPublisher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewKafkaDispatcher(publisher, "custom").Dispatch(ctx, sampleEvent())
	assert.ErrorIs(t, err, domain.ErrNotificationUndeliverable)
	assert.Zero(t, publisher.calls.Load())
}

type recordingPublisher struct {
	calls atomic.Int32
}

func (p *recordingPublisher) PublishEvent(string, string, any, ...kafka.Header) error {
	p.calls.Add(1)
	return nil
}

type funcDispatcher func(ctx context.Context, event domain.NotificationEvent) error

func (f funcDispatcher) Dispatch(ctx context.Context, event domain.NotificationEvent) error {
	return f(ctx, event)
}

func TestAsyncDispatcher_SubmitDoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	var delivered sync.WaitGroup
	delivered.Add(1)

	async := NewAsyncDispatcher(funcDispatcher(func(context.Context, domain.NotificationEvent) error {
		<-release
		delivered.Done()
		return nil
	}), time.Second, nil, quietLogger())

	done := make(chan struct{})
	go func() {
		async.Submit(sampleEvent())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit blocked on dispatch")
	}

	close(release)
	delivered.Wait()
	require.NoError(t, async.Shutdown(context.Background()))
}

func TestAsyncDispatcher_DetachedFromCaller(t *testing.T) {
	var sawErr atomic.Value
	async := NewAsyncDispatcher(funcDispatcher(func(ctx context.Context, _ domain.NotificationEvent) error {
		deadline, ok := ctx.Deadline()
		if !ok || time.Until(deadline) <= 0 {
			sawErr.Store("missing or expired deadline")
		}
		return nil
	}), 500*time.Millisecond, nil, quietLogger())

	async.Submit(sampleEvent())
	require.NoError(t, async.Shutdown(context.Background()))
	assert.Nil(t, sawErr.Load())
}

func TestAsyncDispatcher_RecordsOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewOrderMetricsWithRegisterer(reg)

	fail := atomic.Bool{}
	async := NewAsyncDispatcher(funcDispatcher(func(context.Context, domain.NotificationEvent) error {
		if fail.Load() {
			return domain.ErrNotificationUndeliverable
		}
		return nil
	}), time.Second, m, quietLogger())

	async.Submit(sampleEvent())
	require.NoError(t, async.Shutdown(context.Background()))

	fail.Store(true)
	failing := NewAsyncDispatcher(async.dispatcher, time.Second, m, quietLogger())
	failing.Submit(sampleEvent())
	require.NoError(t, failing.Shutdown(context.Background()))

	failing.Submit(sampleEvent())

	series, err := testutil.GatherAndCount(reg, "storefront_notifications_total")
	require.NoError(t, err)
	assert.Equal(t, 3, series, "delivered, failed and skipped series")
}

func TestAsyncDispatcher_UnreachableServiceIsIsolated(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	async := NewAsyncDispatcher(NewHTTPDispatcher(url, nil), time.Second, nil, quietLogger())
	for i := 0; i < 5; i++ {
		async.Submit(sampleEvent())
	}
	require.NoError(t, async.Shutdown(context.Background()))
}

func TestAsyncDispatcher_ShutdownTimeout(t *testing.T) {
	release := make(chan struct{})
	async := NewAsyncDispatcher(funcDispatcher(func(context.Context, domain.NotificationEvent) error {
		<-release
		return nil
	}), time.Second, nil, quietLogger())

	async.Submit(sampleEvent())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, async.Shutdown(ctx), context.DeadlineExceeded)
	assert.Error(t, async.Check(context.Background()))

	close(release)
	require.NoError(t, async.Shutdown(context.Background()))
}

func TestAsyncDispatcher_Check(t *testing.T) {
	async := NewAsyncDispatcher(funcDispatcher(func(context.Context, domain.NotificationEvent) error { return nil }), 0, nil, nil)
	assert.Equal(t, DefaultTimeout, async.timeout)
	assert.NoError(t, async.Check(context.Background()))
}
