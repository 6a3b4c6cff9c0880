package ordersvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.NotificationEvent
}

func (n *recordingNotifier) Submit(event domain.NotificationEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Events() []domain.NotificationEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.NotificationEvent(nil), n.events...)
}

type failingLedger struct {
	domain.OrderLedger
}

func (failingLedger) Append(domain.Order) (int, error) { return 0, errors.New("disk on fire") }

func quietLogger() *log.Entry {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("component", "order-service-test")
}

func newTestService(t *testing.T) (*Service, *memory.OrderLedger, *recordingNotifier) {
	t.Helper()
	ledger := memory.NewOrderLedger()
	notifier := &recordingNotifier{}
	return NewService(ledger, notifier, nil, quietLogger()), ledger, notifier
}

func request(t *testing.T, body string) PlaceOrderRequest {
	t.Helper()
	var req PlaceOrderRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

var (
	alice = domain.Identity{SubjectID: "u1", DisplayName: "alice"}
	bob   = domain.Identity{SubjectID: "u2", DisplayName: "bob"}
)

func TestPlaceOrder_WidgetExample(t *testing.T) {
	svc, ledger, notifier := newTestService(t)
	ctx := context.Background()

	order, err := svc.PlaceOrder(ctx, alice, request(t, `{"productId":"1","productName":"Widget","quantity":3,"price":10}`))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.ID, OrderIDPrefix))
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
	assert.Equal(t, "u1", order.OwnerID)
	assert.Equal(t, "alice", order.OwnerName)
	assert.Equal(t, time.UTC, order.CreatedAt.Location())
	assert.Equal(t, 1, ledger.Len())

	mine, err := svc.ListOrders(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, order, mine[0])

	theirs, err := svc.ListOrders(ctx, bob)
	require.NoError(t, err)
	assert.NotNil(t, theirs)
	assert.Empty(t, theirs)

	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.NewOrderConfirmation(order), events[0])
}

func TestPlaceOrder_DefaultsProductName(t *testing.T) {
	svc, _, _ := newTestService(t)

	order, err := svc.PlaceOrder(context.Background(), alice, request(t, `{"productId":5,"quantity":"2"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownProductName, order.ProductName)
	assert.Equal(t, "5", order.ProductID)
	assert.True(t, order.TotalAmount.IsZero())
}

func TestPlaceOrder_InvalidLeavesLedgerUnchanged(t *testing.T) {
	svc, ledger, notifier := newTestService(t)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, alice, request(t, `{"productId":"1","quantity":1}`))
	require.NoError(t, err)

	for _, body := range []string{`{}`, `{"productId":"1"}`, `{"quantity":2}`, `{"productId":"1","quantity":0}`, `{"productId":"1","quantity":1,"price":-5}`} {
		_, err := svc.PlaceOrder(ctx, alice, request(t, body))
		assert.ErrorIs(t, err, domain.ErrInvalidRequest, body)
	}
	assert.Equal(t, 1, ledger.Len())
	assert.Len(t, notifier.Events(), 1)
}

func TestPlaceOrder_RequiresIdentity(t *testing.T) {
	svc, ledger, _ := newTestService(t)

	_, err := svc.PlaceOrder(context.Background(), domain.Identity{}, request(t, `{"productId":"1","quantity":1}`))
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Zero(t, ledger.Len())

	_, err = svc.ListOrders(context.Background(), domain.Identity{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestPlaceOrder_AppendFailure(t *testing.T) {
	notifier := &recordingNotifier{}
	reg := prometheus.NewRegistry()
	m := metrics.NewOrderMetricsWithRegisterer(reg)
	svc := NewService(failingLedger{memory.NewOrderLedger()}, notifier, m, quietLogger())

	_, err := svc.PlaceOrder(context.Background(), alice, request(t, `{"productId":"1","quantity":1}`))
	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.Empty(t, notifier.Events(), "no notification for an order that was not recorded")

	count, err := testutil.GatherAndCount(reg, "storefront_order_rejections_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPlaceOrder_IDGeneratorFailure(t *testing.T) {
	svc, ledger, _ := newTestService(t)
	svc.newID = func() (string, error) { return "", errors.New("entropy exhausted") }

	_, err := svc.PlaceOrder(context.Background(), alice, request(t, `{"productId":"1","quantity":1}`))
	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.Zero(t, ledger.Len())
}

func TestPlaceOrder_NilNotifier(t *testing.T) {
	svc := NewService(memory.NewOrderLedger(), nil, nil, nil)
	_, err := svc.PlaceOrder(context.Background(), alice, request(t, `{"productId":"1","quantity":1}`))
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Count())
}

func TestPlaceOrder_Concurrent(t *testing.T) {
	ledger := memory.NewOrderLedger()
	notifier := &recordingNotifier{}
	reg := prometheus.NewRegistry()
	svc := NewService(ledger, notifier, metrics.NewOrderMetricsWithRegisterer(reg), quietLogger())
	ctx := context.Background()
	const n = 100

	var wg sync.WaitGroup
	ids := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			order, err := svc.PlaceOrder(ctx, alice, request(t, fmt.Sprintf(`{"productId":"%d","quantity":1,"price":1}`, i+1)))
			if assert.NoError(t, err) {
				ids <- order.ID
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	unique := make(map[string]struct{}, n)
	for id := range ids {
		unique[id] = struct{}{}
	}
	assert.Len(t, unique, n)
	assert.Equal(t, n, ledger.Len())
	assert.Len(t, notifier.Events(), n)

	families, err := reg.Gather()
	require.NoError(t, err)
	var ledgerGauge float64
	for _, family := range families {
		if family.GetName() == "storefront_ledger_orders" {
			ledgerGauge = family.GetMetric()[0].GetGauge().GetValue()
		}
	}
	assert.Equal(t, float64(n), ledgerGauge)

	orders, err := svc.ListOrders(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, orders, n)
}

func TestListOrders_RepeatableAndOrdered(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	var placed []string
	for i, who := range []domain.Identity{alice, bob, alice, alice, bob} {
		order, err := svc.PlaceOrder(ctx, who, request(t, fmt.Sprintf(`{"productId":"%d","quantity":1}`, i+1)))
		require.NoError(t, err)
		if who == alice {
			placed = append(placed, order.ID)
		}
	}

	first, err := svc.ListOrders(ctx, alice)
	require.NoError(t, err)
	second, err := svc.ListOrders(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	got := make([]string, 0, len(first))
	for _, order := range first {
		got = append(got, order.ID)
	}
	assert.Equal(t, placed, got)
}

func TestNewOrderID_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id, err := newOrderID()
		require.NoError(t, err)
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}
