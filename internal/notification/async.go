// Package notification доставляет уведомления о заказах в notification-сервис.
//
// Доставка best-effort: одна попытка, без повторов, результат только логируется.
package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

var errDispatcherClosed = errors.New("notification dispatcher is shut down")

// DefaultTimeout ограничивает одну попытку доставки.
const DefaultTimeout = 5 * time.Second

// AsyncDispatcher запускает доставку в отслеживаемой горутине, отвязанной от запроса.
type AsyncDispatcher struct {
	dispatcher domain.NotificationDispatcher
	timeout    time.Duration
	metrics    *metrics.OrderMetrics
	logger     *log.Entry

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewAsyncDispatcher оборачивает синхронный диспетчер. metrics может быть nil.
func NewAsyncDispatcher(dispatcher domain.NotificationDispatcher, timeout time.Duration, m *metrics.OrderMetrics, logger *log.Entry) *AsyncDispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.New().WithField("component", "notification-dispatcher")
	}
	return &AsyncDispatcher{
		dispatcher: dispatcher,
		timeout:    timeout,
		metrics:    m,
		logger:     logger,
	}
}

// Submit возвращается сразу. После Shutdown события отбрасываются.
func (a *AsyncDispatcher) Submit(event domain.NotificationEvent) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		a.metrics.RecordNotification(metrics.NotificationSkipped, 0)
		a.logger.WithField("order_id", event.OrderID).Warn("notification skipped during shutdown")
		return
	}
	a.wg.Add(1)
	a.mu.Unlock()

	go func() {
		defer a.wg.Done()
		a.dispatch(event)
	}()
}

func (a *AsyncDispatcher) dispatch(event domain.NotificationEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	started := time.Now()
	err := a.dispatcher.Dispatch(ctx, event)
	elapsed := time.Since(started)

	entry := a.logger.WithFields(log.Fields{
		"order_id": event.OrderID,
		"type":     event.Kind,
		"duration": elapsed,
	})
	if err != nil {
		a.metrics.RecordNotification(metrics.NotificationFailed, elapsed)
		entry.WithError(err).Warn("failed to send notification")
		return
	}
	a.metrics.RecordNotification(metrics.NotificationDelivered, elapsed)
	entry.Debug("notification delivered")
}

// Shutdown перестает принимать события и ждет незавершенные доставки.
func (a *AsyncDispatcher) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	waitDone := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Check сообщает health-хендлеру, принимает ли диспетчер события.
func (a *AsyncDispatcher) Check(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return errDispatcherClosed
	}
	return nil
}

var _ domain.NotificationSubmitter = (*AsyncDispatcher)(nil)
