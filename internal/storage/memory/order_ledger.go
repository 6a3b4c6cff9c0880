package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// OrderLedger - in-memory журнал заказов. Живёт ровно столько, сколько процесс.
type OrderLedger struct {
	mu     sync.RWMutex
	orders []domain.Order
	ids    map[string]struct{}
}

// NewOrderLedger возвращает пустой журнал. Создаётся один раз при старте сервиса.
func NewOrderLedger() *OrderLedger {
	return &OrderLedger{
		ids: make(map[string]struct{}),
	}
}

// Append добавляет заказ в конец журнала, если ID ещё не занят, и возвращает длину
// журнала под той же блокировкой.
func (l *OrderLedger) Append(order domain.Order) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.ids[order.ID]; exists {
		return len(l.orders), domain.ErrDuplicateOrder
	}
	l.orders = append(l.orders, order)
	l.ids[order.ID] = struct{}{}
	return len(l.orders), nil
}

// ListByOwner возвращает копию подпоследовательности заказов владельца в порядке добавления.
func (l *OrderLedger) ListByOwner(ownerID string) ([]domain.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]domain.Order, 0)
	for _, order := range l.orders {
		if order.OwnerID != ownerID {
			continue
		}
		result = append(result, order)
	}
	return result, nil
}

// Len возвращает количество заказов в журнале.
func (l *OrderLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.orders)
}

var _ domain.OrderLedger = (*OrderLedger)(nil)
