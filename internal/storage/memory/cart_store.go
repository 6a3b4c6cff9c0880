package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type cartEntry struct {
	payload   []byte
	expiresAt time.Time
}

// CartStore - in-memory замена Redis для корзин. Записи истекают по TTL при чтении.
type CartStore struct {
	mu      sync.Mutex
	entries map[string]cartEntry
	now     func() time.Time
}

// NewCartStore создаёт пустое хранилище корзин.
func NewCartStore() *CartStore {
	return &CartStore{
		entries: make(map[string]cartEntry),
		now:     time.Now,
	}
}

// Load возвращает корзину; просроченная запись считается отсутствующей.
func (s *CartStore) Load(_ context.Context, userID string) (domain.Cart, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[userID]
	if !ok {
		return domain.Cart{}, false, nil
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.entries, userID)
		return domain.Cart{}, false, nil
	}

	// Храним сериализованную копию, чтобы вызывающий не мог менять состояние в обход Save.
	var cart domain.Cart
	if err := json.Unmarshal(entry.payload, &cart); err != nil {
		return domain.Cart{}, false, fmt.Errorf("decode cart: %w", err)
	}
	return cart, true, nil
}

// Save сохраняет корзину; ttl <= 0 означает хранение без срока.
func (s *CartStore) Save(_ context.Context, cart domain.Cart, ttl time.Duration) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := cartEntry{payload: payload}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.entries[cart.UserID] = entry
	return nil
}

// Delete удаляет корзину.
func (s *CartStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
	return nil
}

var _ domain.CartStore = (*CartStore)(nil)
