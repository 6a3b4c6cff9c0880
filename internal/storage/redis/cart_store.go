package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const cartKeyPrefix = "cart:"

// CartStore хранит корзины в Redis как JSON под ключом cart:{userId}.
type CartStore struct {
	client goredis.UniversalClient
}

// NewCartStore создаёт хранилище поверх готового клиента.
func NewCartStore(client goredis.UniversalClient) *CartStore {
	return &CartStore{client: client}
}

// Open подключается к Redis и проверяет соединение.
func Open(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func cartKey(userID string) string {
	return cartKeyPrefix + userID
}

// Load читает корзину; отсутствие ключа не считается ошибкой.
func (s *CartStore) Load(ctx context.Context, userID string) (domain.Cart, bool, error) {
	raw, err := s.client.Get(ctx, cartKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.Cart{}, false, nil
		}
		return domain.Cart{}, false, fmt.Errorf("get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return domain.Cart{}, false, fmt.Errorf("decode cart: %w", err)
	}
	return cart, true, nil
}

// Save перезаписывает корзину с TTL.
func (s *CartStore) Save(ctx context.Context, cart domain.Cart, ttl time.Duration) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, cartKey(cart.UserID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("set cart: %w", err)
	}
	return nil
}

// Delete удаляет ключ корзины.
func (s *CartStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

// Ping проверяет соединение, используется health-чекером.
func (s *CartStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

var _ domain.CartStore = (*CartStore)(nil)
