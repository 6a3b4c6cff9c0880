package cartsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

type recordingStore struct {
	*memory.CartStore
	lastTTL time.Duration
	saveErr error
}

func (s *recordingStore) Save(ctx context.Context, cart domain.Cart, ttl time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.lastTTL = ttl
	return s.CartStore.Save(ctx, cart, ttl)
}

func item(id string, price string, qty int64) domain.CartItem {
	return domain.CartItem{ProductID: id, ProductName: "Item " + id, Price: decimal.RequireFromString(price), Quantity: qty}
}

func TestCartFlow(t *testing.T) {
	store := &recordingStore{CartStore: memory.NewCartStore()}
	svc := NewService(store, 0, nil)
	ctx := context.Background()

	empty, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, empty.Items)

	_, err = svc.AddItem(ctx, "u1", item("1", "10.00", 2))
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "u1", item("1", "10.00", 1))
	require.NoError(t, err)
	assert.Equal(t, int64(3), cart.Items["1"].Quantity)
	assert.Equal(t, DefaultTTL, store.lastTTL)

	_, err = svc.AddItem(ctx, "u1", item("2", "2.50", 4))
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), summary.TotalItems)
	assert.Equal(t, 2, summary.ItemCount)
	assert.True(t, summary.TotalPrice.Equal(decimal.RequireFromString("40")))

	cart, err = svc.UpdateQuantity(ctx, "u1", "2", 0)
	require.NoError(t, err)
	assert.NotContains(t, cart.Items, "2")

	cart, err = svc.RemoveItem(ctx, "u1", "1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.AddItem(ctx, "u1", item("3", "1", 1))
	require.NoError(t, err)
	cart, err = svc.Clear(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	require.NoError(t, svc.Delete(ctx, "u1"))
	_, ok, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidation(t *testing.T) {
	svc := NewService(memory.NewCartStore(), time.Hour, nil)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", item("1", "1", 0))
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	_, err = svc.AddItem(ctx, "u1", domain.CartItem{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	_, err = svc.AddItem(ctx, "u1", item("1", "1e3000000", 1))
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	_, err = svc.UpdateQuantity(ctx, "u1", "1", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.ErrorIs(t, svc.Delete(ctx, ""), domain.ErrInvalidRequest)
}

func TestStoreFailureIsInternal(t *testing.T) {
	store := &recordingStore{CartStore: memory.NewCartStore(), saveErr: errors.New("redis down")}
	svc := NewService(store, time.Hour, nil)

	_, err := svc.AddItem(context.Background(), "u1", item("1", "1", 1))
	assert.ErrorIs(t, err, domain.ErrInternal)
}
