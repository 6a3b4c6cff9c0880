package redis

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func openCartStoreForIntegrationTest(t *testing.T) *CartStore {
	t.Helper()

	addr := strings.TrimSpace(os.Getenv("STOREFRONT_REDIS_TEST_ADDR"))
	if addr == "" {
		t.Skip("STOREFRONT_REDIS_TEST_ADDR is not set, skipping redis integration test")
	}

	client, err := Open(context.Background(), addr, "", 0)
	if err != nil {
		t.Skipf("redis is not available: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return NewCartStore(client)
}

func TestCartStore_Integration_RoundTrip(t *testing.T) {
	store := openCartStoreForIntegrationTest(t)
	ctx := context.Background()
	userID := "it-" + time.Now().Format("150405.000000")

	_, ok, err := store.Load(ctx, userID)
	require.NoError(t, err)
	assert.False(t, ok)

	cart := domain.NewCart(userID, time.Now())
	cart.AddItem(domain.CartItem{ProductID: "1", ProductName: "Hub", Price: decimal.RequireFromString("49.99"), Quantity: 2}, time.Now())
	require.NoError(t, store.Save(ctx, cart, time.Minute))

	loaded, ok, err := store.Load(ctx, userID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(2), loaded.Items["1"].Quantity)
	assert.True(t, loaded.Items["1"].Price.Equal(decimal.RequireFromString("49.99")))

	require.NoError(t, store.Delete(ctx, userID))
	_, ok, err = store.Load(ctx, userID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCartKey(t *testing.T) {
	assert.Equal(t, "cart:u1", cartKey("u1"))
}
