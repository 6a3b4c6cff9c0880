package postgres

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

// openStoreForIntegrationTest поднимает Store по STOREFRONT_POSTGRES_TEST_DSN и пропускает тест без базы.
func openStoreForIntegrationTest(t *testing.T) *Store {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("STOREFRONT_POSTGRES_TEST_DSN"))
	if dsn == "" {
		t.Skip("STOREFRONT_POSTGRES_TEST_DSN is not set, skipping postgres integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := Open(ctx, dsn)
	if err != nil {
		t.Skipf("postgres is not available for integration tests: %v", err)
	}
	t.Cleanup(store.Close)

	if err := store.MigrateUp(ctx); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	if _, err := store.Pool().Exec(ctx, `TRUNCATE TABLE users`); err != nil {
		t.Fatalf("truncate users: %v", err)
	}
	return store
}
