package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func TestRun_RequiresDSN(t *testing.T) {
	err := run(nil, &bytes.Buffer{}, noEnv)
	assert.ErrorContains(t, err, "POSTGRES_DSN")
}

func TestRun_UnsupportedDirection(t *testing.T) {
	err := run([]string{"-direction", "down", "-dsn", "postgres://x"}, &bytes.Buffer{}, noEnv)
	assert.ErrorContains(t, err, "unsupported direction")
}

func TestRun_UnknownFlag(t *testing.T) {
	assert.Error(t, run([]string{"-steps", "2"}, &bytes.Buffer{}, noEnv))
}

func TestRun_UpAndStatus(t *testing.T) {
	dsn := strings.TrimSpace(os.Getenv("STOREFRONT_POSTGRES_TEST_DSN"))
	if dsn == "" {
		t.Skip("STOREFRONT_POSTGRES_TEST_DSN is not set, skipping migrate integration test")
	}
	env := func(key string) string {
		if key == envPostgresDSN {
			return dsn
		}
		return ""
	}

	var out bytes.Buffer
	if err := run([]string{"-direction", "up"}, &out, env); err != nil {
		t.Skipf("postgres is not available: %v", err)
	}
	assert.Contains(t, out.String(), "migrate up ok")

	out.Reset()
	require.NoError(t, run([]string{"-direction", "status"}, &out, env))
	assert.Contains(t, out.String(), "migrate status ok")
}
