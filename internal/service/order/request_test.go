package ordersvc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func decodeRequest(t *testing.T, body string) PlaceOrderRequest {
	t.Helper()
	var req PlaceOrderRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestDraft_Coercion(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		product  string
		quantity int64
		price    string
	}{
		{"numbers", `{"productId":"1","quantity":3,"price":10}`, "1", 3, "10"},
		{"numeric product id", `{"productId":7,"quantity":1,"price":2.5}`, "7", 1, "2.5"},
		{"quantity truncated", `{"productId":"1","quantity":3.9,"price":1}`, "1", 3, "1"},
		{"quantity string prefix", `{"productId":"1","quantity":" 3abc","price":1}`, "1", 3, "1"},
		{"price string prefix", `{"productId":"1","quantity":1,"price":"10.5usd"}`, "1", 1, "10.5"},
		{"price leading dot", `{"productId":"1","quantity":1,"price":".25"}`, "1", 1, "0.25"},
		{"price exponent", `{"productId":"1","quantity":1,"price":"1e2x"}`, "1", 1, "100"},
		{"price garbage", `{"productId":"1","quantity":1,"price":"abc"}`, "1", 1, "0"},
		{"price missing", `{"productId":"1","quantity":2}`, "1", 2, "0"},
		{"price bool", `{"productId":"1","quantity":2,"price":true}`, "1", 2, "0"},
		{"price null", `{"productId":"1","quantity":2,"price":null}`, "1", 2, "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft, err := decodeRequest(t, tc.body).Draft()
			require.NoError(t, err)
			assert.Equal(t, tc.product, draft.ProductID)
			assert.Equal(t, tc.quantity, draft.Quantity)
			assert.Equal(t, tc.price, draft.PricePerUnit.String())
		})
	}
}

func TestDraft_ProductName(t *testing.T) {
	draft, err := decodeRequest(t, `{"productId":"1","productName":"Widget","quantity":1}`).Draft()
	require.NoError(t, err)
	assert.Equal(t, "Widget", draft.ProductName)

	draft, err = decodeRequest(t, `{"productId":"1","productName":42,"quantity":1}`).Draft()
	require.NoError(t, err)
	assert.Empty(t, draft.ProductName)
}

func TestDraft_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty body":          `{}`,
		"missing product":     `{"quantity":1}`,
		"empty product":       `{"productId":"","quantity":1}`,
		"zero product":        `{"productId":0,"quantity":1}`,
		"object product":      `{"productId":{"id":1},"quantity":1}`,
		"missing quantity":    `{"productId":"1"}`,
		"zero quantity":       `{"productId":"1","quantity":0}`,
		"negative quantity":   `{"productId":"1","quantity":-2}`,
		"fraction below one":  `{"productId":"1","quantity":0.5}`,
		"text quantity":       `{"productId":"1","quantity":"abc"}`,
		"zero text quantity":  `{"productId":"1","quantity":"0"}`,
		"overflow quantity":   `{"productId":"1","quantity":"99999999999999999999"}`,
		"negative price":      `{"productId":"1","quantity":1,"price":-1}`,
		"negative text price": `{"productId":"1","quantity":1,"price":"-3.5"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := decodeRequest(t, body).Draft()
			assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		})
	}
}
