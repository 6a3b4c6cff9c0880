package httpapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
	catalogsvc "github.com/vladislavdragonenkov/storefront/internal/service/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newProductAPI() http.Handler {
	svc := catalogsvc.NewService(memory.NewProductCatalog(memory.DemoProducts(time.Now())...), quietLogger())
	return NewHandler(quietLogger(), NewProductHandler(svc, auth.NewVerifier(testSecret), "product-node", quietLogger()))
}

func TestProducts(t *testing.T) {
	api := newProductAPI()
	token := bearer(t, "u1", "alice")

	rec := do(t, api, http.MethodGet, "/products", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[productListResponse](t, rec)
	assert.Equal(t, 6, list.Total)
	assert.Contains(t, rec.Body.String(), `"price":199.99`)

	rec = do(t, api, http.MethodGet, "/products/2", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Mechanical Keyboard", decodeBody[productResponse](t, rec).Product.Name)

	rec = do(t, api, http.MethodGet, "/products/999", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgProductNotFound, errorMessage(t, rec))

	rec = do(t, api, http.MethodPost, "/products", token, `{"name":"Desk Lamp","price":24.5,"stock":3}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[productResponse](t, rec)
	assert.Equal(t, "Product created successfully", created.Message)

	rec = do(t, api, http.MethodPost, "/products", token, `{"name":"Nothing"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name and price are required", errorMessage(t, rec))

	rec = do(t, api, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, decodeBody[productHealthResponse](t, rec).ProductsCount)
}

func TestProducts_RequireToken(t *testing.T) {
	api := newProductAPI()

	assert.Equal(t, http.StatusUnauthorized, do(t, api, http.MethodGet, "/products", "", "").Code)
	assert.Equal(t, http.StatusForbidden, do(t, api, http.MethodGet, "/products/1", "Bearer nope", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, api, http.MethodPost, "/products", "", `{"name":"x","price":1}`).Code)
}
