package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	catalogsvc "github.com/vladislavdragonenkov/storefront/internal/service/catalog"
)

const productServiceName = "product-service"

type productListResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
	ServedBy string           `json:"served_by"`
}

type productResponse struct {
	Message  string         `json:"message,omitempty"`
	Product  domain.Product `json:"product"`
	ServedBy string         `json:"served_by"`
}

type productHealthResponse struct {
	StatusBody
	ProductsCount int `json:"productsCount"`
}

// ProductHandler обслуживает /products. Все маршруты кроме /health требуют токен.
type ProductHandler struct {
	catalog  *catalogsvc.Service
	verifier domain.CredentialVerifier
	servedBy string
	logger   *log.Entry
}

func NewProductHandler(catalog *catalogsvc.Service, verifier domain.CredentialVerifier, servedBy string, logger *log.Entry) *ProductHandler {
	return &ProductHandler{catalog: catalog, verifier: verifier, servedBy: servedBy, logger: logger}
}

func (h *ProductHandler) Register(router *mux.Router) {
	requireIdentity := RequireIdentity(h.verifier, h.logger)

	router.HandleFunc("/health", h.health).Methods(http.MethodGet)
	router.Handle("/products", requireIdentity(http.HandlerFunc(h.list))).Methods(http.MethodGet)
	router.Handle("/products", requireIdentity(http.HandlerFunc(h.create))).Methods(http.MethodPost)
	router.Handle("/products/{id}", requireIdentity(http.HandlerFunc(h.get))).Methods(http.MethodGet)
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, productListResponse{Products: products, Total: len(products), ServedBy: h.servedBy})
}

func (h *ProductHandler) get(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, productResponse{Product: product, ServedBy: h.servedBy})
}

func (h *ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	var req catalogsvc.CreateProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	product, err := h.catalog.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, productResponse{
		Message:  "Product created successfully",
		Product:  product,
		ServedBy: h.servedBy,
	})
}

func (h *ProductHandler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, productHealthResponse{
		StatusBody:    StatusBody{Status: "ok", Service: productServiceName, Hostname: h.servedBy},
		ProductsCount: h.catalog.Count(r.Context()),
	})
}
