package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/coerce"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	cartsvc "github.com/vladislavdragonenkov/storefront/internal/service/cart"
)

const cartServiceName = "cart-service"

type messageResponse struct {
	Message string `json:"message"`
}

type quantityRequest struct {
	Quantity json.RawMessage `json:"quantity"`
}

// CartHandler обслуживает /api/cart/{userId}.
type CartHandler struct {
	carts    *cartsvc.Service
	servedBy string
	logger   *log.Entry
}

func NewCartHandler(carts *cartsvc.Service, servedBy string, logger *log.Entry) *CartHandler {
	return &CartHandler{carts: carts, servedBy: servedBy, logger: logger}
}

func (h *CartHandler) Register(router *mux.Router) {
	router.HandleFunc("/health", h.health).Methods(http.MethodGet)

	const base = "/api/cart/{userId}"
	router.HandleFunc(base, h.get).Methods(http.MethodGet)
	router.HandleFunc(base, h.delete).Methods(http.MethodDelete)
	router.HandleFunc(base+"/add", h.add).Methods(http.MethodPost)
	router.HandleFunc(base+"/item/{productId}", h.remove).Methods(http.MethodDelete)
	router.HandleFunc(base+"/item/{productId}/quantity", h.updateQuantity).Methods(http.MethodPut)
	router.HandleFunc(base+"/clear", h.clear).Methods(http.MethodDelete)
	router.HandleFunc(base+"/summary", h.summary).Methods(http.MethodGet)
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Get(r.Context(), mux.Vars(r)["userId"])
	h.respondCart(w, cart, err)
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	var item domain.CartItem
	if err := decodeJSON(w, r, &item); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	cart, err := h.carts.AddItem(r.Context(), mux.Vars(r)["userId"], item)
	h.respondCart(w, cart, err)
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cart, err := h.carts.RemoveItem(r.Context(), vars["userId"], vars["productId"])
	h.respondCart(w, cart, err)
}

func (h *CartHandler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	if len(req.Quantity) == 0 || string(req.Quantity) == "null" {
		writeDomainError(w, h.logger, domain.InvalidRequest("quantity is required"))
		return
	}
	quantity, ok := coerce.Int(req.Quantity)
	if !ok {
		writeDomainError(w, h.logger, domain.InvalidRequest("quantity is out of range"))
		return
	}

	vars := mux.Vars(r)
	cart, err := h.carts.UpdateQuantity(r.Context(), vars["userId"], vars["productId"], quantity)
	h.respondCart(w, cart, err)
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	if _, err := h.carts.Clear(r.Context(), mux.Vars(r)["userId"]); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Cart cleared successfully"})
}

func (h *CartHandler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.carts.Summary(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *CartHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Delete(r.Context(), mux.Vars(r)["userId"]); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Cart deleted successfully"})
}

func (h *CartHandler) respondCart(w http.ResponseWriter, cart domain.Cart, err error) {
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, StatusBody{Status: "ok", Service: cartServiceName, Hostname: h.servedBy})
}
