package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	ordersvc "github.com/vladislavdragonenkov/storefront/internal/service/order"
)

const orderServiceName = "order-service"

type placeOrderResponse struct {
	Message  string       `json:"message"`
	Order    domain.Order `json:"order"`
	ServedBy string       `json:"served_by"`
}

type listOrdersResponse struct {
	Orders   []domain.Order `json:"orders"`
	Total    int            `json:"total"`
	ServedBy string         `json:"served_by"`
}

type orderHealthResponse struct {
	StatusBody
	OrdersCount int `json:"ordersCount"`
}

// OrderHandler обслуживает /orders и /health order-сервиса.
type OrderHandler struct {
	orders   *ordersvc.Service
	verifier domain.CredentialVerifier
	servedBy string
	logger   *log.Entry
}

func NewOrderHandler(orders *ordersvc.Service, verifier domain.CredentialVerifier, servedBy string, logger *log.Entry) *OrderHandler {
	return &OrderHandler{orders: orders, verifier: verifier, servedBy: servedBy, logger: logger}
}

func (h *OrderHandler) Register(router *mux.Router) {
	requireIdentity := RequireIdentity(h.verifier, h.logger)

	router.HandleFunc("/health", h.health).Methods(http.MethodGet)
	router.Handle("/orders", requireIdentity(http.HandlerFunc(h.place))).Methods(http.MethodPost)
	router.Handle("/orders", requireIdentity(http.HandlerFunc(h.list))).Methods(http.MethodGet)
}

func (h *OrderHandler) place(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	var req ordersvc.PlaceOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), identity, req)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	h.logger.WithFields(log.Fields{"order_id": order.ID, "served_by": h.servedBy}).Info("new order created")
	writeJSON(w, http.StatusCreated, placeOrderResponse{
		Message:  "Order placed successfully",
		Order:    order,
		ServedBy: h.servedBy,
	})
}

func (h *OrderHandler) list(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	orders, err := h.orders.ListOrders(r.Context(), identity)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, listOrdersResponse{
		Orders:   orders,
		Total:    len(orders),
		ServedBy: h.servedBy,
	})
}

func (h *OrderHandler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, orderHealthResponse{
		StatusBody:  StatusBody{Status: "ok", Service: orderServiceName, Hostname: h.servedBy},
		OrdersCount: h.orders.Count(),
	})
}
