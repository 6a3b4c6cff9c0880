package httpapi

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/notification"
)

const notificationServiceName = "notification-service"

type notifyResponse struct {
	Message  string `json:"message"`
	ServedBy string `json:"served_by"`
}

// NotifyHandler - HTTP-вход notification-сервиса.
type NotifyHandler struct {
	sink     *notification.Sink
	servedBy string
	logger   *log.Entry
}

func NewNotifyHandler(sink *notification.Sink, servedBy string, logger *log.Entry) *NotifyHandler {
	return &NotifyHandler{sink: sink, servedBy: servedBy, logger: logger}
}

func (h *NotifyHandler) Register(router *mux.Router) {
	router.HandleFunc("/health", h.health).Methods(http.MethodGet)
	router.HandleFunc("/notify", h.notify).Methods(http.MethodPost)
}

func (h *NotifyHandler) notify(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeDomainError(w, h.logger, domain.InvalidRequest("request body is too large"))
		return
	}
	if err := h.sink.Handle(r.Context(), payload); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, notifyResponse{Message: "Notification sent", ServedBy: h.servedBy})
}

func (h *NotifyHandler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, StatusBody{Status: "ok", Service: notificationServiceName, Hostname: h.servedBy})
}
