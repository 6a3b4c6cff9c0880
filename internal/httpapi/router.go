// Package httpapi - HTTP/JSON-интерфейс сервисов витрины на gorilla/mux.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Routes регистрирует маршруты одного сервиса на роутере.
type Routes interface {
	Register(router *mux.Router)
}

// NewHandler собирает роутер сервиса: маршруты, 404 для неизвестных путей и методов, CORS и лог запросов.
func NewHandler(logger *log.Entry, routes ...Routes) http.Handler {
	router := mux.NewRouter()
	for _, r := range routes {
		r.Register(router)
	}
	router.NotFoundHandler = http.HandlerFunc(routeNotFound)
	// Неподдерживаемый метод на известном пути неотличим от неизвестного маршрута.
	router.MethodNotAllowedHandler = http.HandlerFunc(routeNotFound)

	return withCORS(withRequestLog(router, logger))
}

func routeNotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, msgRouteNotFound)
}

// StatusBody - тело публичного GET /health.
type StatusBody struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Hostname string `json:"hostname"`
}
