package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const maxBodyBytes = 1 << 20

// Тексты ошибок, которые видит клиент.
const (
	msgAccessTokenRequired = "Access token required"
	msgInvalidToken        = "Invalid or expired token"
	msgInternal            = "Internal server error"
	msgRouteNotFound       = "Route not found"
	msgUserExists          = "User already exists"
	msgInvalidCredentials  = "Invalid credentials"
	msgProductNotFound     = "Product not found"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

// writeDomainError - единственное место, где доменные ошибки превращаются в HTTP-статусы.
// Текст непредвиденных ошибок наружу не попадает, только в лог.
func writeDomainError(w http.ResponseWriter, logger *log.Entry, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, msgAccessTokenRequired)
	case errors.Is(err, domain.ErrInvalidCredential):
		writeError(w, http.StatusForbidden, msgInvalidToken)
	case errors.Is(err, domain.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, domain.Reason(err))
	case errors.Is(err, domain.ErrBadCredentials):
		writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, domain.ErrUserExists):
		writeError(w, http.StatusConflict, msgUserExists)
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, msgProductNotFound)
	default:
		logger.WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// decodeJSON читает тело запроса в dst. Пустое тело считается пустым объектом.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return domain.InvalidRequest(fmt.Sprintf("invalid JSON body: %v", err))
	}
	return nil
}
