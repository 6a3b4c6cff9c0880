package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	authsvc "github.com/vladislavdragonenkov/storefront/internal/service/auth"
)

const authServiceName = "auth-service"

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userBody struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type registerResponse struct {
	Message  string   `json:"message"`
	User     userBody `json:"user"`
	ServedBy string   `json:"served_by"`
}

type loginResponse struct {
	Message  string   `json:"message"`
	Token    string   `json:"token"`
	User     userBody `json:"user"`
	ServedBy string   `json:"served_by"`
}

// AuthHandler обслуживает /register и /login.
type AuthHandler struct {
	users    *authsvc.Service
	servedBy string
	logger   *log.Entry
}

func NewAuthHandler(users *authsvc.Service, servedBy string, logger *log.Entry) *AuthHandler {
	return &AuthHandler{users: users, servedBy: servedBy, logger: logger}
}

func (h *AuthHandler) Register(router *mux.Router) {
	router.HandleFunc("/health", h.health).Methods(http.MethodGet)
	router.HandleFunc("/register", h.register).Methods(http.MethodPost)
	router.HandleFunc("/login", h.login).Methods(http.MethodPost)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		Message:  "User registered successfully",
		User:     userBody{ID: user.ID, Username: user.Username},
		ServedBy: h.servedBy,
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	token, user, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Message:  "Login successful",
		Token:    token,
		User:     userBody{ID: user.ID, Username: user.Username},
		ServedBy: h.servedBy,
	})
}

func (h *AuthHandler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, StatusBody{Status: "ok", Service: authServiceName, Hostname: h.servedBy})
}
