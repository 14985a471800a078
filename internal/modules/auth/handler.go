package auth

import (
	"net/http"

	"github.com/georgemunganga/ims-backend/internal/apperr"
	"github.com/georgemunganga/ims-backend/internal/httpx"
	"github.com/georgemunganga/ims-backend/internal/modules/user"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
	users   user.Service
}

func NewHandler(service Service, users user.Service) *Handler {
	return &Handler{service: service, users: users}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.login)
}

// RegisterCurrentUserRoute mounts GET /current-user. It must sit behind RequireRole.
func (h *Handler) RegisterCurrentUserRoute(r chi.Router) {
	r.Get("/current-user", h.currentUser)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, token)
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	id, ok := UserIDFromContext(r.Context())
	if !ok {
		httpx.Error(w, apperr.Unauthorized("not authenticated"))
		return
	}
	u, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, u)
}
