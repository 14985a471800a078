package receiving

import (
	"net/http"

	"github.com/georgemunganga/ims-backend/internal/httpx"
	"github.com/go-chi/chi/v5"
)

// Handler exposes variant receiving and the order status listings.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/ims/variants/receive", h.receiveVariants)
	r.Get("/ims/variants/delivered", h.deliveredOrders)
	r.Get("/all-orders", h.allOrders)
	r.Get("/{status}", h.ordersByStatus)
}

func (h *Handler) receiveVariants(w http.ResponseWriter, r *http.Request) {
	var req ReceiveRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	res, err := h.service.ReceiveVariants(r.Context(), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, res)
}

func (h *Handler) deliveredOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.DeliveredOrders(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string][]DeliveredOrder{"delivered_orders": orders})
}

func (h *Handler) allOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.FetchOrders(r.Context(), "")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string][]OrderDisplay{"All order status": orders})
}

func (h *Handler) ordersByStatus(w http.ResponseWriter, r *http.Request) {
	status := chi.URLParam(r, "status")
	orders, err := h.service.FetchOrders(r.Context(), status)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string][]OrderDisplay{status + " orders": orders})
}
