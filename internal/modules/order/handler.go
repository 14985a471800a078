package order

import (
	"net/http"

	"github.com/georgemunganga/ims-backend/internal/httpx"
	"github.com/georgemunganga/ims-backend/internal/modules/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes the purchase order endpoints and the VMS status webhooks.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// RegisterRoutes mounts the purchase order endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/stock", h.stockUpdate)
	r.Post("/create-purchase-order", h.createPurchaseOrder)
	r.Get("/purchase-orders", h.listPurchaseOrders)
}

// RegisterStatusRoutes mounts the webhooks the VMS calls to move an order through its lifecycle.
func (h *Handler) RegisterStatusRoutes(r chi.Router) {
	r.Post("/ims/orders/confirm", h.confirm)
	r.Post("/ims/orders/ToShip", h.toShip)
	r.Post("/ims/orders/mark-received", h.markReceived)
}

func (h *Handler) stockUpdate(w http.ResponseWriter, r *http.Request) {
	var req StockUpdateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	h.logger.Info("received stock update", zap.Int64p("product_id", req.ProductID), zap.Intp("current_stock", req.CurrentStock))

	res, err := h.service.HandleStockUpdate(r.Context(), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, res)
}

func (h *Handler) createPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var req ManualOrderRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	if req.UserID == nil {
		if id, ok := auth.UserIDFromContext(r.Context()); ok {
			req.UserID = &id
		}
	}

	res, err := h.service.CreateManualOrder(r.Context(), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, res)
}

func (h *Handler) listPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListPurchaseOrders(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, rows)
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, StatusConfirmed, StatusRejected)
}

func (h *Handler) toShip(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, StatusToShip)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request, allowed ...Status) {
	var req StatusUpdateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	h.logger.Info("received VMS status update", zap.Int64("order_id", req.OrderID), zap.String("status", req.OrderStatus))

	res, err := h.service.UpdateStatus(r.Context(), req, allowed...)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, res)
}

func (h *Handler) markReceived(w http.ResponseWriter, r *http.Request) {
	var req MarkReceivedRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	res, err := h.service.MarkReceived(r.Context(), req.OrderID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, res)
}
