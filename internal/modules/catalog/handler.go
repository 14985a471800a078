package catalog

import (
	"net/http"

	"github.com/georgemunganga/ims-backend/internal/httpx"
	"github.com/go-chi/chi/v5"
)

// Handler exposes catalog HTTP endpoints used by the purchase order form.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/product-names", h.productNames)
	r.Get("/get-product-details/{name}", h.productDetails)
	r.Get("/get-product-sizes/{name}", h.productSizes)
	r.Get("/dropdown-data/products", h.dropdownProducts)
	r.Get("/dropdown-data/warehouses", h.dropdownWarehouses)
}

func (h *Handler) productNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.ProductNames(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, names)
}

func (h *Handler) productDetails(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.ProductDetails(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, d)
}

func (h *Handler) productSizes(w http.ResponseWriter, r *http.Request) {
	sizes, err := h.service.ProductSizes(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string][]string{"sizes": sizes})
}

func (h *Handler) dropdownProducts(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.ProductNames(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string][]string{"products": names})
}

func (h *Handler) dropdownWarehouses(w http.ResponseWriter, r *http.Request) {
	ws, err := h.service.Warehouses(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string][]WarehouseOption{"warehouses": ws})
}
