package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

type memRepo struct {
	products []ProductDetails
	sizes    map[string][]string
}

func (m *memRepo) ProductNames(ctx context.Context) ([]string, error) {
	var out []string
	for _, p := range m.products {
		out = append(out, p.ProductName)
	}
	return out, nil
}

func (m *memRepo) ProductDetails(ctx context.Context, name string) (*ProductDetails, error) {
	for _, p := range m.products {
		if p.ProductName == name {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (m *memRepo) ProductSizes(ctx context.Context, name string) ([]string, error) {
	return m.sizes[name], nil
}

func (m *memRepo) Warehouses(ctx context.Context) ([]WarehouseOption, error) {
	return nil, nil
}

func newTestRouter() *chi.Mux {
	repo := &memRepo{
		products: []ProductDetails{{ProductID: 7, ProductName: "Crew Tee", Category: "Shirts"}},
		sizes:    map[string][]string{"Crew Tee": {"M", "L"}},
	}
	r := chi.NewRouter()
	NewHandler(NewService(repo)).RegisterRoutes(r)
	return r
}

func TestHandler_StatusCodes(t *testing.T) {
	testCases := []struct {
		name string
		path string
		want int
	}{
		{"details found", "/get-product-details/Crew%20Tee", http.StatusOK},
		{"details missing", "/get-product-details/Hoodie", http.StatusNotFound},
		{"sizes found", "/get-product-sizes/Crew%20Tee", http.StatusOK},
		{"sizes missing", "/get-product-sizes/Hoodie", http.StatusNotFound},
		{"warehouses empty", "/dropdown-data/warehouses", http.StatusOK},
	}

	router := newTestRouter()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if rec.Code != tc.want {
				t.Errorf("Expected %d, got %d (%s)", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandler_DropdownProducts(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dropdown-data/products", nil))

	var body map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body["products"]) != 1 || body["products"][0] != "Crew Tee" {
		t.Errorf("unexpected products %v", body["products"])
	}
}
