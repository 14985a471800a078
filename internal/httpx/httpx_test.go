package httpx

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/georgemunganga/ims-backend/internal/apperr"
)

type sample struct {
	ProductID *int64 `json:"productID" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

func TestDecode(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		wantErr bool
		message string
	}{
		{"valid", `{"productID":7,"quantity":2}`, false, ""},
		{"empty body", ``, true, "request body is required"},
		{"unknown field", `{"productID":7,"quantity":2,"extra":1}`, true, ""},
		{"missing field", `{"quantity":2}`, true, "Invalid payload. Missing or invalid fields: productID (required)"},
		{"two failures", `{}`, true, "Invalid payload. Missing or invalid fields: productID (required), quantity (gt)"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var dst sample
			err := Decode(httptest.NewRequest("POST", "/", strings.NewReader(tc.body)), &dst)
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("Expected success, got %v", err)
				}
				return
			}
			if !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			var ae *apperr.Error
			errors.As(err, &ae)
			if tc.message != "" && ae.Message != tc.message {
				t.Errorf("Expected %q, got %q", tc.message, ae.Message)
			}
		})
	}
}

func TestError_WritesStatusAndBody(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, apperr.NotFound("Order not found."))
	if rec.Code != 404 {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"message":"Order not found."}` {
		t.Errorf("unexpected body %s", got)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("missing JSON content type")
	}
}
