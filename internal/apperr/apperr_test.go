package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("productID is required"), http.StatusBadRequest},
		{"not found", NotFound("product %d not found", 7), http.StatusNotFound},
		{"conflict", Conflict("order is not Delivered"), http.StatusBadRequest},
		{"upstream", Upstream(errors.New("dial tcp"), "error sending order to VMS"), http.StatusInternalServerError},
		{"unauthorized", Unauthorized("missing bearer token"), http.StatusUnauthorized},
		{"forbidden", Forbidden("admin role required"), http.StatusForbidden},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("receive: %w", NotFound("order 3 not found")), http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Errorf("Expected status %d, got %d", tc.want, got)
			}
		})
	}
}

func TestBody(t *testing.T) {
	body := Body(Upstream(errors.New("503 Service Unavailable"), "error sending order to VMS"))
	if body["message"] != "error sending order to VMS" {
		t.Errorf("unexpected message %q", body["message"])
	}
	if body["details"] != "503 Service Unavailable" {
		t.Errorf("unexpected details %q", body["details"])
	}

	body = Body(NotFound("Order not found."))
	if _, ok := body["details"]; ok {
		t.Errorf("Expected no details for not-found errors, got %v", body)
	}

	body = Body(errors.New("raw"))
	if body["message"] != "An unexpected error occurred." || body["details"] != "raw" {
		t.Errorf("unexpected body for untyped error: %v", body)
	}
}

func TestIs(t *testing.T) {
	if !Is(Conflict("x"), KindConflict) {
		t.Error("Expected conflict kind")
	}
	if Is(nil, KindUnexpected) {
		t.Error("nil must not match any kind")
	}
}
