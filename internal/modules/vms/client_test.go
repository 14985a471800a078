package vms

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/georgemunganga/ims-backend/internal/apperr"
	"github.com/georgemunganga/ims-backend/internal/config"
	"go.uber.org/zap"
)

type recordingSleeper struct {
	calls []time.Duration
}

func (s *recordingSleeper) sleep(_ context.Context, d time.Duration) error {
	s.calls = append(s.calls, d)
	return nil
}

func testClient(srv *httptest.Server, sleeper *recordingSleeper) *httpClient {
	cfg := config.VMSConfig{
		BaseURL:    srv.URL,
		OrdersPath: "/vms/orders",
		StatusPath: "/orders/vms/orders/update-status",
		Retries:    3,
		RetryDelay: 2 * time.Second,
	}
	return newHTTPClient(cfg, srv.Client(), sleeper.sleep, zap.NewNop())
}

func TestSendOrder_PassesResponseThrough(t *testing.T) {
	var got OrderPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vms/orders" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("invalid body: %v", err)
		}
		w.Write([]byte(`{"accepted":true,"vmsRef":"V-1"}`))
	}))
	defer srv.Close()

	c := testClient(srv, &recordingSleeper{})
	resp, err := c.SendOrder(context.Background(), &OrderPayload{OrderID: 11, ProductID: 7, Quantity: 8})
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if string(resp) != `{"accepted":true,"vmsRef":"V-1"}` {
		t.Errorf("Expected raw passthrough, got %s", resp)
	}
	if got.ProductID != 7 || got.Quantity != 8 {
		t.Errorf("VMS received wrong payload: %+v", got)
	}
}

func TestSendOrder_Failures(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"server error", http.StatusInternalServerError, `{"detail":"down"}`, "Error sending order to VMS"},
		{"client error", http.StatusUnprocessableEntity, `{}`, "Error sending order to VMS"},
		{"non json", http.StatusOK, `<html>ok</html>`, "Invalid response from VMS"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := testClient(srv, &recordingSleeper{}).SendOrder(context.Background(), &OrderPayload{OrderID: 1})
			if !apperr.Is(err, apperr.KindUpstream) {
				t.Fatalf("Expected upstream error, got %v", err)
			}
			var ae *apperr.Error
			errors.As(err, &ae)
			if ae.Message != tc.message {
				t.Errorf("Expected message %q, got %q", tc.message, ae.Message)
			}
			if calls != 1 {
				t.Errorf("SendOrder must not retry, got %d calls", calls)
			}
		})
	}
}

func TestUpdateOrderStatus_RetriesThenFails(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sleeper := &recordingSleeper{}
	_, err := testClient(srv, sleeper).UpdateOrderStatus(context.Background(), 42, "Received")
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("Expected upstream error, got %v", err)
	}
	if calls != 3 {
		t.Errorf("Expected exactly 3 attempts, got %d", calls)
	}
	if len(sleeper.calls) != 2 {
		t.Fatalf("Expected 2 sleeps between 3 attempts, got %d", len(sleeper.calls))
	}
	for _, d := range sleeper.calls {
		if d != 2*time.Second {
			t.Errorf("Expected fixed 2s delay, got %v", d)
		}
	}
}

func TestUpdateOrderStatus_SucceedsOnSecondAttempt(t *testing.T) {
	var calls int32
	var update StatusUpdate
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewDecoder(r.Body).Decode(&update)
		w.Write([]byte(`{"message":"updated"}`))
	}))
	defer srv.Close()

	sleeper := &recordingSleeper{}
	resp, err := testClient(srv, sleeper).UpdateOrderStatus(context.Background(), 42, "Received")
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if calls != 2 || len(sleeper.calls) != 1 {
		t.Errorf("Expected 2 calls and 1 sleep, got %d calls and %d sleeps", calls, len(sleeper.calls))
	}
	if update.OrderID != 42 || update.OrderStatus != "Received" {
		t.Errorf("unexpected status update body: %+v", update)
	}
	if string(resp) != `{"message":"updated"}` {
		t.Errorf("unexpected response %s", resp)
	}
}

func TestRetry_StopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, RetryPolicy{Attempts: 3, Delay: time.Hour}, SleepContext, zap.NewNop(), func(context.Context) error {
		calls++
		cancel()
		return errors.New("connection refused")
	})
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("Expected upstream error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 attempt before cancellation, got %d", calls)
	}
}

func TestUpdateOrderStatus_FailureNamesStatusUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv, &recordingSleeper{}).UpdateOrderStatus(context.Background(), 42, "Received")

	var outer *apperr.Error
	if !errors.As(err, &outer) {
		t.Fatalf("Expected *apperr.Error, got %v", err)
	}
	var last *apperr.Error
	if !errors.As(outer.Err, &last) {
		t.Fatalf("Expected the last attempt's error to be wrapped, got %v", outer.Err)
	}
	if last.Message != "Error updating order status in VMS" {
		t.Errorf("unexpected attempt message %q", last.Message)
	}
}
