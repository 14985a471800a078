package vms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/georgemunganga/ims-backend/internal/apperr"
	"github.com/georgemunganga/ims-backend/internal/config"
	"go.uber.org/zap"
)

// Client is the outbound adapter to the Vendor Management System.
type Client interface {
	// SendOrder forwards a purchase order once, without retrying. The VMS reply is returned as-is.
	SendOrder(ctx context.Context, payload *OrderPayload) (json.RawMessage, error)
	// UpdateOrderStatus pushes a status change using the configured retry policy.
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) (json.RawMessage, error)
}

type httpClient struct {
	baseURL    string
	ordersPath string
	statusPath string
	http       *http.Client
	policy     RetryPolicy
	sleep      Sleeper
	logger     *zap.Logger
}

// NewClient builds a VMS client from configuration.
func NewClient(cfg config.VMSConfig, log *zap.Logger) Client {
	return newHTTPClient(cfg, &http.Client{Timeout: cfg.Timeout}, SleepContext, log)
}

func newHTTPClient(cfg config.VMSConfig, hc *http.Client, sleep Sleeper, log *zap.Logger) *httpClient {
	return &httpClient{
		baseURL:    cfg.BaseURL,
		ordersPath: cfg.OrdersPath,
		statusPath: cfg.StatusPath,
		http:       hc,
		policy:     RetryPolicy{Attempts: cfg.Retries, Delay: cfg.RetryDelay},
		sleep:      sleep,
		logger:     log,
	}
}

func (c *httpClient) SendOrder(ctx context.Context, payload *OrderPayload) (json.RawMessage, error) {
	resp, err := c.post(ctx, c.baseURL+c.ordersPath, payload, "Error sending order to VMS")
	if err != nil {
		c.logger.Error("HTTP error sending order to VMS", zap.Int64("order_id", payload.OrderID), zap.Error(err))
		return nil, err
	}
	return resp, nil
}

func (c *httpClient) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (json.RawMessage, error) {
	var resp json.RawMessage
	err := Retry(ctx, c.policy, c.sleep, c.logger, func(ctx context.Context) error {
		r, err := c.post(ctx, c.baseURL+c.statusPath, &StatusUpdate{OrderID: orderID, OrderStatus: status}, "Error updating order status in VMS")
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// post sends body as JSON. failMsg is the client-facing message for transport and non-2xx failures.
func (c *httpClient) post(ctx context.Context, url string, body interface{}, failMsg string) (json.RawMessage, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, apperr.Unexpected(err, "encode VMS payload")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return nil, apperr.Unexpected(err, "build VMS request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Upstream(err, "%s", failMsg)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperr.Upstream(err, "Error reading VMS response")
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, apperr.Upstream(fmt.Errorf("%s: %s", res.Status, bytes.TrimSpace(data)), "%s", failMsg)
	}
	if !json.Valid(data) {
		return nil, apperr.Upstream(fmt.Errorf("body is not JSON"), "Invalid response from VMS")
	}
	return json.RawMessage(data), nil
}
