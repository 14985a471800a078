package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/georgemunganga/ims-backend/internal/apperr"
	"github.com/georgemunganga/ims-backend/internal/modules/vendor"
	"github.com/georgemunganga/ims-backend/internal/modules/vms"
	"go.uber.org/zap"
)

// Service is the purchase order workflow: creation from stock webhooks or by hand,
// VMS-driven status updates and the receiving handshake back to the VMS.
type Service interface {
	HandleStockUpdate(ctx context.Context, req StockUpdateRequest) (*WorkflowResult, error)
	CreateManualOrder(ctx context.Context, req ManualOrderRequest) (*WorkflowResult, error)
	// UpdateStatus applies a VMS status change. allowed restricts which statuses the caller may set.
	UpdateStatus(ctx context.Context, req StatusUpdateRequest, allowed ...Status) (*StatusResult, error)
	MarkReceived(ctx context.Context, orderID int64) (*StatusResult, error)
	ListPurchaseOrders(ctx context.Context) ([]PurchaseOrderRow, error)
}

type service struct {
	repo    Repository
	vendors vendor.Service
	vms     vms.Client
	logger  *zap.Logger
	now     func() time.Time
}

func NewService(repo Repository, vendors vendor.Service, client vms.Client, log *zap.Logger) Service {
	return newService(repo, vendors, client, log, time.Now)
}

func newService(repo Repository, vendors vendor.Service, client vms.Client, log *zap.Logger, now func() time.Time) *service {
	return &service{repo: repo, vendors: vendors, vms: client, logger: log, now: now}
}

const (
	msgNoReorder     = "Stock update processed. No purchase order required."
	msgReorderSent   = "Stock update processed. Purchase order created and sent to VMS."
	msgManualOrderOK = "Purchase order successfully created and sent to VMS."
	msgStatusUpdated = "Order status updated"
)

// ReorderQuantity is how much to order to bring stock back to the minimum level. It never goes negative.
func ReorderQuantity(minStock, currentStock int) int {
	if q := minStock - currentStock; q > 0 {
		return q
	}
	return 0
}

func (s *service) HandleStockUpdate(ctx context.Context, req StockUpdateRequest) (*WorkflowResult, error) {
	if req.ProductID == nil || req.CurrentStock == nil {
		return nil, apperr.Validation("productID and currentStock are required")
	}
	productID, current := *req.ProductID, *req.CurrentStock

	p, err := s.repo.GetReorderProduct(ctx, productID)
	if err != nil {
		return nil, apperr.Unexpected(err, "error fetching product")
	}
	if p == nil {
		return nil, apperr.NotFound("Product not found or inactive.")
	}

	if current > p.ReorderLevel {
		return &WorkflowResult{Message: msgNoReorder}, nil
	}
	qty := ReorderQuantity(p.MinStockLevel, current)
	if qty == 0 {
		return &WorkflowResult{Message: msgNoReorder}, nil
	}

	v, err := s.vendors.SelectForReorder(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	orderDate := dateOnly(now)
	expected := orderDate.AddDate(0, 0, LeadTimeDays)

	po := &PurchaseOrder{
		OrderDate:  orderDate,
		Status:     StatusPending,
		StatusDate: now,
		VendorID:   v.ID,
	}
	orderID, err := s.repo.CreatePurchaseOrder(ctx, po, &Detail{
		ProductID:     p.ProductID,
		WarehouseID:   p.WarehouseID,
		OrderQuantity: qty,
		ExpectedDate:  expected,
	})
	if err != nil {
		return nil, apperr.Unexpected(err, "error creating purchase order")
	}
	s.logger.Info("purchase order created from stock update",
		zap.Int64("order_id", orderID),
		zap.Int64("product_id", p.ProductID),
		zap.Int("quantity", qty),
		zap.Int64("vendor_id", v.ID))

	payload := &vms.OrderPayload{
		OrderID:            orderID,
		ProductID:          p.ProductID,
		ProductName:        p.ProductName,
		ProductDescription: p.ProductDescription,
		Size:               p.Size,
		Color:              p.Color,
		Category:           p.Category,
		Quantity:           int64(qty),
		WarehouseID:        p.WarehouseID,
		VendorID:           v.ID,
		VendorName:         v.Name,
		OrderDate:          orderDate.Format(payloadDateLayout),
		ExpectedDate:       expected.Format(payloadDateLayout),
	}
	resp, err := s.vms.SendOrder(ctx, payload)
	if err != nil {
		// The order stays persisted as Pending; there is no compensation or resend.
		return nil, err
	}
	return &WorkflowResult{Message: msgReorderSent, Payload: payload, Response: resp}, nil
}

func (s *service) CreateManualOrder(ctx context.Context, req ManualOrderRequest) (*WorkflowResult, error) {
	now := s.now()
	orderDate := dateOnly(now)

	orderID, err := s.repo.CreateManualOrder(ctx, ManualOrderInput{
		ProductName:   req.ProductName,
		Size:          req.Size,
		Category:      req.Category,
		Quantity:      req.Quantity,
		WarehouseName: req.WarehouseName,
		Address: Address{
			Building: req.Building,
			Street:   req.Street,
			Barangay: req.Barangay,
			City:     req.City,
			Country:  req.Country,
			Zipcode:  req.Zipcode,
		},
		UserID:       req.UserID,
		OrderDate:    orderDate,
		ExpectedDate: orderDate.AddDate(0, 0, LeadTimeDays),
		StatusDate:   now,
	})
	if errors.Is(err, ErrNoActiveVendor) {
		return nil, apperr.NotFound("No active vendors available.")
	}
	if err != nil {
		return nil, apperr.Unexpected(err, "error creating purchase order")
	}
	if orderID == 0 {
		return nil, apperr.NotFound("Failed to create purchase order: product %q (%s, %s) not found.", req.ProductName, req.Size, req.Category)
	}

	rec, err := s.repo.GetOrderRecord(ctx, orderID)
	if err != nil {
		return nil, apperr.Unexpected(err, "error fetching order details")
	}
	if rec == nil {
		return nil, apperr.NotFound("Order details not found.")
	}
	s.logger.Info("manual purchase order created", zap.Int64("order_id", orderID), zap.Int64("product_id", rec.ProductID))

	color := req.Color
	if color == "" {
		color = DefaultColor
	}
	payload := &vms.OrderPayload{
		OrderID:            rec.OrderID,
		ProductID:          rec.ProductID,
		ProductName:        rec.ProductName,
		ProductDescription: rec.ProductDescription,
		Size:               rec.Size,
		Color:              color,
		Category:           rec.Category,
		Quantity:           rec.Quantity.IntPart(),
		WarehouseID:        rec.WarehouseID,
		WarehouseName:      rec.WarehouseName,
		WarehouseAddress:   rec.Address.String(),
		VendorID:           rec.VendorID,
		VendorName:         rec.VendorName,
		OrderDate:          rec.OrderDate.Format(payloadDateTimeLayout),
		ExpectedDate:       rec.ExpectedDate.Format(payloadDateTimeLayout),
		UserID:             rec.UserID,
		UserName:           userName(rec.FirstName, rec.LastName),
	}
	resp, err := s.vms.SendOrder(ctx, payload)
	if err != nil {
		return nil, err
	}
	return &WorkflowResult{Message: msgManualOrderOK, Payload: payload, Response: resp}, nil
}

func (s *service) UpdateStatus(ctx context.Context, req StatusUpdateRequest, allowed ...Status) (*StatusResult, error) {
	status, ok := ParseStatus(req.OrderStatus)
	if !ok || !containsStatus(allowed, status) {
		return nil, apperr.Validation("Invalid order status %q. Allowed: %s", req.OrderStatus, joinStatuses(allowed))
	}

	current, found, err := s.repo.GetStatus(ctx, req.OrderID)
	if err != nil {
		return nil, apperr.Unexpected(err, "error fetching order")
	}
	if !found {
		return nil, apperr.NotFound("Order not found in the IMS")
	}
	// Received is terminal.
	if current == StatusReceived {
		return nil, apperr.Conflict("Order %d is already Received.", req.OrderID)
	}

	if err := s.repo.UpdateStatus(ctx, req.OrderID, status, s.now()); err != nil {
		return nil, apperr.Unexpected(err, "error updating order status")
	}
	s.logger.Info("order status updated by VMS", zap.Int64("order_id", req.OrderID), zap.String("status", string(status)))
	return &StatusResult{Message: msgStatusUpdated, OrderID: req.OrderID, Status: status}, nil
}

// MarkReceived moves a Delivered order to Received, commits, then notifies the VMS with retries.
// A VMS failure is reported to the caller but the local status change stands.
func (s *service) MarkReceived(ctx context.Context, orderID int64) (*StatusResult, error) {
	current, found, err := s.repo.GetStatus(ctx, orderID)
	if err != nil {
		return nil, apperr.Unexpected(err, "error fetching order")
	}
	if !found {
		return nil, apperr.NotFound("Order not found.")
	}
	if current != StatusDelivered {
		return nil, apperr.Conflict("Order is not marked as Delivered. Current status: %s", current)
	}

	changed, err := s.repo.TransitionStatus(ctx, orderID, StatusDelivered, StatusReceived, s.now())
	if err != nil {
		return nil, apperr.Unexpected(err, "error updating order status")
	}
	if !changed {
		return nil, apperr.Conflict("Order is no longer marked as Delivered.")
	}

	if _, err := s.vms.UpdateOrderStatus(ctx, orderID, string(StatusReceived)); err != nil {
		s.logger.Error("order received locally but VMS update failed", zap.Int64("order_id", orderID), zap.Error(err))
		return nil, err
	}
	return &StatusResult{
		Message: fmt.Sprintf("Order %d marked as 'Received' successfully in IMS and VMS.", orderID),
		OrderID: orderID,
		Status:  StatusReceived,
	}, nil
}

func (s *service) ListPurchaseOrders(ctx context.Context) ([]PurchaseOrderRow, error) {
	rows, err := s.repo.ListPurchaseOrders(ctx)
	if err != nil {
		return nil, apperr.Unexpected(err, "error fetching purchase orders")
	}
	if rows == nil {
		rows = []PurchaseOrderRow{}
	}
	return rows, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func userName(first, last *string) string {
	var parts []string
	for _, p := range []*string{first, last} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	return strings.Join(parts, " ")
}

func containsStatus(list []Status, s Status) bool {
	for _, st := range list {
		if st == s {
			return true
		}
	}
	return false
}

func joinStatuses(list []Status) string {
	names := make([]string, len(list))
	for i, s := range list {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
