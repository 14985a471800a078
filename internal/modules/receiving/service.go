package receiving

import (
	"context"
	"time"

	"github.com/georgemunganga/ims-backend/internal/apperr"
	"github.com/georgemunganga/ims-backend/internal/modules/order"
	"go.uber.org/zap"
)

// Service stocks delivered variants and serves the order status listings.
type Service interface {
	ReceiveVariants(ctx context.Context, req ReceiveRequest) (*ReceiveResult, error)
	// FetchOrders lists orders for one status, or every order when status is empty.
	FetchOrders(ctx context.Context, status string) ([]OrderDisplay, error)
	DeliveredOrders(ctx context.Context) ([]DeliveredOrder, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, logger: log, now: time.Now}
}

// ReceiveVariants stocks each variant in submission order inside one transaction. A variant whose
// barcode is already on file, or that matches no product, is skipped. When nothing was skipped the
// order moves to Delivered; otherwise the stocked variants are kept and the order is left as is.
func (s *service) ReceiveVariants(ctx context.Context, req ReceiveRequest) (*ReceiveResult, error) {
	if len(req.Variants) == 0 {
		return nil, apperr.Validation("No product variants provided")
	}
	s.logger.Info("received variants", zap.Int64("order_id", req.OrderID), zap.Int("count", len(req.Variants)))

	res := &ReceiveResult{OrderID: req.OrderID}
	err := s.repo.RunInTx(ctx, func(tx TxRepository) error {
		current, found, err := tx.OrderStatus(ctx, req.OrderID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFound("Order not found.")
		}
		if current == string(order.StatusReceived) {
			return apperr.Conflict("Order %d is already Received.", req.OrderID)
		}

		for _, v := range req.Variants {
			s.logger.Debug("processing variant", zap.String("barcode", v.Barcode))

			exists, err := tx.BarcodeExists(ctx, v.Barcode)
			if err != nil {
				return err
			}
			if exists {
				s.logger.Warn("barcode already exists, skipping", zap.String("barcode", v.Barcode))
				res.Skipped = append(res.Skipped, SkippedVariant{Barcode: v.Barcode, Reason: SkipDuplicateBarcode})
				continue
			}

			productID, found, err := tx.FindProductID(ctx, v.ProductName, v.Category, v.Size)
			if err != nil {
				return err
			}
			if !found {
				s.logger.Warn("no product for variant, skipping",
					zap.String("barcode", v.Barcode),
					zap.String("product_name", v.ProductName),
					zap.String("category", v.Category),
					zap.String("size", v.Size))
				res.Skipped = append(res.Skipped, SkippedVariant{Barcode: v.Barcode, Reason: SkipProductNotFound})
				continue
			}

			if err := tx.InsertVariant(ctx, productID, v.Barcode, v.ProductCode); err != nil {
				return err
			}
			if err := tx.IncrementStock(ctx, productID); err != nil {
				return err
			}
			res.Processed++
		}

		if res.Processed != len(req.Variants) {
			return nil
		}
		s.logger.Info("all variants stocked, marking order delivered", zap.Int64("order_id", req.OrderID))
		return tx.SetOrderStatus(ctx, req.OrderID, string(order.StatusDelivered), s.now())
	})
	if err != nil {
		if apperr.KindOf(err) != apperr.KindUnexpected {
			return nil, err
		}
		return nil, apperr.Unexpected(err, "An error occurred while processing variants.")
	}

	if len(res.Skipped) > 0 {
		res.Status = ResultPartial
		res.Message = "Some variants were skipped. Order status left unchanged."
		return res, nil
	}
	res.Status = ResultSuccess
	res.Message = "Variants received and saved successfully."
	return res, nil
}

func (s *service) FetchOrders(ctx context.Context, status string) ([]OrderDisplay, error) {
	if status != "" {
		st, ok := order.ParseStatus(status)
		if !ok {
			return nil, apperr.Validation("Invalid order status")
		}
		status = string(st)
	}

	lines, err := s.repo.ListOrders(ctx, status)
	if err != nil {
		return nil, apperr.Unexpected(err, "error fetching orders")
	}
	out := make([]OrderDisplay, len(lines))
	for i, l := range lines {
		out[i] = l.Display()
	}
	return out, nil
}

func (s *service) DeliveredOrders(ctx context.Context) ([]DeliveredOrder, error) {
	orders, err := s.repo.DeliveredOrders(ctx)
	if err != nil {
		return nil, apperr.Unexpected(err, "An error occurred while fetching delivered orders.")
	}
	if len(orders) == 0 {
		return nil, apperr.NotFound("No delivered orders found.")
	}
	return orders, nil
}
