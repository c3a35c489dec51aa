// Package checkout composes the cart, catalog, payment engine and order
// lifecycle into the settlement and cancellation workflows.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/realsnywy/tac3-sistema-ecommerce/internal/cart"
	"github.com/realsnywy/tac3-sistema-ecommerce/internal/domain"
	"github.com/realsnywy/tac3-sistema-ecommerce/internal/payment"
	"github.com/realsnywy/tac3-sistema-ecommerce/internal/port"
	"github.com/realsnywy/tac3-sistema-ecommerce/internal/repository"
)

var (
	ErrUnknownCustomer   = errors.New("customer is not registered")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOrderNotFound     = errors.New("order not found")
	ErrNotPending        = errors.New("order is not pending")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// Service is the single writer for orders and stock. Its mutex makes
// settlement exclusive per process, so a retried request cannot
// double-charge or double-decrement stock.
type Service struct {
	mu          sync.Mutex
	catalog     port.Catalog
	users       port.UserDirectory
	orders      port.OrderRepository
	engine      *payment.Engine
	logger      *slog.Logger
	nextOrderID int64
}

func NewService(catalog port.Catalog, users port.UserDirectory, orders port.OrderRepository, engine *payment.Engine, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		catalog: catalog,
		users:   users,
		orders:  orders,
		engine:  engine,
		logger:  logger,
	}
}

// ConfigurePayments swaps the payment engine for one built from cfg.
func (s *Service) ConfigurePayments(cfg payment.Config, opts ...payment.Option) error {
	engine, err := payment.NewEngine(cfg, opts...)
	if err != nil {
		return fmt.Errorf("payment.NewEngine: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine = engine

	return nil
}

// CreateOrder snapshots the cart into a pending order for a registered
// customer. The cart is left untouched; clearing it is the caller's call.
func (s *Service) CreateOrder(ctx context.Context, customerID string, c *cart.Cart, address domain.Address, method domain.PaymentMethod) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var o domain.Order

	exists, err := s.users.Exists(ctx, customerID)
	if err != nil {
		return o, fmt.Errorf("users.Exists: %w", err)
	}
	if !exists {
		return o, fmt.Errorf("customer[%s]: %w", customerID, ErrUnknownCustomer)
	}

	if c.Empty() {
		return o, ErrEmptyCart
	}

	items, err := s.snapshotCart(ctx, c)
	if err != nil {
		return o, fmt.Errorf("s.snapshotCart: %w", err)
	}

	total, err := c.Total(ctx)
	if err != nil {
		return o, fmt.Errorf("c.Total: %w", err)
	}

	order, err := domain.NewOrder(s.nextOrderID+1, customerID, items, total, address, method)
	if err != nil {
		return o, fmt.Errorf("domain.NewOrder: %w", err)
	}

	if err := s.orders.InsertOrder(ctx, order); err != nil {
		return o, fmt.Errorf("orders.InsertOrder: %w", err)
	}
	s.nextOrderID++

	s.logger.Info("order created",
		"order_id", order.ID,
		"customer_id", customerID,
		"items", len(order.Items),
		"total", order.Total.String(),
	)

	return order, nil
}

func (s *Service) snapshotCart(ctx context.Context, c *cart.Cart) ([]domain.OrderItem, error) {
	lines := c.Lines()

	items := make([]domain.OrderItem, 0, len(lines))
	for productID, qty := range lines {
		product, err := s.catalog.GetProduct(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("catalog.GetProduct: %w", err)
		}

		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  qty,
		})
	}

	// map iteration order is random
	slices.SortFunc(items, func(a, b domain.OrderItem) int {
		return int(a.ProductID - b.ProductID)
	})

	return items, nil
}

// Settle authorizes payment for a pending order and, on approval, commits
// the status change and the stock decrements. The amount due is re-derived
// from the order's nominal total; whatever amount the caller thinks it owes
// is irrelevant.
func (s *Service) Settle(ctx context.Context, orderID int64, details payment.Details) (Settlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var settlement Settlement

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return settlement, fmt.Errorf("order[%d]: %w", orderID, ErrOrderNotFound)
		}
		return settlement, fmt.Errorf("orders.GetOrder: %w", err)
	}

	if order.Status != domain.OrderStatusPending {
		return settlement, fmt.Errorf("order[%d] is %s: %w", orderID, order.Status, ErrNotPending)
	}

	if details.Installments <= 0 {
		details.Installments = 1
	}

	due, err := s.amountDue(order, details)
	if err != nil {
		return settlement, fmt.Errorf("s.amountDue: %w", err)
	}

	outcome := s.engine.Authorize(ctx, due, order.Method, details)

	settlement = Settlement{
		Status:        SettlementStatus(outcome.Status),
		Message:       outcome.Message,
		TransactionID: outcome.TransactionID,
		AmountCharged: due,
	}

	if outcome.Status != payment.OutcomeApproved {
		s.logger.Info("settlement not approved",
			"order_id", orderID,
			"status", outcome.Status,
			"message", outcome.Message,
		)
		return settlement, nil
	}

	order.RegisterPayment(outcome.TransactionID, due)
	if err := s.orders.UpdateOrder(ctx, order); err != nil {
		return settlement, fmt.Errorf("orders.UpdateOrder: %w", err)
	}

	settlement.StockErrors = s.commitStock(ctx, order)
	if len(settlement.StockErrors) > 0 {
		settlement.Status = SettlementApprovedStockError
		settlement.Message = fmt.Sprintf(
			"%s; stock commit failed for %d line(s), manual reconciliation required",
			outcome.Message, len(settlement.StockErrors),
		)
	}

	s.logger.Info("order settled",
		"order_id", orderID,
		"status", settlement.Status,
		"transaction_id", outcome.TransactionID,
		"amount", due.String(),
	)

	return settlement, nil
}

// amountDue re-derives method-specific pricing from the nominal total.
func (s *Service) amountDue(order domain.Order, details payment.Details) (domain.Money, error) {
	switch order.Method {
	case domain.PaymentMethodPix:
		return s.engine.PixPrice(order.Total)
	case domain.PaymentMethodCard:
		quote, err := s.engine.InstallmentPrice(order.Total, details.Installments)
		if err != nil {
			return domain.Money{}, err
		}
		return quote.Total, nil
	default:
		// let the gateway produce the unknown-method outcome
		return order.Total, nil
	}
}

// commitStock decrements stock for every line, continuing past failures:
// payment is already captured, so successfully decremented lines stay
// decremented and failures are surfaced for manual reconciliation.
func (s *Service) commitStock(ctx context.Context, order domain.Order) []StockError {
	var stockErrs []StockError

	for _, item := range order.Items {
		err := s.catalog.DecrementStock(ctx, item.ProductID, item.Quantity)
		if err == nil {
			continue
		}

		available := -1
		if product, getErr := s.catalog.GetProduct(ctx, item.ProductID); getErr == nil {
			available = product.Stock
		}

		stockErrs = append(stockErrs, StockError{
			ProductID: item.ProductID,
			Requested: item.Quantity,
			Available: available,
			Cause:     err,
		})

		s.logger.Warn("stock commit failed",
			"order_id", order.ID,
			"product_id", item.ProductID,
			"requested", item.Quantity,
			"available", available,
			"error", err,
		)
	}

	return stockErrs
}

// Cancel transitions the order to cancelled and restores stock when the
// order had already committed it (paid or shipped). Pending orders never
// decremented stock and delivered goods are not restocked.
func (s *Service) Cancel(ctx context.Context, orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("order[%d]: %w", orderID, ErrOrderNotFound)
		}
		return fmt.Errorf("orders.GetOrder: %w", err)
	}

	prior := order.Status
	if !order.Transition(domain.OrderStatusCancelled) {
		return fmt.Errorf("order[%d] %s->cancelled: %w", orderID, prior, ErrInvalidTransition)
	}

	if err := s.orders.UpdateOrder(ctx, order); err != nil {
		return fmt.Errorf("orders.UpdateOrder: %w", err)
	}

	if prior == domain.OrderStatusPaid || prior == domain.OrderStatusShipped {
		for _, item := range order.Items {
			if err := s.catalog.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				s.logger.Warn("restock failed",
					"order_id", orderID,
					"product_id", item.ProductID,
					"quantity", item.Quantity,
					"error", err,
				)
			}
		}
	}

	s.logger.Info("order cancelled", "order_id", orderID, "prior_status", prior)

	return nil
}

// MarkShipped advances a paid order to shipped.
func (s *Service) MarkShipped(ctx context.Context, orderID int64) error {
	return s.advance(ctx, orderID, domain.OrderStatusShipped)
}

// MarkDelivered advances a shipped order to delivered.
func (s *Service) MarkDelivered(ctx context.Context, orderID int64) error {
	return s.advance(ctx, orderID, domain.OrderStatusDelivered)
}

func (s *Service) advance(ctx context.Context, orderID int64, target domain.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("order[%d]: %w", orderID, ErrOrderNotFound)
		}
		return fmt.Errorf("orders.GetOrder: %w", err)
	}

	prior := order.Status
	if !order.Transition(target) {
		return fmt.Errorf("order[%d] %s->%s: %w", orderID, prior, target, ErrInvalidTransition)
	}

	if err := s.orders.UpdateOrder(ctx, order); err != nil {
		return fmt.Errorf("orders.UpdateOrder: %w", err)
	}

	return nil
}
