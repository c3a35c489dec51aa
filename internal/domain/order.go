package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "credit_card"
	PaymentMethodPix  PaymentMethod = "pix"
)

type Address struct {
	Street     string
	City       string
	PostalCode string
}

func (a Address) Validate() error {
	if a.Street == "" {
		return errors.New("address street must not be empty")
	}
	if a.PostalCode == "" {
		return errors.New("address postal code must not be empty")
	}
	return nil
}

// Order is an immutable snapshot of purchased lines plus mutable
// payment/fulfilment state. It is never deleted, only transitioned
// to the terminal cancelled status.
type Order struct {
	ID         int64
	CustomerID string
	Items      []OrderItem
	Total      Money
	Address    Address
	Method     PaymentMethod

	Status     OrderStatus
	Timestamps OrderTimestamps

	// Set together, exactly once, on the pending->paid transition.
	TransactionID string
	AmountPaid    *Money
}

type OrderItem struct {
	ProductID int64
	Name      string
	UnitPrice Money
	Quantity  int
}

func (i OrderItem) LineTotal() Money {
	return i.UnitPrice.MulInt(i.Quantity)
}

// OrderTimestamps is the closed set of lifecycle events; each pointer
// stays nil until the event occurs.
type OrderTimestamps struct {
	CreatedAt   time.Time
	PaidAt      *time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

func NewOrder(id int64, customerID string, items []OrderItem, total Money, address Address, method PaymentMethod) (Order, error) {
	var o Order

	if id <= 0 {
		return o, errors.New("order id must be positive")
	}
	if customerID == "" {
		return o, errors.New("customer id must not be empty")
	}
	if len(items) == 0 {
		return o, errors.New("order must have at least one item")
	}
	if err := address.Validate(); err != nil {
		return o, err
	}
	if method == "" {
		return o, errors.New("payment method must be chosen")
	}

	return Order{
		ID:         id,
		CustomerID: customerID,
		Items:      items,
		Total:      total,
		Address:    address,
		Method:     method,
		Status:     OrderStatusPending,
		Timestamps: OrderTimestamps{CreatedAt: time.Now()},
	}, nil
}

// Transition moves the order to target if the state machine allows it,
// stamping the matching event time. It reports whether anything changed.
func (o *Order) Transition(target OrderStatus) bool {
	if !o.Status.CanTransitionTo(target) {
		return false
	}

	now := time.Now()
	switch target {
	case OrderStatusPaid:
		o.Timestamps.PaidAt = &now
	case OrderStatusShipped:
		o.Timestamps.ShippedAt = &now
	case OrderStatusDelivered:
		o.Timestamps.DeliveredAt = &now
	case OrderStatusCancelled:
		o.Timestamps.CancelledAt = &now
	}

	o.Status = target
	return true
}

// RegisterPayment records the settlement outcome and moves the order to paid.
// The caller must ensure the order is still pending.
func (o *Order) RegisterPayment(transactionID string, amountPaid Money) bool {
	o.TransactionID = transactionID
	o.AmountPaid = &amountPaid
	return o.Transition(OrderStatusPaid)
}

// InvoiceEligible reports whether an invoice may be issued for the order.
func (o Order) InvoiceEligible() bool {
	switch o.Status {
	case OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

var (
	freeShippingThreshold = decimal.NewFromInt(200)
	flatShippingFee       = decimal.NewFromInt(25)
)

// ShippingFee is flat, waived above the free-shipping threshold on the
// nominal order total.
func (o Order) ShippingFee() Money {
	if o.Total.Amount.GreaterThan(freeShippingThreshold) {
		return Money{Amount: decimal.Zero, Currency: o.Total.Currency}
	}
	return Money{Amount: flatShippingFee, Currency: o.Total.Currency}
}
