// Package cart aggregates desired line items against live catalog stock.
// Lines are keyed by product id; product data is always looked up through
// the catalog, never cached, so a cart cannot go stale against price or
// stock changes. Validation happens against the catalog's current stock
// snapshot, not a reservation.
package cart

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/realsnywy/tac3-sistema-ecommerce/internal/domain"
	"github.com/realsnywy/tac3-sistema-ecommerce/internal/port"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrItemNotFound      = errors.New("item not in cart")
	ErrInvalidDiscount   = errors.New("discount must be between 0 and 100")
)

// Cart is not safe for concurrent use; each shopper gets their own.
type Cart struct {
	catalog port.Catalog
	lines   map[int64]int
}

func New(catalog port.Catalog) *Cart {
	return &Cart{
		catalog: catalog,
		lines:   make(map[int64]int),
	}
}

// Add puts qty more units of a product into the cart. The cumulative
// quantity must not exceed the product's current stock; on failure the
// cart is left unmodified.
func (c *Cart) Add(ctx context.Context, productID int64, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	product, err := c.catalog.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("catalog.GetProduct: %w", err)
	}

	desired := c.lines[productID] + qty
	if product.Stock < desired {
		return fmt.Errorf("product[%d]: want %d in cart, available %d: %w",
			productID, desired, product.Stock, ErrInsufficientStock)
	}

	c.lines[productID] = desired
	return nil
}

// Remove takes qty units of a product out of the cart, deleting the line
// when the quantity drops to zero or below.
func (c *Cart) Remove(productID int64, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	current, ok := c.lines[productID]
	if !ok {
		return fmt.Errorf("product[%d]: %w", productID, ErrItemNotFound)
	}

	if qty >= current {
		delete(c.lines, productID)
		return nil
	}

	c.lines[productID] = current - qty
	return nil
}

// SetQuantity pins a line to newQty. Zero deletes the line, even when it
// is absent.
func (c *Cart) SetQuantity(ctx context.Context, productID int64, newQty int) error {
	if newQty < 0 {
		return ErrInvalidQuantity
	}

	if newQty == 0 {
		delete(c.lines, productID)
		return nil
	}

	product, err := c.catalog.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("catalog.GetProduct: %w", err)
	}

	if product.Stock < newQty {
		return fmt.Errorf("product[%d]: want %d in cart, available %d: %w",
			productID, newQty, product.Stock, ErrInsufficientStock)
	}

	c.lines[productID] = newQty
	return nil
}

// Total sums price*quantity over the current lines, rounded to two
// decimal places.
func (c *Cart) Total(ctx context.Context) (domain.Money, error) {
	var total domain.Money

	for productID, qty := range c.lines {
		product, err := c.catalog.GetProduct(ctx, productID)
		if err != nil {
			return domain.Money{}, fmt.Errorf("catalog.GetProduct: %w", err)
		}

		total, err = total.Add(product.Price.MulInt(qty))
		if err != nil {
			return domain.Money{}, fmt.Errorf("total.Add: %w", err)
		}
	}

	return total.Round(), nil
}

// Discount computes pct percent of the cart total without mutating the cart.
func (c *Cart) Discount(ctx context.Context, pct decimal.Decimal) (domain.Money, error) {
	if pct.Sign() < 0 || pct.GreaterThan(decimal.NewFromInt(100)) {
		return domain.Money{}, ErrInvalidDiscount
	}

	total, err := c.Total(ctx)
	if err != nil {
		return domain.Money{}, fmt.Errorf("c.Total: %w", err)
	}

	return total.Scale(pct.Div(decimal.NewFromInt(100))).Round(), nil
}

func (c *Cart) Clear() {
	clear(c.lines)
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the product id to quantity mapping.
func (c *Cart) Lines() map[int64]int {
	return maps.Clone(c.lines)
}
