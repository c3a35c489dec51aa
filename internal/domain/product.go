package domain

import "errors"

// Product identity is its ID; every other field is descriptive.
// Stock is only mutated through the catalog's increment/decrement operations.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       Money
	Stock       int
	Category    string
}

func (p Product) Validate() error {
	if p.ID <= 0 {
		return errors.New("product id must be positive")
	}
	if p.Name == "" {
		return errors.New("product name must not be empty")
	}
	if p.Price.Amount.Sign() <= 0 {
		return errors.New("product price must be positive")
	}
	if p.Stock < 0 {
		return errors.New("product stock must not be negative")
	}
	if p.Category == "" {
		return errors.New("product category must not be empty")
	}
	return nil
}

// Available reports whether qty units are in stock.
func (p Product) Available(qty int) bool {
	return qty > 0 && p.Stock >= qty
}
