package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/realsnywy/tac3-sistema-ecommerce/internal/domain"
	"github.com/realsnywy/tac3-sistema-ecommerce/internal/port"
	"github.com/samber/lo"
)

// catalogRepository keeps the product catalog in process memory.
// Stock checks and mutations happen under the write lock, so concurrent
// settlements on the same product cannot jointly oversell.
type catalogRepository struct {
	mu       sync.RWMutex
	products map[int64]domain.Product
	nextID   int64
}

func NewCatalog() port.Catalog {
	return &catalogRepository{
		products: make(map[int64]domain.Product),
	}
}

func (r *catalogRepository) AddProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID + 1
	if err := product.Validate(); err != nil {
		return domain.Product{}, fmt.Errorf("product.Validate: %w", err)
	}

	r.nextID++
	r.products[product.ID] = product

	return product, nil
}

func (r *catalogRepository) GetProduct(_ context.Context, productID int64) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("product[%d]: %w", productID, ErrNotFound)
	}

	return product, nil
}

func (r *catalogRepository) SearchProducts(_ context.Context, term, category string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	term = strings.ToLower(term)

	matches := lo.Filter(lo.Values(r.products), func(p domain.Product, _ int) bool {
		if !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			return false
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			return false
		}
		return true
	})

	slices.SortFunc(matches, func(a, b domain.Product) int {
		return int(a.ID - b.ID)
	})

	return matches, nil
}

func (r *catalogRepository) DecrementStock(_ context.Context, productID int64, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("quantity[%d] must be positive", qty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[productID]
	if !ok {
		return fmt.Errorf("product[%d]: %w", productID, ErrNotFound)
	}

	if product.Stock < qty {
		return fmt.Errorf("product[%d]: requested %d, available %d: %w",
			productID, qty, product.Stock, ErrInsufficientStock)
	}

	product.Stock -= qty
	r.products[productID] = product

	return nil
}

func (r *catalogRepository) IncrementStock(_ context.Context, productID int64, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("quantity[%d] must be positive", qty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[productID]
	if !ok {
		return fmt.Errorf("product[%d]: %w", productID, ErrNotFound)
	}

	product.Stock += qty
	r.products[productID] = product

	return nil
}
