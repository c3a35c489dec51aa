package port

import (
	"context"

	"github.com/realsnywy/tac3-sistema-ecommerce/internal/domain"
)

type Catalog interface {
	AddProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	GetProduct(ctx context.Context, productID int64) (domain.Product, error)
	SearchProducts(ctx context.Context, term, category string) ([]domain.Product, error)

	// DecrementStock fails and leaves the count unchanged when qty
	// exceeds the current stock.
	DecrementStock(ctx context.Context, productID int64, qty int) error
	IncrementStock(ctx context.Context, productID int64, qty int) error
}
