package port

import (
	"context"

	"github.com/realsnywy/tac3-sistema-ecommerce/internal/domain"
)

type OrderRepository interface {
	InsertOrder(ctx context.Context, order domain.Order) error
	GetOrder(ctx context.Context, orderID int64) (domain.Order, error)
	UpdateOrder(ctx context.Context, order domain.Order) error

	SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}
