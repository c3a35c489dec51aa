package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/realsnywy/tac3-sistema-ecommerce/internal/domain"
	"github.com/realsnywy/tac3-sistema-ecommerce/internal/port"
	"github.com/samber/lo"
)

type orderRepository struct {
	mu     sync.RWMutex
	orders map[int64]domain.Order
}

func NewOrder() port.OrderRepository {
	return &orderRepository{
		orders: make(map[int64]domain.Order),
	}
}

func (r *orderRepository) InsertOrder(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; ok {
		return fmt.Errorf("order[%d]: %w", order.ID, ErrAlreadyExists)
	}

	r.orders[order.ID] = order
	return nil
}

func (r *orderRepository) GetOrder(_ context.Context, orderID int64) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return domain.Order{}, fmt.Errorf("order[%d]: %w", orderID, ErrNotFound)
	}

	return order, nil
}

func (r *orderRepository) UpdateOrder(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return fmt.Errorf("order[%d]: %w", order.ID, ErrNotFound)
	}

	r.orders[order.ID] = order
	return nil
}

func (r *orderRepository) SearchOrders(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := lo.Filter(lo.Values(r.orders), func(o domain.Order, _ int) bool {
		return filter.Matches(o)
	})

	slices.SortFunc(matches, func(a, b domain.Order) int {
		return int(a.ID - b.ID)
	})

	return matches, nil
}
