package checkout

import (
	"context"
	"fmt"

	"github.com/realsnywy/tac3-sistema-ecommerce/internal/domain"
	"github.com/samber/lo"
)

// SalesReport summarizes settled orders: TotalSettled sums only orders
// with a recorded paid amount, CountSettled counts every order whose
// status is paid, shipped or delivered. Orders holds everything that
// passed the status filter, settled or not.
type SalesReport struct {
	TotalSettled domain.Money
	CountSettled int
	Orders       []domain.Order
}

// Report builds the sales report, optionally narrowed to a single status.
func (s *Service) Report(ctx context.Context, statusFilter *domain.OrderStatus) (SalesReport, error) {
	var report SalesReport

	filter := domain.OrderFilter{}
	if statusFilter != nil {
		filter.Statuses = []domain.OrderStatus{*statusFilter}
	}

	orders, err := s.orders.SearchOrders(ctx, filter)
	if err != nil {
		return report, fmt.Errorf("orders.SearchOrders: %w", err)
	}

	settled := lo.Filter(orders, func(o domain.Order, _ int) bool {
		return o.InvoiceEligible()
	})

	total := domain.Money{}
	for _, o := range settled {
		if o.AmountPaid == nil {
			continue
		}

		total, err = total.Add(*o.AmountPaid)
		if err != nil {
			return report, fmt.Errorf("total.Add: %w", err)
		}
	}

	return SalesReport{
		TotalSettled: total.Round(),
		CountSettled: len(settled),
		Orders:       orders,
	}, nil
}
