package domain

import "slices"

// OrderFilter has AND semantics across fields, OR semantics within each
// field slice. An empty filter matches every order.
type OrderFilter struct {
	IDs         []int64
	CustomerIDs []string
	Statuses    []OrderStatus
}

func (f OrderFilter) Matches(o Order) bool {
	if len(f.IDs) > 0 && !slices.Contains(f.IDs, o.ID) {
		return false
	}
	if len(f.CustomerIDs) > 0 && !slices.Contains(f.CustomerIDs, o.CustomerID) {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, o.Status) {
		return false
	}
	return true
}
