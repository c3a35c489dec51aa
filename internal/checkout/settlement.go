package checkout

import "github.com/realsnywy/tac3-sistema-ecommerce/internal/domain"

type SettlementStatus string

const (
	SettlementApproved SettlementStatus = "approved"
	SettlementRejected SettlementStatus = "rejected"
	SettlementError    SettlementStatus = "error"

	// SettlementApprovedStockError marks the recognized partial-failure
	// state: payment captured, stock commit failed for at least one line.
	// The order stays paid and needs manual reconciliation.
	SettlementApprovedStockError SettlementStatus = "approved_with_stock_error"
)

type Settlement struct {
	Status        SettlementStatus
	Message       string
	TransactionID string
	AmountCharged domain.Money
	StockErrors   []StockError
}

// StockError describes one order line whose stock commit failed.
// Available is -1 when the product is gone from the catalog entirely.
type StockError struct {
	ProductID int64
	Requested int
	Available int
	Cause     error
}
