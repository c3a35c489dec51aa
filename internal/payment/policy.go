package payment

import (
	"strings"

	"github.com/realsnywy/tac3-sistema-ecommerce/internal/domain"
	"github.com/shopspring/decimal"
)

// SimulationPolicy decides which simulated gateway outcome a payment
// attempt provokes. Production integrations replace it with an adapter
// backed by a real gateway.
type SimulationPolicy interface {
	// SuspectedFraud screens the attempt before any method-specific logic
	// runs; a hit rejects the payment regardless of method.
	SuspectedFraud(method domain.PaymentMethod, details Details, amount domain.Money) bool

	// GatewayTimeout forces the transient-error outcome.
	GatewayTimeout(details Details) bool

	// AuthorizationFailure forces a card authorization rejection.
	AuthorizationFailure(details Details) bool
}

const (
	DefaultSuspiciousMarker  = "suspect_card"
	DefaultTimeoutMarker     = "timeout"
	DefaultAuthFailureMarker = "auth_failure"
)

// MarkerPolicy triggers outcomes off magic substrings embedded in the card
// identifier, plus a flat fraud ceiling on the amount. It exists so tests
// and demos can force every gateway outcome deterministically.
type MarkerPolicy struct {
	FraudCeiling      decimal.Decimal
	SuspiciousMarker  string
	TimeoutMarker     string
	AuthFailureMarker string
}

func DefaultPolicy() MarkerPolicy {
	return MarkerPolicy{
		FraudCeiling:      decimal.NewFromInt(20_000),
		SuspiciousMarker:  DefaultSuspiciousMarker,
		TimeoutMarker:     DefaultTimeoutMarker,
		AuthFailureMarker: DefaultAuthFailureMarker,
	}
}

func (p MarkerPolicy) SuspectedFraud(_ domain.PaymentMethod, details Details, amount domain.Money) bool {
	if amount.Amount.GreaterThan(p.FraudCeiling) {
		return true
	}
	return p.SuspiciousMarker != "" && strings.Contains(details.CardNumber, p.SuspiciousMarker)
}

func (p MarkerPolicy) GatewayTimeout(details Details) bool {
	return p.TimeoutMarker != "" && strings.Contains(details.CardNumber, p.TimeoutMarker)
}

func (p MarkerPolicy) AuthorizationFailure(details Details) bool {
	return p.AuthFailureMarker != "" && strings.Contains(details.CardNumber, p.AuthFailureMarker)
}
