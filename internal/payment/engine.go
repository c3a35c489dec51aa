// Package payment simulates the payment-settlement side of checkout:
// method-specific pricing, fraud screening, gateway authorization and
// refunds. Pricing functions are pure; only Authorize and Refund issue ids.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/realsnywy/tac3-sistema-ecommerce/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount      = errors.New("amount must not be negative")
	ErrInvalidInstallments = errors.New("installments must be a positive integer")
)

// Config carries the two simulated gateway rates. The installment rate is
// flat, applied once when paying in more than one installment.
type Config struct {
	InstallmentRate decimal.Decimal
	PixDiscount     decimal.Decimal
}

func DefaultConfig() Config {
	return Config{
		InstallmentRate: decimal.RequireFromString("0.05"),
		PixDiscount:     decimal.RequireFromString("0.10"),
	}
}

func (c Config) Validate() error {
	one := decimal.NewFromInt(1)

	if c.InstallmentRate.Sign() < 0 || c.InstallmentRate.GreaterThan(one) {
		return errors.New("installment rate must be between 0 and 1")
	}
	if c.PixDiscount.Sign() < 0 || c.PixDiscount.GreaterThan(one) {
		return errors.New("pix discount must be between 0 and 1")
	}
	return nil
}

// IDGenerator issues transaction and refund identifiers.
type IDGenerator func() string

type Engine struct {
	cfg    Config
	policy SimulationPolicy
	newID  IDGenerator
}

type Option func(*Engine)

func WithPolicy(policy SimulationPolicy) Option {
	return func(e *Engine) { e.policy = policy }
}

func WithIDGenerator(gen IDGenerator) Option {
	return func(e *Engine) { e.newID = gen }
}

func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cfg.Validate: %w", err)
	}

	e := &Engine{
		cfg:    cfg,
		policy: DefaultPolicy(),
		newID:  uuid.NewString,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// CashCardPrice is the single-installment card price: the amount itself,
// rounded to two decimals.
func (e *Engine) CashCardPrice(amount domain.Money) (domain.Money, error) {
	if amount.Amount.Sign() < 0 {
		return domain.Money{}, ErrNegativeAmount
	}
	return amount.Round(), nil
}

type InstallmentQuote struct {
	Total          domain.Money
	PerInstallment domain.Money
}

// InstallmentPrice applies the flat interest rate once when paying in more
// than one installment, then splits the total evenly.
func (e *Engine) InstallmentPrice(amount domain.Money, installments int) (InstallmentQuote, error) {
	if amount.Amount.Sign() < 0 {
		return InstallmentQuote{}, ErrNegativeAmount
	}
	if installments < 1 {
		return InstallmentQuote{}, ErrInvalidInstallments
	}

	total := amount
	if installments > 1 && e.cfg.InstallmentRate.Sign() > 0 {
		total = amount.Scale(decimal.NewFromInt(1).Add(e.cfg.InstallmentRate))
	}

	per := domain.NewMoney(
		total.Amount.Div(decimal.NewFromInt(int64(installments))),
		total.Currency,
	)

	return InstallmentQuote{
		Total:          total.Round(),
		PerInstallment: per.Round(),
	}, nil
}

// PixPrice applies the pix discount to the amount.
func (e *Engine) PixPrice(amount domain.Money) (domain.Money, error) {
	if amount.Amount.Sign() < 0 {
		return domain.Money{}, ErrNegativeAmount
	}

	discounted := amount.Scale(decimal.NewFromInt(1).Sub(e.cfg.PixDiscount))
	return discounted.Round(), nil
}

type OutcomeStatus string

const (
	OutcomeApproved OutcomeStatus = "approved"
	OutcomeRejected OutcomeStatus = "rejected"
	OutcomeError    OutcomeStatus = "error"
)

// Details is what the payer supplies for a payment attempt.
type Details struct {
	CardNumber   string
	Installments int
	PixKey       string
}

type Outcome struct {
	Status        OutcomeStatus
	Message       string
	TransactionID string
}

// Authorize runs the simulated gateway call for the given amount. It never
// returns a Go error: rejections and transient gateway failures are part of
// the Outcome, so the caller can distinguish a terminal rejection from a
// retryable error. A cancelled or expired context maps to the error outcome.
func (e *Engine) Authorize(ctx context.Context, amount domain.Money, method domain.PaymentMethod, details Details) Outcome {
	if err := ctx.Err(); err != nil {
		return Outcome{Status: OutcomeError, Message: fmt.Sprintf("gateway timeout: %v", err)}
	}

	if amount.Amount.Sign() <= 0 {
		return Outcome{Status: OutcomeRejected, Message: "payment amount must be positive"}
	}

	if e.policy.SuspectedFraud(method, details, amount) {
		return Outcome{Status: OutcomeRejected, Message: "payment rejected on suspected fraud"}
	}

	switch method {
	case domain.PaymentMethodCard:
		return e.authorizeCard(amount, details)
	case domain.PaymentMethodPix:
		return e.authorizePix(amount, details)
	default:
		return Outcome{Status: OutcomeError, Message: fmt.Sprintf("unknown payment method %q", method)}
	}
}

func (e *Engine) authorizeCard(amount domain.Money, details Details) Outcome {
	if details.CardNumber == "" {
		return Outcome{Status: OutcomeRejected, Message: "card number missing"}
	}
	if e.policy.GatewayTimeout(details) {
		return Outcome{Status: OutcomeError, Message: "gateway timeout"}
	}
	if e.policy.AuthorizationFailure(details) {
		return Outcome{Status: OutcomeRejected, Message: "card authorization failed"}
	}

	message := fmt.Sprintf("credit card payment of %s approved", amount)
	if details.Installments > 1 {
		per := domain.NewMoney(
			amount.Amount.Div(decimal.NewFromInt(int64(details.Installments))),
			amount.Currency,
		).Round()
		message = fmt.Sprintf("%s in %dx of %s", message, details.Installments, per)
	}

	return Outcome{
		Status:        OutcomeApproved,
		Message:       message,
		TransactionID: "CC-" + e.newID(),
	}
}

func (e *Engine) authorizePix(amount domain.Money, details Details) Outcome {
	if details.PixKey == "" {
		return Outcome{Status: OutcomeRejected, Message: "pix key missing"}
	}

	return Outcome{
		Status:        OutcomeApproved,
		Message:       fmt.Sprintf("pix payment of %s approved", amount),
		TransactionID: "PIX-" + e.newID(),
	}
}

type RefundStatus string

const (
	RefundSuccess RefundStatus = "success"
	RefundFailure RefundStatus = "failure"
)

type RefundResult struct {
	Status   RefundStatus
	Message  string
	RefundID string
}

// Refund reverses a previously approved transaction.
func (e *Engine) Refund(transactionID string, amount domain.Money) RefundResult {
	if transactionID == "" {
		return RefundResult{Status: RefundFailure, Message: "original transaction id missing"}
	}
	if amount.Amount.Sign() <= 0 {
		return RefundResult{Status: RefundFailure, Message: "refund amount must be positive"}
	}

	return RefundResult{
		Status:   RefundSuccess,
		Message:  fmt.Sprintf("refund of %s for transaction %s processed", amount, transactionID),
		RefundID: "RF-" + e.newID(),
	}
}
