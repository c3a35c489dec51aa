// Package receipt renders human-readable payment receipts and invoices
// for settled orders.
package receipt

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/realsnywy/tac3-sistema-ecommerce/internal/domain"
)

var (
	ErrNoTransaction = errors.New("order has no payment transaction")
	ErrNotEligible   = errors.New("order is not invoice eligible")
)

const receiptTmpl = `--- Payment Receipt ---
Transaction ID: {{.TransactionID}}
Amount Paid: {{.AmountPaid}}
Payment Method: {{.Method}}
Date: {{.PaidAt}}
-----------------------
`

const invoiceTmpl = `--- Invoice ---
Order ID: {{.OrderID}}
Customer ID: {{.CustomerID}}
Purchase Date: {{.CreatedAt}}
{{- if .PaidAt}}
Payment Date: {{.PaidAt}}
{{- end}}
Items:
{{- range .Items}}
  - {{.Name}}: {{.Quantity}} x {{.UnitPrice}} = {{.LineTotal}}
{{- end}}
Subtotal: {{.Subtotal}}
Shipping: {{.Shipping}}
Amount Paid: {{.AmountPaid}}
Payment Method: {{.Method}}
Delivery Address: {{.Street}}, {{.PostalCode}}
---------------
`

const dateLayout = "2006-01-02 15:04:05"

type Renderer struct {
	receipt *template.Template
	invoice *template.Template
}

func NewRenderer() (*Renderer, error) {
	receipt, err := template.New("receipt").Parse(receiptTmpl)
	if err != nil {
		return nil, fmt.Errorf("parse receipt template: %w", err)
	}

	invoice, err := template.New("invoice").Parse(invoiceTmpl)
	if err != nil {
		return nil, fmt.Errorf("parse invoice template: %w", err)
	}

	return &Renderer{receipt: receipt, invoice: invoice}, nil
}

// Receipt renders the payment receipt for a settled order.
func (r *Renderer) Receipt(order domain.Order) (string, error) {
	if order.TransactionID == "" {
		return "", ErrNoTransaction
	}

	data := map[string]string{
		"TransactionID": order.TransactionID,
		"AmountPaid":    paidAmount(order).String(),
		"Method":        string(order.Method),
		"PaidAt":        formatTime(order.Timestamps.PaidAt),
	}

	var sb strings.Builder
	if err := r.receipt.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("receipt.Execute: %w", err)
	}

	return sb.String(), nil
}

type invoiceLine struct {
	Name      string
	Quantity  int
	UnitPrice domain.Money
	LineTotal domain.Money
}

// Invoice renders the invoice for an order whose status allows one
// (paid, shipped or delivered).
func (r *Renderer) Invoice(order domain.Order) (string, error) {
	if !order.InvoiceEligible() {
		return "", fmt.Errorf("order[%d] is %s: %w", order.ID, order.Status, ErrNotEligible)
	}

	lines := make([]invoiceLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, invoiceLine{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal().Round(),
		})
	}

	paidAt := ""
	if order.Timestamps.PaidAt != nil {
		paidAt = order.Timestamps.PaidAt.Format(dateLayout)
	}

	data := map[string]any{
		"OrderID":    order.ID,
		"CustomerID": order.CustomerID,
		"CreatedAt":  order.Timestamps.CreatedAt.Format(dateLayout),
		"PaidAt":     paidAt,
		"Items":      lines,
		"Subtotal":   order.Total.String(),
		"Shipping":   order.ShippingFee().String(),
		"AmountPaid": paidAmount(order).String(),
		"Method":     string(order.Method),
		"Street":     order.Address.Street,
		"PostalCode": order.Address.PostalCode,
	}

	var sb strings.Builder
	if err := r.invoice.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("invoice.Execute: %w", err)
	}

	return sb.String(), nil
}

// paidAmount falls back to nominal total plus shipping when no payment
// was recorded yet.
func paidAmount(order domain.Order) domain.Money {
	if order.AmountPaid != nil {
		return *order.AmountPaid
	}

	total, err := order.Total.Add(order.ShippingFee())
	if err != nil {
		return order.Total
	}
	return total.Round()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format(dateLayout)
}
