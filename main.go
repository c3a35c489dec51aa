package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/realsnywy/tac3-sistema-ecommerce/internal/cart"
	"github.com/realsnywy/tac3-sistema-ecommerce/internal/checkout"
	"github.com/realsnywy/tac3-sistema-ecommerce/internal/domain"
	"github.com/realsnywy/tac3-sistema-ecommerce/internal/payment"
	"github.com/realsnywy/tac3-sistema-ecommerce/internal/receipt"
	"github.com/realsnywy/tac3-sistema-ecommerce/internal/repository"
	"github.com/realsnywy/tac3-sistema-ecommerce/pkg/logging"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

func main() {
	ctx := context.Background()
	logger := logging.New()

	// .env is optional, real env vars win either way
	_ = godotenv.Load()

	engine, err := payment.NewEngine(paymentConfigFromEnv())
	if err != nil {
		log.Fatal(err)
	}

	catalog := repository.NewCatalog()
	users := repository.NewUserDirectory()
	orders := repository.NewOrder()
	service := checkout.NewService(catalog, users, orders, engine, logger)

	renderer, err := receipt.NewRenderer()
	if err != nil {
		log.Fatal(err)
	}

	brl := currency.MustParseISO("BRL")

	keyboard, err := catalog.AddProduct(ctx, domain.Product{
		Name:        "Mechanical Keyboard",
		Description: "Tenkeyless, brown switches",
		Price:       domain.NewMoney(decimal.RequireFromString("350.00"), brl),
		Stock:       10,
		Category:    "peripherals",
	})
	if err != nil {
		log.Fatal(err)
	}

	mouse, err := catalog.AddProduct(ctx, domain.Product{
		Name:        "Wireless Mouse",
		Description: "Ergonomic, 2.4GHz",
		Price:       domain.NewMoney(decimal.RequireFromString("120.00"), brl),
		Stock:       25,
		Category:    "peripherals",
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := users.Register(ctx, "cust-1", "Ana", "ana@example.com"); err != nil {
		log.Fatal(err)
	}

	c := cart.New(catalog)
	if err := c.Add(ctx, keyboard.ID, 1); err != nil {
		log.Fatal(err)
	}
	if err := c.Add(ctx, mouse.ID, 2); err != nil {
		log.Fatal(err)
	}

	address := domain.Address{Street: "Rua das Flores 123", City: "Recife", PostalCode: "50000-000"}

	order, err := service.CreateOrder(ctx, "cust-1", c, address, domain.PaymentMethodPix)
	if err != nil {
		log.Fatal(err)
	}

	settlement, err := service.Settle(ctx, order.ID, payment.Details{PixKey: "ana@example.com"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("settlement: %s (%s)\n", settlement.Status, settlement.Message)

	settledOrder, err := orders.GetOrder(ctx, order.ID)
	if err != nil {
		log.Fatal(err)
	}

	invoice, err := renderer.Invoice(settledOrder)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(invoice)

	report, err := service.Report(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("settled orders: %d, total: %s\n", report.CountSettled, report.TotalSettled)

	if err := service.Cancel(ctx, order.ID); err != nil {
		log.Fatal(err)
	}
	fmt.Println("order cancelled, stock restored")
}

func paymentConfigFromEnv() payment.Config {
	cfg := payment.DefaultConfig()

	if v := os.Getenv("CHECKOUT_INSTALLMENT_RATE"); v != "" {
		if rate, err := decimal.NewFromString(v); err == nil {
			cfg.InstallmentRate = rate
		}
	}
	if v := os.Getenv("CHECKOUT_PIX_DISCOUNT"); v != "" {
		if discount, err := decimal.NewFromString(v); err == nil {
			cfg.PixDiscount = discount
		}
	}

	return cfg
}
