package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/realsnywy/tac3-sistema-ecommerce/internal/domain"
	"github.com/realsnywy/tac3-sistema-ecommerce/internal/port"
	"github.com/realsnywy/tac3-sistema-ecommerce/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
	"golang.org/x/text/currency"
)

type orderRepositorySuite struct {
	suite.Suite

	repo   port.OrderRepository
	nextID int64
}

// entry point to run the tests in the suite
func TestOrderRepositorySuite(t *testing.T) {
	defer goleak.VerifyNone(t)

	suite.Run(t, new(orderRepositorySuite))
}

func (suite *orderRepositorySuite) SetupTest() {
	suite.repo = repository.NewOrder()
	suite.nextID = 0
}

func (suite *orderRepositorySuite) fakeOrder() domain.Order {
	suite.T().Helper()

	price := domain.NewMoney(decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2), brl)
	items := []domain.OrderItem{
		{ProductID: 1, Name: gofakeit.ProductName(), UnitPrice: price, Quantity: 2},
	}

	suite.nextID++
	order, err := domain.NewOrder(
		suite.nextID,
		gofakeit.UUID(),
		items,
		price.MulInt(2).Round(),
		domain.Address{Street: gofakeit.Street(), City: gofakeit.City(), PostalCode: gofakeit.Zip()},
		domain.PaymentMethodPix,
	)
	suite.Require().NoError(err)

	return order
}

func (suite *orderRepositorySuite) TestInsertAndGet() {
	t := suite.T()
	ctx := t.Context()

	order := suite.fakeOrder()
	require.NoError(t, suite.repo.InsertOrder(ctx, order))

	got, err := suite.repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assertOrder(t, order, got)

	// duplicate id rejected
	err = suite.repo.InsertOrder(ctx, order)
	require.ErrorIs(t, err, repository.ErrAlreadyExists)
}

func (suite *orderRepositorySuite) TestGet_NotFound() {
	_, err := suite.repo.GetOrder(suite.T().Context(), 42)
	suite.Require().ErrorIs(err, repository.ErrNotFound)
}

func (suite *orderRepositorySuite) TestUpdateOrder() {
	t := suite.T()
	ctx := t.Context()

	order := suite.fakeOrder()
	require.NoError(t, suite.repo.InsertOrder(ctx, order))

	require.True(t, order.RegisterPayment("PIX-1", order.Total))
	require.NoError(t, suite.repo.UpdateOrder(ctx, order))

	got, err := suite.repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, got.Status)
	assert.Equal(t, "PIX-1", got.TransactionID)

	missing := suite.fakeOrder()
	err = suite.repo.UpdateOrder(ctx, missing)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func (suite *orderRepositorySuite) TestSearchOrders() {
	t := suite.T()
	ctx := t.Context()

	first := suite.fakeOrder()
	second := suite.fakeOrder()
	third := suite.fakeOrder()
	require.True(t, second.Transition(domain.OrderStatusPaid))

	for _, o := range []domain.Order{third, first, second} {
		require.NoError(t, suite.repo.InsertOrder(ctx, o))
	}

	tests := []struct {
		name    string
		filter  domain.OrderFilter
		wantIDs []int64
	}{
		{
			name:    "empty filter matches all, sorted by id",
			filter:  domain.OrderFilter{},
			wantIDs: []int64{first.ID, second.ID, third.ID},
		},
		{
			name:    "by status",
			filter:  domain.OrderFilter{Statuses: []domain.OrderStatus{domain.OrderStatusPaid}},
			wantIDs: []int64{second.ID},
		},
		{
			name:    "by customer",
			filter:  domain.OrderFilter{CustomerIDs: []string{first.CustomerID}},
			wantIDs: []int64{first.ID},
		},
		{
			name: "fields combine with AND",
			filter: domain.OrderFilter{
				CustomerIDs: []string{first.CustomerID},
				Statuses:    []domain.OrderStatus{domain.OrderStatusPaid},
			},
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			orders, err := suite.repo.SearchOrders(t.Context(), tt.filter)
			require.NoError(t, err)

			gotIDs := make([]int64, 0, len(orders))
			for _, o := range orders {
				gotIDs = append(gotIDs, o.ID)
			}

			if tt.wantIDs == nil {
				assert.Empty(t, gotIDs)
			} else {
				assert.Equal(t, tt.wantIDs, gotIDs)
			}
		})
	}
}

func assertOrder(t *testing.T, expected, actual domain.Order) {
	t.Helper()

	// Custom comparers for the opaque Money fields
	opts := cmp.Options{
		cmp.Comparer(func(x, y currency.Unit) bool {
			return x.String() == y.String()
		}),
		cmp.Comparer(func(x, y decimal.Decimal) bool {
			return x.Equal(y)
		}),
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)
}
