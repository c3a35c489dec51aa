package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
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

var brl = currency.MustParseISO("BRL")

func fakeProduct() domain.Product {
	return domain.Product{
		Name:        gofakeit.ProductName(),
		Description: gofakeit.Sentence(5),
		Price:       domain.NewMoney(decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2), brl),
		Stock:       gofakeit.Number(1, 50),
		Category:    gofakeit.ProductCategory(),
	}
}

type catalogRepositorySuite struct {
	suite.Suite

	repo port.Catalog
}

// entry point to run the tests in the suite
func TestCatalogRepositorySuite(t *testing.T) {
	defer goleak.VerifyNone(t)

	suite.Run(t, new(catalogRepositorySuite))
}

func (suite *catalogRepositorySuite) SetupTest() {
	suite.repo = repository.NewCatalog()
}

func (suite *catalogRepositorySuite) TestAddProduct() {
	t := suite.T()
	ctx := t.Context()

	first, err := suite.repo.AddProduct(ctx, fakeProduct())
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	second, err := suite.repo.AddProduct(ctx, fakeProduct())
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)

	got, err := suite.repo.GetProduct(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Name, got.Name)
	assert.Equal(t, first.Stock, got.Stock)
}

func (suite *catalogRepositorySuite) TestAddProduct_Invalid() {
	tests := []struct {
		name    string
		mutate  func(*domain.Product)
		wantErr string
	}{
		{name: "empty name", mutate: func(p *domain.Product) { p.Name = "" }, wantErr: "name"},
		{name: "zero price", mutate: func(p *domain.Product) { p.Price.Amount = decimal.Zero }, wantErr: "price"},
		{name: "negative stock", mutate: func(p *domain.Product) { p.Stock = -1 }, wantErr: "stock"},
		{name: "empty category", mutate: func(p *domain.Product) { p.Category = "" }, wantErr: "category"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			product := fakeProduct()
			tt.mutate(&product)

			_, err := suite.repo.AddProduct(t.Context(), product)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func (suite *catalogRepositorySuite) TestGetProduct_NotFound() {
	_, err := suite.repo.GetProduct(suite.T().Context(), 99)
	suite.Require().ErrorIs(err, repository.ErrNotFound)
}

func (suite *catalogRepositorySuite) TestSearchProducts() {
	t := suite.T()
	ctx := t.Context()

	seed := func(name, description, category string) domain.Product {
		product := fakeProduct()
		product.Name = name
		product.Description = description
		product.Category = category

		added, err := suite.repo.AddProduct(ctx, product)
		require.NoError(t, err)
		return added
	}

	keyboard := seed("Mechanical Keyboard", "tenkeyless with brown switches", "peripherals")
	mouse := seed("Wireless Mouse", "ergonomic shape", "peripherals")
	desk := seed("Standing Desk", "includes keyboard tray", "furniture")

	tests := []struct {
		name     string
		term     string
		category string
		wantIDs  []int64
	}{
		{name: "by name", term: "mouse", wantIDs: []int64{mouse.ID}},
		{name: "matches description too", term: "keyboard", wantIDs: []int64{keyboard.ID, desk.ID}},
		{name: "category narrows", term: "keyboard", category: "peripherals", wantIDs: []int64{keyboard.ID}},
		{name: "case insensitive", term: "MECHANICAL", wantIDs: []int64{keyboard.ID}},
		{name: "no match", term: "telescope", wantIDs: nil},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			results, err := suite.repo.SearchProducts(t.Context(), tt.term, tt.category)
			require.NoError(t, err)

			gotIDs := make([]int64, 0, len(results))
			for _, p := range results {
				gotIDs = append(gotIDs, p.ID)
			}

			if tt.wantIDs == nil {
				assert.Empty(t, gotIDs)
			} else {
				assert.Equal(t, tt.wantIDs, gotIDs)
			}
		})
	}
}

func (suite *catalogRepositorySuite) TestDecrementStock() {
	t := suite.T()
	ctx := t.Context()

	product := fakeProduct()
	product.Stock = 5
	added, err := suite.repo.AddProduct(ctx, product)
	require.NoError(t, err)

	require.NoError(t, suite.repo.DecrementStock(ctx, added.ID, 3))

	got, err := suite.repo.GetProduct(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)

	// exceeding stock fails and leaves the count unchanged
	err = suite.repo.DecrementStock(ctx, added.ID, 3)
	require.ErrorIs(t, err, repository.ErrInsufficientStock)

	got, err = suite.repo.GetProduct(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)

	// draining to zero is fine
	require.NoError(t, suite.repo.DecrementStock(ctx, added.ID, 2))
	got, err = suite.repo.GetProduct(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)

	err = suite.repo.DecrementStock(ctx, 99, 1)
	require.ErrorIs(t, err, repository.ErrNotFound)

	err = suite.repo.DecrementStock(ctx, added.ID, 0)
	require.ErrorContains(t, err, "positive")
}

func (suite *catalogRepositorySuite) TestIncrementStock() {
	t := suite.T()
	ctx := t.Context()

	product := fakeProduct()
	product.Stock = 1
	added, err := suite.repo.AddProduct(ctx, product)
	require.NoError(t, err)

	require.NoError(t, suite.repo.IncrementStock(ctx, added.ID, 4))

	got, err := suite.repo.GetProduct(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)

	err = suite.repo.IncrementStock(ctx, 99, 1)
	require.ErrorIs(t, err, repository.ErrNotFound)

	err = suite.repo.IncrementStock(ctx, added.ID, -1)
	require.ErrorContains(t, err, "positive")
}
