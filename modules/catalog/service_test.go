package catalog

import (
	"context"
	"testing"

	"github.com/example/retail-pos/store/storetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModule_Name(t *testing.T) {
	m := NewModule(storetest.Open(t))
	assert.Equal(t, "catalog", m.Name())
}

func TestModule_createProduct(t *testing.T) {
	m := NewModule(storetest.Open(t))
	ctx := context.Background()

	tests := []struct {
		name    string
		input   ProductInput
		wantErr error
	}{
		{
			name:  "valid product",
			input: ProductInput{Name: "Fone", SalePrice: decimal.RequireFromString("49.90"), Quantity: 4},
		},
		{
			name:    "missing name",
			input:   ProductInput{SalePrice: decimal.RequireFromString("1")},
			wantErr: ErrNameRequired,
		},
		{
			name:    "negative sale price",
			input:   ProductInput{Name: "X", SalePrice: decimal.RequireFromString("-1")},
			wantErr: ErrInvalidPrice,
		},
		{
			name: "negative cost price",
			input: ProductInput{
				Name:      "X",
				SalePrice: decimal.RequireFromString("1"),
				CostPrice: decimal.NewNullDecimal(decimal.RequireFromString("-0.01")),
			},
			wantErr: ErrInvalidPrice,
		},
		{
			name:  "negative quantity is a stock correction",
			input: ProductInput{Name: "Y", SalePrice: decimal.Zero, Quantity: -2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := m.createProduct(ctx, CreateProductRequest{ProductInput: tt.input}, nil)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, resp.Product.ID)
			assert.True(t, resp.Product.Active, "products are active unless stated otherwise")
		})
	}
}

func TestModule_updateAndDeleteMissing(t *testing.T) {
	m := NewModule(storetest.Open(t))
	ctx := context.Background()

	upd, err := m.updateProduct(ctx, UpdateProductRequest{
		ID:           42,
		ProductInput: ProductInput{Name: "Fantasma", SalePrice: decimal.RequireFromString("1")},
	}, nil)
	require.NoError(t, err)
	assert.False(t, upd.Updated)

	del, err := m.deleteProduct(ctx, DeleteProductRequest{ID: 42}, nil)
	require.NoError(t, err)
	assert.False(t, del.Deleted)

	_, err = m.deleteProduct(ctx, DeleteProductRequest{}, nil)
	assert.ErrorIs(t, err, ErrIDRequired)
}

func TestModule_updateProduct(t *testing.T) {
	m := NewModule(storetest.Open(t))
	ctx := context.Background()

	created, err := m.createProduct(ctx, CreateProductRequest{ProductInput: ProductInput{
		Name: "Mouse", SalePrice: decimal.RequireFromString("30"), Quantity: 3,
	}}, nil)
	require.NoError(t, err)

	inactive := false
	upd, err := m.updateProduct(ctx, UpdateProductRequest{
		ID: created.Product.ID,
		ProductInput: ProductInput{
			Name: "Mouse sem fio", SalePrice: decimal.RequireFromString("35"), Quantity: 8, Active: &inactive,
		},
	}, nil)
	require.NoError(t, err)
	assert.True(t, upd.Updated)

	got, err := m.getProduct(ctx, GetProductRequest{ID: created.Product.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Mouse sem fio", got.Product.Name)
	assert.Equal(t, 8, got.Product.Quantity)
	assert.False(t, got.Product.Active)

	_, err = m.updateProduct(ctx, UpdateProductRequest{ID: created.Product.ID}, nil)
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestModule_listProducts(t *testing.T) {
	m := NewModule(storetest.Open(t))
	ctx := context.Background()

	for _, name := range []string{"Beta", "Alfa"} {
		_, err := m.createProduct(ctx, CreateProductRequest{ProductInput: ProductInput{
			Name: name, Category: "Geral", SalePrice: decimal.RequireFromString("1"),
		}}, nil)
		require.NoError(t, err)
	}

	resp, err := m.listProducts(ctx, ListProductsRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "Alfa", resp.Products[0].Name)

	empty, err := m.listProducts(ctx, ListProductsRequest{Filter: Filter{Search: "zzz"}}, nil)
	require.NoError(t, err)
	assert.NotNil(t, empty.Products)
	assert.Zero(t, empty.Total)

	_, err = m.listProducts(ctx, ListProductsRequest{Filter: Filter{Sort: "random"}}, nil)
	assert.Error(t, err)

	cats, err := m.listCategories(ctx, CategoriesRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Geral"}, cats.Categories)
}

func TestModule_listMovements(t *testing.T) {
	m := NewModule(storetest.Open(t))
	ctx := context.Background()

	_, err := m.listMovements(ctx, MovementsRequest{}, nil)
	assert.ErrorIs(t, err, ErrIDRequired)

	resp, err := m.listMovements(ctx, MovementsRequest{ProductID: 7}, nil)
	require.NoError(t, err)
	assert.Empty(t, resp.Movements)
	assert.NotNil(t, resp.Movements)
}
