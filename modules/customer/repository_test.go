package customer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/example/retail-pos/domain/ledger"
	"github.com/example/retail-pos/store/storetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedSale(t *testing.T, db *gorm.DB, customerID uint, status ledger.SaleStatus, at time.Time, items ...ledger.SaleItem) ledger.Sale {
	t.Helper()

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	sale := ledger.Sale{CustomerID: &customerID, Total: total, Status: status, CreatedAt: at}
	require.NoError(t, db.Create(&sale).Error)
	for i := range items {
		items[i].SaleID = sale.ID
		require.NoError(t, db.Create(&items[i]).Error)
	}
	return sale
}

func TestRepository_CreateFindDelete(t *testing.T) {
	repo := NewRepository(storetest.Open(t))
	ctx := context.Background()

	c := &ledger.Customer{Name: "Maria", Phone: "555-0101", NationalID: "123.456.789-00"}
	require.NoError(t, repo.Create(ctx, c))

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria", found.Name)
	assert.Equal(t, "555-0101", found.Phone)

	deleted, err := repo.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err = repo.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRepository_ListSearch(t *testing.T) {
	repo := NewRepository(storetest.Open(t))
	ctx := context.Background()

	for _, c := range []*ledger.Customer{
		{Name: "Pedro", NationalID: "111"},
		{Name: "Ana", NationalID: "222"},
		{Name: "Mariana", NationalID: "333"},
	} {
		require.NoError(t, repo.Create(ctx, c))
	}

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Ana", all[0].Name)

	byName, err := repo.List(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, byName, 2)
	assert.Equal(t, "Ana", byName[0].Name)
	assert.Equal(t, "Mariana", byName[1].Name)

	byDocument, err := repo.List(ctx, "33")
	require.NoError(t, err)
	require.Len(t, byDocument, 1)
	assert.Equal(t, "Mariana", byDocument[0].Name)
}

func TestRepository_PurchaseHistory(t *testing.T) {
	db := storetest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	cabo := ledger.Product{Name: "Cabo USB", SalePrice: decimal.RequireFromString("15"), Active: true}
	require.NoError(t, db.Create(&cabo).Error)
	customer := ledger.Customer{Name: "Maria"}
	require.NoError(t, db.Create(&customer).Error)
	other := ledger.Customer{Name: "Outro"}
	require.NoError(t, db.Create(&other).Error)

	base := time.Date(2024, 2, 10, 14, 0, 0, 0, time.UTC)
	older := seedSale(t, db, customer.ID, ledger.StatusPaid, base,
		ledger.SaleItem{ProductID: cabo.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("15")},
		ledger.SaleItem{ProductID: 99, Quantity: 1, UnitPrice: decimal.RequireFromString("4.5")},
	)
	newer := seedSale(t, db, customer.ID, ledger.StatusPending, base.Add(24*time.Hour),
		ledger.SaleItem{ProductID: cabo.ID, Quantity: 1, UnitPrice: decimal.RequireFromString("15")},
	)
	seedSale(t, db, other.ID, ledger.StatusPaid, base,
		ledger.SaleItem{ProductID: cabo.ID, Quantity: 5, UnitPrice: decimal.RequireFromString("15")},
	)

	history, err := repo.PurchaseHistory(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, newer.ID, history[0].SaleID)
	assert.Equal(t, ledger.StatusPending, history[0].Status)
	assert.Equal(t, "Cabo USB x1", history[0].Summary)
	assert.True(t, history[0].Date.Equal(base.Add(24*time.Hour)))

	assert.Equal(t, older.ID, history[1].SaleID)
	assert.True(t, history[1].Total.Equal(decimal.RequireFromString("34.5")))
	assert.ElementsMatch(t, []string{"Cabo USB x2", "#99 x1"}, strings.Split(history[1].Summary, ", "),
		"deleted products are shown by id")

	none, err := repo.PurchaseHistory(ctx, 12345)
	require.NoError(t, err)
	assert.Empty(t, none)
}
