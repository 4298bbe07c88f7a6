package report

import (
	"context"
	"testing"
	"time"

	"github.com/example/retail-pos/domain/ledger"
	"github.com/example/retail-pos/modules/sales"
	"github.com/example/retail-pos/store/storetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedSale(t *testing.T, db *gorm.DB, customerID *uint, status ledger.SaleStatus, items ...ledger.SaleItem) {
	t.Helper()

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	sale := ledger.Sale{CustomerID: customerID, Total: total, Status: status, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&sale).Error)
	for i := range items {
		items[i].SaleID = sale.ID
		require.NoError(t, db.Create(&items[i]).Error)
	}
}

func item(productID uint, qty int, unit string) ledger.SaleItem {
	return ledger.SaleItem{ProductID: productID, Quantity: qty, UnitPrice: dec(unit)}
}

func seedLedger(t *testing.T, db *gorm.DB) (maria, jose ledger.Customer) {
	t.Helper()

	a := ledger.Product{Name: "A", SalePrice: dec("10"), CostPrice: decimal.NewNullDecimal(dec("6")), Quantity: 18, Active: true}
	b := ledger.Product{Name: "B", SalePrice: dec("5"), Quantity: 9, Active: true}
	c := ledger.Product{Name: "C", SalePrice: dec("4"), CostPrice: decimal.NewNullDecimal(dec("2.50")), Quantity: 4, Active: true}
	for _, p := range []*ledger.Product{&a, &b, &c} {
		require.NoError(t, db.Create(p).Error)
	}

	maria = ledger.Customer{Name: "Maria", Phone: "555-0101"}
	jose = ledger.Customer{Name: "Jose"}
	require.NoError(t, db.Create(&maria).Error)
	require.NoError(t, db.Create(&jose).Error)
	orphan := uint(77)

	seedSale(t, db, &maria.ID, ledger.StatusPaid, item(a.ID, 2, "10"), item(b.ID, 1, "5"))
	seedSale(t, db, &maria.ID, ledger.StatusPending, item(c.ID, 2, "4"))
	seedSale(t, db, &jose.ID, ledger.StatusPending, item(a.ID, 1, "10"))
	seedSale(t, db, nil, ledger.StatusPaid, item(99, 1, "3"))
	seedSale(t, db, &orphan, ledger.StatusPending, item(a.ID, 1, "1"))
	return maria, jose
}

func TestRepository_Dashboard(t *testing.T) {
	db := storetest.Open(t)
	repo := NewRepository(db)
	seedLedger(t, db)

	d, err := repo.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "28.00", d.TotalSold.StringFixed(2))
	assert.Equal(t, int64(4), d.TotalItems)
	assert.Equal(t, "118.00", d.TotalInvested.StringFixed(2), "products without cost are skipped")
	assert.Equal(t, "8.00", d.NetProfit.StringFixed(2), "lines without a current cost are skipped")
	assert.Equal(t, "19.00", d.TotalPending.StringFixed(2))
}

func TestRepository_DashboardEmpty(t *testing.T) {
	repo := NewRepository(storetest.Open(t))

	d, err := repo.Dashboard(context.Background())
	require.NoError(t, err)
	assert.True(t, d.TotalSold.IsZero())
	assert.Zero(t, d.TotalItems)
	assert.True(t, d.TotalInvested.IsZero())
	assert.True(t, d.NetProfit.IsZero())
	assert.True(t, d.TotalPending.IsZero())
}

func TestRepository_NetProfitFollowsCurrentCost(t *testing.T) {
	db := storetest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	p := ledger.Product{Name: "P", SalePrice: dec("10"), CostPrice: decimal.NewNullDecimal(dec("4")), Active: true}
	require.NoError(t, db.Create(&p).Error)
	seedSale(t, db, nil, ledger.StatusPaid, item(p.ID, 3, "10"))

	profit, err := repo.NetProfit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "18.00", profit.StringFixed(2))

	require.NoError(t, db.Model(&ledger.Product{}).Where("id = ?", p.ID).Update("cost_price", dec("7")).Error)
	profit, err = repo.NetProfit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "9.00", profit.StringFixed(2))
}

func TestRepository_MoneyIsRounded(t *testing.T) {
	db := storetest.Open(t)
	repo := NewRepository(db)

	for _, unit := range []string{"0.1", "0.2"} {
		seedSale(t, db, nil, ledger.StatusPaid, item(1, 1, unit))
	}

	total, err := repo.TotalSold(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.3", total.String())
}

func TestRepository_Debtors(t *testing.T) {
	db := storetest.Open(t)
	repo := NewRepository(db)
	maria, jose := seedLedger(t, db)

	debtors, err := repo.Debtors(context.Background())
	require.NoError(t, err)
	require.Len(t, debtors, 2, "sales of deleted customers are not listed")

	assert.Equal(t, jose.ID, debtors[0].CustomerID)
	assert.Equal(t, "10.00", debtors[0].Debt.StringFixed(2))
	assert.Empty(t, debtors[0].Phone)

	assert.Equal(t, maria.ID, debtors[1].CustomerID)
	assert.Equal(t, "Maria", debtors[1].Name)
	assert.Equal(t, "555-0101", debtors[1].Phone)
	assert.Equal(t, "8.00", debtors[1].Debt.StringFixed(2))
}

func TestRepository_DebtorsTieBreaksOnName(t *testing.T) {
	db := storetest.Open(t)
	repo := NewRepository(db)

	zeca := ledger.Customer{Name: "Zeca"}
	ana := ledger.Customer{Name: "Ana"}
	require.NoError(t, db.Create(&zeca).Error)
	require.NoError(t, db.Create(&ana).Error)
	seedSale(t, db, &zeca.ID, ledger.StatusPending, item(1, 1, "5"))
	seedSale(t, db, &ana.ID, ledger.StatusPending, item(1, 1, "5"))

	debtors, err := repo.Debtors(context.Background())
	require.NoError(t, err)
	require.Len(t, debtors, 2)
	assert.Equal(t, "Ana", debtors[0].Name)
	assert.Equal(t, "Zeca", debtors[1].Name)
}

func TestRepository_DebtorsAfterSettlement(t *testing.T) {
	db := storetest.Open(t)
	repo := NewRepository(db)
	maria, jose := seedLedger(t, db)

	_, err := sales.NewEngine(db).SettleDebt(context.Background(), maria.ID)
	require.NoError(t, err)

	debtors, err := repo.Debtors(context.Background())
	require.NoError(t, err)
	require.Len(t, debtors, 1)
	assert.Equal(t, jose.ID, debtors[0].CustomerID)
}

func TestDashboard_CommitScenario(t *testing.T) {
	db := storetest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	a := ledger.Product{Name: "A", SalePrice: dec("10.00"), Quantity: 10, Active: true}
	b := ledger.Product{Name: "B", SalePrice: dec("5.00"), Quantity: 10, Active: true}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)
	customer := ledger.Customer{Name: "Cliente"}
	require.NoError(t, db.Create(&customer).Error)

	before, err := repo.Dashboard(ctx)
	require.NoError(t, err)

	var cart sales.Cart
	cart.Add(a.ID, a.Name, a.SalePrice)
	cart.Add(a.ID, a.Name, a.SalePrice)
	cart.Add(b.ID, b.Name, b.SalePrice)
	receipt, err := sales.NewEngine(db).CommitSale(ctx, customer.ID, &cart, false)
	require.NoError(t, err)
	assert.Equal(t, "25.00", receipt.Total.StringFixed(2))

	after, err := repo.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, "25.00", after.TotalSold.Sub(before.TotalSold).StringFixed(2))
	assert.Equal(t, int64(3), after.TotalItems-before.TotalItems)
	assert.True(t, after.TotalPending.Equal(before.TotalPending))
}
