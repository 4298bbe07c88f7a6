package report

import (
	"context"
	"fmt"

	"github.com/example/retail-pos/domain/ledger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	totalSoldQuery = `SELECT COALESCE(SUM(total), 0) FROM sales WHERE status = ?`

	totalItemsQuery = `
SELECT COALESCE(SUM(si.quantity), 0)
FROM sale_items AS si
JOIN sales AS s ON s.id = si.sale_id
WHERE s.status = ?`

	// Products without a cost price contribute nothing.
	totalInvestedQuery = `SELECT COALESCE(SUM(cost_price * quantity), 0) FROM products`

	// Uses the current cost price. Lines of deleted products or products
	// without a cost contribute nothing.
	netProfitQuery = `
SELECT COALESCE(SUM((si.unit_price - p.cost_price) * si.quantity), 0)
FROM sale_items AS si
JOIN sales AS s ON s.id = si.sale_id
LEFT JOIN products AS p ON p.id = si.product_id
WHERE s.status = ?`

	debtorsQuery = `
SELECT c.id AS customer_id,
       c.name AS name,
       COALESCE(c.phone, '') AS phone,
       SUM(s.total) AS debt
FROM sales AS s
JOIN customers AS c ON c.id = s.customer_id
WHERE s.status = ?
GROUP BY c.id, c.name, c.phone
ORDER BY debt DESC, c.name ASC`
)

// Repository runs the read-only reporting queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reporting repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) sum(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).Raw(query, args...).Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total.Round(2), nil
}

// TotalSold returns the sum of PAID sale totals.
func (r *Repository) TotalSold(ctx context.Context) (decimal.Decimal, error) {
	total, err := r.sum(ctx, totalSoldQuery, ledger.StatusPaid)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum paid sales: %w", err)
	}
	return total, nil
}

// TotalItems returns the units sold in PAID sales.
func (r *Repository) TotalItems(ctx context.Context) (int64, error) {
	var items int64
	if err := r.db.WithContext(ctx).Raw(totalItemsQuery, ledger.StatusPaid).Row().Scan(&items); err != nil {
		return 0, fmt.Errorf("failed to count sold items: %w", err)
	}
	return items, nil
}

// TotalInvested returns cost price times current quantity over all products.
func (r *Repository) TotalInvested(ctx context.Context) (decimal.Decimal, error) {
	total, err := r.sum(ctx, totalInvestedQuery)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum invested capital: %w", err)
	}
	return total, nil
}

// NetProfit estimates profit over PAID sale lines using current cost prices.
func (r *Repository) NetProfit(ctx context.Context) (decimal.Decimal, error) {
	total, err := r.sum(ctx, netProfitQuery, ledger.StatusPaid)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to estimate net profit: %w", err)
	}
	return total, nil
}

// TotalPending returns the sum of PENDING sale totals.
func (r *Repository) TotalPending(ctx context.Context) (decimal.Decimal, error) {
	total, err := r.sum(ctx, totalSoldQuery, ledger.StatusPending)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum pending sales: %w", err)
	}
	return total, nil
}

// Debtors returns the customers with PENDING sales, largest debt first.
// Sales whose customer no longer exists are left out.
func (r *Repository) Debtors(ctx context.Context) ([]Debtor, error) {
	var rows []Debtor
	if err := r.db.WithContext(ctx).Raw(debtorsQuery, ledger.StatusPending).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list debtors: %w", err)
	}
	for i := range rows {
		rows[i].Debt = rows[i].Debt.Round(2)
	}
	return rows, nil
}

// Dashboard computes every dashboard figure.
func (r *Repository) Dashboard(ctx context.Context) (Dashboard, error) {
	var (
		d   Dashboard
		err error
	)
	if d.TotalSold, err = r.TotalSold(ctx); err != nil {
		return Dashboard{}, err
	}
	if d.TotalItems, err = r.TotalItems(ctx); err != nil {
		return Dashboard{}, err
	}
	if d.TotalInvested, err = r.TotalInvested(ctx); err != nil {
		return Dashboard{}, err
	}
	if d.NetProfit, err = r.NetProfit(ctx); err != nil {
		return Dashboard{}, err
	}
	if d.TotalPending, err = r.TotalPending(ctx); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}
