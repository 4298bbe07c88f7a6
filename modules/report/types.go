package report

import (
	"context"

	"github.com/shopspring/decimal"
)

// Dashboard holds the headline figures of the ledger. Each figure is read
// by its own query.
type Dashboard struct {
	TotalSold     decimal.Decimal `json:"total_sold"`
	TotalItems    int64           `json:"total_items"`
	TotalInvested decimal.Decimal `json:"total_invested"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	TotalPending  decimal.Decimal `json:"total_pending"`
}

// Debtor is a customer with at least one PENDING sale.
type Debtor struct {
	CustomerID uint            `json:"customer_id"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Debt       decimal.Decimal `json:"debt"`
}

// DashboardRequest is the request for dashboard figures.
type DashboardRequest struct{}

// DashboardResponse wraps the dashboard figures.
type DashboardResponse struct {
	Dashboard
}

// DebtorsRequest is the request for the debtors list.
type DebtorsRequest struct{}

// DebtorsResponse lists customers with outstanding store credit.
type DebtorsResponse struct {
	Debtors []Debtor        `json:"debtors"`
	Total   decimal.Decimal `json:"total"`
}

// ReportPort defines the interface for reporting queries.
type ReportPort interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	Debtors(ctx context.Context) (*DebtorsResponse, error)
}
