package sales

import "context"

// CommitSaleRequest is the request for committing a cart as a sale.
type CommitSaleRequest struct {
	CustomerID uint        `json:"customer_id"`
	Items      []CartEntry `json:"items"`
	Credit     bool        `json:"credit"`
}

// CommitSaleResponse reports the outcome of a commit. Storage failures are
// reported with Committed=false and a message instead of an error.
type CommitSaleResponse struct {
	Committed bool     `json:"committed"`
	Receipt   *Receipt `json:"receipt,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// SettleDebtRequest is the request for settling a customer's debt.
type SettleDebtRequest struct {
	CustomerID uint `json:"customer_id"`
}

// SettleDebtResponse is the response after settling a customer's debt.
type SettleDebtResponse struct {
	Settlement
}

// SalesPort defines the interface for sales operations.
type SalesPort interface {
	CommitSale(ctx context.Context, req *CommitSaleRequest) (*CommitSaleResponse, error)
	SettleDebt(ctx context.Context, customerID uint) (*Settlement, error)
}
