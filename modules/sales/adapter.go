package sales

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// salesAdapter implements SalesPort over the sales module services.
type salesAdapter struct {
	container mono.ServiceContainer
}

// NewSalesAdapter creates a new adapter for sales services.
func NewSalesAdapter(container mono.ServiceContainer) SalesPort {
	if container == nil {
		panic("sales adapter requires non-nil ServiceContainer")
	}
	return &salesAdapter{container: container}
}

// CommitSale commits a cart via the commit service.
func (a *salesAdapter) CommitSale(ctx context.Context, req *CommitSaleRequest) (*CommitSaleResponse, error) {
	var resp CommitSaleResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"commit",
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("commit service call failed: %w", err)
	}
	return &resp, nil
}

// SettleDebt settles a customer's pending sales via the settle service.
func (a *salesAdapter) SettleDebt(ctx context.Context, customerID uint) (*Settlement, error) {
	req := SettleDebtRequest{CustomerID: customerID}
	var resp SettleDebtResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"settle",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("settle service call failed: %w", err)
	}
	return &resp.Settlement, nil
}
