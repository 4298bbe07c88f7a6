package customer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/retail-pos/domain/ledger"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// customerAdapter implements CustomerPort over the customer module services.
type customerAdapter struct {
	container mono.ServiceContainer
}

// NewCustomerAdapter creates a new adapter for customer services.
func NewCustomerAdapter(container mono.ServiceContainer) CustomerPort {
	if container == nil {
		panic("customer adapter requires non-nil ServiceContainer")
	}
	return &customerAdapter{container: container}
}

// CreateCustomer creates a customer via the create service.
func (a *customerAdapter) CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*ledger.Customer, error) {
	var resp CustomerResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "create", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("create service call failed: %w", err)
	}
	return &resp.Customer, nil
}

// GetCustomer retrieves a customer by ID via the get service.
func (a *customerAdapter) GetCustomer(ctx context.Context, id uint) (*ledger.Customer, error) {
	req := GetCustomerRequest{ID: id}
	var resp CustomerResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("get service call failed: %w", err)
	}
	return &resp.Customer, nil
}

// DeleteCustomer deletes a customer via the delete service.
func (a *customerAdapter) DeleteCustomer(ctx context.Context, id uint) (bool, error) {
	req := DeleteCustomerRequest{ID: id}
	var resp DeleteCustomerResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "delete", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return false, fmt.Errorf("delete service call failed: %w", err)
	}
	return resp.Deleted, nil
}

// ListCustomers lists customers via the list service.
func (a *customerAdapter) ListCustomers(ctx context.Context, search string) (*ListCustomersResponse, error) {
	req := ListCustomersRequest{Search: search}
	var resp ListCustomersResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("list service call failed: %w", err)
	}
	return &resp, nil
}

// PurchaseHistory lists a customer's sales via the history service.
func (a *customerAdapter) PurchaseHistory(ctx context.Context, customerID uint) ([]Purchase, error) {
	req := HistoryRequest{CustomerID: customerID}
	var resp HistoryResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "history", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("history service call failed: %w", err)
	}
	return resp.Purchases, nil
}
