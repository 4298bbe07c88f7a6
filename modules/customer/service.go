package customer

import (
	"context"
	"fmt"
	"log"

	"github.com/example/retail-pos/domain/ledger"
	"github.com/go-monolith/mono"
)

// createCustomer handles the customer.create service request.
func (m *CustomerModule) createCustomer(ctx context.Context, req CreateCustomerRequest, _ *mono.Msg) (CustomerResponse, error) {
	if req.Name == "" {
		return CustomerResponse{}, ErrNameRequired
	}

	customer := &ledger.Customer{
		Name:       req.Name,
		Phone:      req.Phone,
		NationalID: req.NationalID,
		Email:      req.Email,
	}
	if err := m.repo.Create(ctx, customer); err != nil {
		return CustomerResponse{}, fmt.Errorf("failed to save customer: %w", err)
	}

	log.Printf("[customer] Customer created: id=%d name=%q", customer.ID, customer.Name)
	return CustomerResponse{Customer: *customer}, nil
}

// getCustomer handles the customer.get service request.
func (m *CustomerModule) getCustomer(ctx context.Context, req GetCustomerRequest, _ *mono.Msg) (CustomerResponse, error) {
	if req.ID == 0 {
		return CustomerResponse{}, ErrIDRequired
	}

	customer, err := m.repo.FindByID(ctx, req.ID)
	if err != nil {
		return CustomerResponse{}, err
	}
	return CustomerResponse{Customer: *customer}, nil
}

// deleteCustomer handles the customer.delete service request.
func (m *CustomerModule) deleteCustomer(ctx context.Context, req DeleteCustomerRequest, _ *mono.Msg) (DeleteCustomerResponse, error) {
	if req.ID == 0 {
		return DeleteCustomerResponse{}, ErrIDRequired
	}

	deleted, err := m.repo.Delete(ctx, req.ID)
	if err != nil {
		return DeleteCustomerResponse{ID: req.ID}, err
	}
	if deleted {
		log.Printf("[customer] Customer deleted: id=%d", req.ID)
	}
	return DeleteCustomerResponse{ID: req.ID, Deleted: deleted}, nil
}

// listCustomers handles the customer.list service request.
func (m *CustomerModule) listCustomers(ctx context.Context, req ListCustomersRequest, _ *mono.Msg) (ListCustomersResponse, error) {
	customers, err := m.repo.List(ctx, req.Search)
	if err != nil {
		return ListCustomersResponse{}, err
	}
	if customers == nil {
		customers = []ledger.Customer{}
	}
	return ListCustomersResponse{Customers: customers, Total: len(customers)}, nil
}

// purchaseHistory handles the customer.history service request.
func (m *CustomerModule) purchaseHistory(ctx context.Context, req HistoryRequest, _ *mono.Msg) (HistoryResponse, error) {
	if req.CustomerID == 0 {
		return HistoryResponse{}, ErrIDRequired
	}

	purchases, err := m.repo.PurchaseHistory(ctx, req.CustomerID)
	if err != nil {
		return HistoryResponse{}, err
	}
	if purchases == nil {
		purchases = []Purchase{}
	}
	return HistoryResponse{CustomerID: req.CustomerID, Purchases: purchases}, nil
}
