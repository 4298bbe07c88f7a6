package customer

import (
	"context"
	"errors"
	"time"

	"github.com/example/retail-pos/domain/ledger"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a customer is not found.
	ErrNotFound = errors.New("customer not found")
	// ErrNameRequired is returned when a customer has no name.
	ErrNameRequired = errors.New("name is required")
	// ErrIDRequired is returned when a request carries no customer id.
	ErrIDRequired = errors.New("id is required")
)

// Purchase is one sale of a customer with a one-line summary of its items.
type Purchase struct {
	SaleID  uint              `json:"sale_id"`
	Total   decimal.Decimal   `json:"total"`
	Date    time.Time         `json:"date"`
	Status  ledger.SaleStatus `json:"status"`
	Summary string            `json:"summary"`
}

// CreateCustomerRequest is the request for creating a customer.
type CreateCustomerRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	NationalID string `json:"national_id"`
	Email      string `json:"email"`
}

// CustomerResponse wraps a single customer.
type CustomerResponse struct {
	Customer ledger.Customer `json:"customer"`
}

// GetCustomerRequest is the request for getting a customer.
type GetCustomerRequest struct {
	ID uint `json:"id"`
}

// DeleteCustomerRequest is the request for deleting a customer.
type DeleteCustomerRequest struct {
	ID uint `json:"id"`
}

// DeleteCustomerResponse reports whether a customer row was deleted.
type DeleteCustomerResponse struct {
	ID      uint `json:"id"`
	Deleted bool `json:"deleted"`
}

// ListCustomersRequest is the request for listing customers.
type ListCustomersRequest struct {
	Search string `json:"search,omitempty"`
}

// ListCustomersResponse is the response containing a list of customers.
type ListCustomersResponse struct {
	Customers []ledger.Customer `json:"customers"`
	Total     int               `json:"total"`
}

// HistoryRequest is the request for a customer's purchase history.
type HistoryRequest struct {
	CustomerID uint `json:"customer_id"`
}

// HistoryResponse lists a customer's sales, newest first.
type HistoryResponse struct {
	CustomerID uint       `json:"customer_id"`
	Purchases  []Purchase `json:"purchases"`
}

// CustomerPort defines the interface for customer operations.
type CustomerPort interface {
	CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*ledger.Customer, error)
	GetCustomer(ctx context.Context, id uint) (*ledger.Customer, error)
	DeleteCustomer(ctx context.Context, id uint) (bool, error)
	ListCustomers(ctx context.Context, search string) (*ListCustomersResponse, error)
	PurchaseHistory(ctx context.Context, customerID uint) ([]Purchase, error)
}
