package customer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// CustomerModule provides customer management services.
type CustomerModule struct {
	repo *Repository
}

// Compile-time interface checks.
var _ mono.Module = (*CustomerModule)(nil)
var _ mono.ServiceProviderModule = (*CustomerModule)(nil)

// NewModule creates a new CustomerModule backed by db.
func NewModule(db *gorm.DB) *CustomerModule {
	return &CustomerModule{repo: NewRepository(db)}
}

// Name returns the module name.
func (m *CustomerModule) Name() string {
	return "customer"
}

// RegisterServices registers request-reply services in the service container.
func (m *CustomerModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.createCustomer,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.getCustomer,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.deleteCustomer,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.listCustomers,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "history", json.Unmarshal, json.Marshal, m.purchaseHistory,
	); err != nil {
		return fmt.Errorf("failed to register history service: %w", err)
	}

	log.Printf("[customer] Registered services: services.customer.{create,get,delete,list,history}")
	return nil
}

// Start starts the module.
func (m *CustomerModule) Start(_ context.Context) error {
	log.Println("[customer] Module started successfully")
	return nil
}

// Stop stops the module.
func (m *CustomerModule) Stop(_ context.Context) error {
	log.Println("[customer] Module stopped")
	return nil
}
