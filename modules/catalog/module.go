package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// CatalogModule provides product management services over the shared store.
type CatalogModule struct {
	repo *Repository
}

// Compile-time interface checks.
var _ mono.Module = (*CatalogModule)(nil)
var _ mono.ServiceProviderModule = (*CatalogModule)(nil)

// NewModule creates a new CatalogModule backed by db.
func NewModule(db *gorm.DB) *CatalogModule {
	return &CatalogModule{repo: NewRepository(db)}
}

// Name returns the module name.
func (m *CatalogModule) Name() string {
	return "catalog"
}

// RegisterServices registers request-reply services in the service container.
// The framework prefixes service names with "services.catalog.".
func (m *CatalogModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.createProduct,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.getProduct,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.updateProduct,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.deleteProduct,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.listProducts,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "categories", json.Unmarshal, json.Marshal, m.listCategories,
	); err != nil {
		return fmt.Errorf("failed to register categories service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "movements", json.Unmarshal, json.Marshal, m.listMovements,
	); err != nil {
		return fmt.Errorf("failed to register movements service: %w", err)
	}

	log.Printf("[catalog] Registered services: services.catalog.{create,get,update,delete,list,categories,movements}")
	return nil
}

// Start starts the module. The store is opened and migrated by main.
func (m *CatalogModule) Start(_ context.Context) error {
	log.Println("[catalog] Module started successfully")
	return nil
}

// Stop stops the module.
func (m *CatalogModule) Stop(_ context.Context) error {
	log.Println("[catalog] Module stopped")
	return nil
}
