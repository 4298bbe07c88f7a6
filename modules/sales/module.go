package sales

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/retail-pos/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// SalesModule exposes the transaction engine as services and announces
// committed sales and settlements on the event bus.
type SalesModule struct {
	engine   *Engine
	eventBus mono.EventBus
}

var _ mono.Module = (*SalesModule)(nil)
var _ mono.ServiceProviderModule = (*SalesModule)(nil)
var _ mono.EventEmitterModule = (*SalesModule)(nil)

// NewModule creates a new SalesModule backed by db.
func NewModule(db *gorm.DB) *SalesModule {
	return &SalesModule{engine: NewEngine(db)}
}

func (m *SalesModule) Name() string {
	return "sales"
}

func (m *SalesModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

func (m *SalesModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.SaleCommittedV1.ToBase(),
		events.DebtSettledV1.ToBase(),
	}
}

func (m *SalesModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "commit", json.Unmarshal, json.Marshal, m.commitSale,
	); err != nil {
		return fmt.Errorf("failed to register commit service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "settle", json.Unmarshal, json.Marshal, m.settleDebt,
	); err != nil {
		return fmt.Errorf("failed to register settle service: %w", err)
	}

	log.Printf("[sales] Registered services: commit, settle")
	return nil
}

func (m *SalesModule) Start(_ context.Context) error {
	if m.eventBus == nil {
		log.Println("[sales] Warning: eventBus not set, events will not be published")
	}
	log.Println("[sales] Module started")
	return nil
}

func (m *SalesModule) Stop(_ context.Context) error {
	log.Println("[sales] Module stopped")
	return nil
}
