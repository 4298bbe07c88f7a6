// Package stockalert watches committed sales and flags products that ran
// low or out of stock.
package stockalert

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/retail-pos/domain/ledger"
	"github.com/example/retail-pos/events"
	"github.com/example/retail-pos/modules/catalog"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// Capacity is the number of alerts kept in memory.
const Capacity = 100

// Alert levels.
const (
	LevelLowStock   = "low_stock"
	LevelOutOfStock = "out_of_stock"
)

// Alert is raised for a product whose stock dropped to the low-stock
// threshold or below after a sale.
type Alert struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Level     string    `json:"level"`
	SaleID    uint      `json:"sale_id"`
	RaisedAt  time.Time `json:"raised_at"`
}

// RecentRequest is the request for recent alerts.
type RecentRequest struct {
	Limit int `json:"limit,omitempty"`
}

// RecentResponse lists alerts newest first.
type RecentResponse struct {
	Alerts []Alert `json:"alerts"`
}

// AlertModule consumes SaleCommitted events. It only reads the store.
type AlertModule struct {
	products *catalog.Repository

	mu     sync.RWMutex
	alerts []Alert
	next   int
	full   bool
}

var _ mono.Module = (*AlertModule)(nil)
var _ mono.EventConsumerModule = (*AlertModule)(nil)
var _ mono.ServiceProviderModule = (*AlertModule)(nil)

// NewModule creates a new AlertModule reading product stock from db.
func NewModule(db *gorm.DB) *AlertModule {
	return &AlertModule{
		products: catalog.NewRepository(db),
		alerts:   make([]Alert, Capacity),
	}
}

func (m *AlertModule) Name() string {
	return "stockalert"
}

func (m *AlertModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.SaleCommittedV1, m.handleSaleCommitted, m); err != nil {
		return fmt.Errorf("failed to register SaleCommitted consumer: %w", err)
	}

	log.Printf("[stockalert] Registered event consumers: SaleCommitted")
	return nil
}

func (m *AlertModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "recent", json.Unmarshal, json.Marshal, m.recent,
	); err != nil {
		return fmt.Errorf("failed to register recent service: %w", err)
	}
	return nil
}

func (m *AlertModule) handleSaleCommitted(ctx context.Context, event events.SaleCommittedEvent, _ *mono.Msg) error {
	ids := make([]uint, 0, len(event.Items))
	for _, it := range event.Items {
		ids = append(ids, it.ProductID)
	}

	products, err := m.products.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load products of sale %d: %w", event.SaleID, err)
	}

	now := time.Now()
	for _, p := range products {
		level, ok := levelFor(p.Quantity)
		if !ok {
			continue
		}
		log.Printf("[stockalert] %s: product %d %q has %d left", level, p.ID, p.Name, p.Quantity)
		m.push(Alert{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			Level:     level,
			SaleID:    event.SaleID,
			RaisedAt:  now,
		})
	}
	return nil
}

func levelFor(quantity int) (string, bool) {
	switch {
	case quantity <= 0:
		return LevelOutOfStock, true
	case quantity <= ledger.LowStockThreshold:
		return LevelLowStock, true
	}
	return "", false
}

func (m *AlertModule) push(a Alert) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.alerts[m.next] = a
	m.next = (m.next + 1) % len(m.alerts)
	if m.next == 0 {
		m.full = true
	}
}

// Recent returns up to limit alerts, newest first. limit <= 0 returns all.
func (m *AlertModule) Recent(limit int) []Alert {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := m.next
	if m.full {
		n = len(m.alerts)
	}
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]Alert, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (m.next - i + len(m.alerts)) % len(m.alerts)
		out = append(out, m.alerts[idx])
	}
	return out
}

func (m *AlertModule) recent(_ context.Context, req RecentRequest, _ *mono.Msg) (RecentResponse, error) {
	return RecentResponse{Alerts: m.Recent(req.Limit)}, nil
}

func (m *AlertModule) Start(_ context.Context) error {
	log.Println("[stockalert] Module started - listening for sale events")
	return nil
}

func (m *AlertModule) Stop(_ context.Context) error {
	log.Println("[stockalert] Module stopped")
	return nil
}
