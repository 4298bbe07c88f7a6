package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// ReportModule serves read-only aggregates over the ledger.
type ReportModule struct {
	repo    *Repository
	sfGroup singleflight.Group // Collapses concurrent dashboard refreshes
}

var _ mono.Module = (*ReportModule)(nil)
var _ mono.ServiceProviderModule = (*ReportModule)(nil)

// NewModule creates a new ReportModule reading from db.
func NewModule(db *gorm.DB) *ReportModule {
	return &ReportModule{repo: NewRepository(db)}
}

func (m *ReportModule) Name() string {
	return "report"
}

func (m *ReportModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "dashboard", json.Unmarshal, json.Marshal, m.dashboard,
	); err != nil {
		return fmt.Errorf("failed to register dashboard service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "debtors", json.Unmarshal, json.Marshal, m.debtors,
	); err != nil {
		return fmt.Errorf("failed to register debtors service: %w", err)
	}

	log.Printf("[report] Registered services: services.report.{dashboard,debtors}")
	return nil
}

func (m *ReportModule) Start(_ context.Context) error {
	log.Println("[report] Module started")
	return nil
}

func (m *ReportModule) Stop(_ context.Context) error {
	log.Println("[report] Module stopped")
	return nil
}

func (m *ReportModule) dashboard(ctx context.Context, _ DashboardRequest, _ *mono.Msg) (DashboardResponse, error) {
	// The flight outlives any single caller.
	shared := context.WithoutCancel(ctx)
	val, err, joined := m.sfGroup.Do("dashboard", func() (any, error) {
		return m.repo.Dashboard(shared)
	})
	if err != nil {
		return DashboardResponse{}, err
	}
	if joined {
		log.Println("[report] Dashboard result shared with a concurrent request")
	}
	return DashboardResponse{Dashboard: val.(Dashboard)}, nil
}

func (m *ReportModule) debtors(ctx context.Context, _ DebtorsRequest, _ *mono.Msg) (DebtorsResponse, error) {
	rows, err := m.repo.Debtors(ctx)
	if err != nil {
		return DebtorsResponse{}, err
	}

	total := decimal.Zero
	for _, d := range rows {
		total = total.Add(d.Debt)
	}
	if rows == nil {
		rows = []Debtor{}
	}
	return DebtorsResponse{Debtors: rows, Total: total}, nil
}
