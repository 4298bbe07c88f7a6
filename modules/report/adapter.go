package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

type reportAdapter struct {
	container mono.ServiceContainer
}

// NewReportAdapter creates a new adapter for report services.
func NewReportAdapter(container mono.ServiceContainer) ReportPort {
	if container == nil {
		panic("report adapter requires non-nil ServiceContainer")
	}
	return &reportAdapter{container: container}
}

func (a *reportAdapter) Dashboard(ctx context.Context) (*Dashboard, error) {
	var resp DashboardResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "dashboard", json.Marshal, json.Unmarshal, &DashboardRequest{}, &resp,
	); err != nil {
		return nil, fmt.Errorf("dashboard service call failed: %w", err)
	}
	return &resp.Dashboard, nil
}

func (a *reportAdapter) Debtors(ctx context.Context) (*DebtorsResponse, error) {
	var resp DebtorsResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "debtors", json.Marshal, json.Unmarshal, &DebtorsRequest{}, &resp,
	); err != nil {
		return nil, fmt.Errorf("debtors service call failed: %w", err)
	}
	return &resp, nil
}
