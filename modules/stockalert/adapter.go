package stockalert

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AlertPort defines the interface for reading stock alerts.
type AlertPort interface {
	Recent(ctx context.Context, limit int) ([]Alert, error)
}

type alertAdapter struct {
	container mono.ServiceContainer
}

// NewAlertAdapter creates a new adapter for stock alert services.
func NewAlertAdapter(container mono.ServiceContainer) AlertPort {
	if container == nil {
		panic("stockalert adapter requires non-nil ServiceContainer")
	}
	return &alertAdapter{container: container}
}

func (a *alertAdapter) Recent(ctx context.Context, limit int) ([]Alert, error) {
	req := RecentRequest{Limit: limit}
	var resp RecentResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "recent", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("recent service call failed: %w", err)
	}
	return resp.Alerts, nil
}
