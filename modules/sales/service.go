package sales

import (
	"context"
	"log"
	"time"

	"github.com/example/retail-pos/events"
	"github.com/example/retail-pos/metrics"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// commitSale handles the sales.commit service request.
func (m *SalesModule) commitSale(ctx context.Context, req CommitSaleRequest, _ *mono.Msg) (CommitSaleResponse, error) {
	if len(req.Items) == 0 {
		return CommitSaleResponse{}, ErrEmptyCart
	}
	if req.CustomerID == 0 {
		return CommitSaleResponse{}, ErrCustomerRequired
	}
	cart, err := NewCart(req.Items...)
	if err != nil {
		return CommitSaleResponse{}, err
	}

	receipt, err := m.engine.CommitSale(ctx, req.CustomerID, cart, req.Credit)
	if err != nil {
		metrics.SaleCommitFailures.Inc()
		log.Printf("[sales] Sale rolled back for customer %d: %v", req.CustomerID, err)
		return CommitSaleResponse{Committed: false, Error: err.Error()}, nil
	}

	metrics.ObserveSale(string(receipt.Status), receipt.Total)
	log.Printf("[sales] Sale %d committed: customer=%d total=%s status=%s",
		receipt.SaleID, receipt.CustomerID, receipt.Total.StringFixed(2), receipt.Status)

	m.publishSaleCommitted(receipt)
	return CommitSaleResponse{Committed: true, Receipt: &receipt}, nil
}

// settleDebt handles the sales.settle service request.
func (m *SalesModule) settleDebt(ctx context.Context, req SettleDebtRequest, _ *mono.Msg) (SettleDebtResponse, error) {
	settlement, err := m.engine.SettleDebt(ctx, req.CustomerID)
	if err != nil {
		return SettleDebtResponse{}, err
	}

	if settlement.SalesSettled > 0 {
		metrics.DebtSettlements.Add(float64(settlement.SalesSettled))
		log.Printf("[sales] Debt settled: customer=%d sales=%d amount=%s",
			settlement.CustomerID, settlement.SalesSettled, settlement.Amount.StringFixed(2))
		m.publishDebtSettled(settlement)
	}
	return SettleDebtResponse{Settlement: settlement}, nil
}

func (m *SalesModule) publishSaleCommitted(receipt Receipt) {
	if m.eventBus == nil {
		return
	}

	items := make([]events.SoldItem, 0, len(receipt.Items))
	for _, it := range receipt.Items {
		items = append(items, events.SoldItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	event := events.SaleCommittedEvent{
		EventID:     uuid.New().String(),
		SaleID:      receipt.SaleID,
		CustomerID:  receipt.CustomerID,
		Total:       receipt.Total,
		Status:      string(receipt.Status),
		Items:       items,
		CommittedAt: receipt.CreatedAt,
	}
	if err := events.SaleCommittedV1.Publish(m.eventBus, event, nil); err != nil {
		// Event publishing is best-effort; log but don't fail the operation
		log.Printf("[sales] Warning: failed to publish SaleCommitted event for sale %d: %v", receipt.SaleID, err)
	}
}

func (m *SalesModule) publishDebtSettled(s Settlement) {
	if m.eventBus == nil {
		return
	}

	event := events.DebtSettledEvent{
		EventID:      uuid.New().String(),
		CustomerID:   s.CustomerID,
		SalesSettled: s.SalesSettled,
		Amount:       s.Amount,
		SettledAt:    time.Now(),
	}
	if err := events.DebtSettledV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[sales] Warning: failed to publish DebtSettled event for customer %d: %v", s.CustomerID, err)
	}
}
