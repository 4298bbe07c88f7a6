package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
	"github.com/shopspring/decimal"
)

// SoldItem is a product quantity taken out of stock by a sale.
type SoldItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// SaleCommittedEvent is emitted after a sale and its stock decrements are
// persisted.
type SaleCommittedEvent struct {
	EventID     string          `json:"event_id"`
	SaleID      uint            `json:"sale_id"`
	CustomerID  uint            `json:"customer_id"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	Items       []SoldItem      `json:"items"`
	CommittedAt time.Time       `json:"committed_at"`
}

// SaleCommittedV1 is the typed event definition for committed sales.
// Subject: events.sales.v1.sale-committed
var SaleCommittedV1 = helper.EventDefinition[SaleCommittedEvent](
	"sales", "SaleCommitted", "v1",
)

// DebtSettledEvent is emitted when a customer's pending sales are paid.
type DebtSettledEvent struct {
	EventID      string          `json:"event_id"`
	CustomerID   uint            `json:"customer_id"`
	SalesSettled int64           `json:"sales_settled"`
	Amount       decimal.Decimal `json:"amount"`
	SettledAt    time.Time       `json:"settled_at"`
}

// DebtSettledV1 is the typed event definition for debt settlements.
// Subject: events.sales.v1.debt-settled
var DebtSettledV1 = helper.EventDefinition[DebtSettledEvent](
	"sales", "DebtSettled", "v1",
)
