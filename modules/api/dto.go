package api

import (
	"github.com/example/retail-pos/modules/catalog"
	"github.com/example/retail-pos/modules/customer"
	"github.com/example/retail-pos/modules/sales"
	"github.com/example/retail-pos/modules/stockalert"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// CategoriesResponse is the body of GET /api/v1/products/categories.
type CategoriesResponse = catalog.CategoriesResponse

// MovementsResponse is the body of GET /api/v1/products/:id/movements.
type MovementsResponse = catalog.MovementsResponse

// HistoryResponse is the body of GET /api/v1/customers/:id/history.
type HistoryResponse = customer.HistoryResponse

// CommitSaleRequest is the body of POST /api/v1/sales.
type CommitSaleRequest struct {
	CustomerID uint              `json:"customer_id"`
	Items      []sales.CartEntry `json:"items"`
	Credit     bool              `json:"credit"`
}

// AlertsResponse is the body of GET /api/v1/alerts.
type AlertsResponse struct {
	Alerts []stockalert.Alert `json:"alerts"`
}
