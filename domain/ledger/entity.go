// Package ledger defines the persisted entities of the point of sale:
// products, customers, sales and sale line items.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus is the payment state of a sale.
type SaleStatus string

const (
	// StatusPaid marks a sale paid at the counter or a settled credit sale.
	StatusPaid SaleStatus = "PAID"
	// StatusPending marks a store-credit ("fiado") sale not yet settled.
	StatusPending SaleStatus = "PENDING"
)

// Valid reports whether s is a known status.
func (s SaleStatus) Valid() bool {
	return s == StatusPaid || s == StatusPending
}

// LowStockThreshold is the highest quantity still considered low stock.
const LowStockThreshold = 5

// Product is a catalog item.
type Product struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	Name        string              `gorm:"size:255;not null" json:"name"`
	Category    string              `gorm:"size:100;index" json:"category"`
	SalePrice   decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"sale_price"`
	CostPrice   decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"cost_price"`
	Quantity    int                 `gorm:"not null;default:0" json:"quantity"`
	Active      bool                `gorm:"not null" json:"active"`
	Barcode     string              `gorm:"size:64" json:"barcode"`
	Photo       string              `gorm:"size:500" json:"photo"`
	Description string              `gorm:"size:1000" json:"description"`
	Supplier    string              `gorm:"size:255" json:"supplier"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// TableName returns the table name for Product model.
func (Product) TableName() string {
	return "products"
}

// Customer is a buyer that sales may reference.
type Customer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Phone      string    `gorm:"size:50" json:"phone"`
	NationalID string    `gorm:"size:30" json:"national_id"`
	Email      string    `gorm:"size:255" json:"email"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the table name for Customer model.
func (Customer) TableName() string {
	return "customers"
}

// Sale is one committed checkout. Total and CreatedAt never change after
// creation; Status only moves from PENDING to PAID.
type Sale struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	CustomerID *uint           `gorm:"index" json:"customer_id"`
	Total      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Status     SaleStatus      `gorm:"size:10;not null;default:PAID;index" json:"status"`
	CreatedAt  time.Time       `gorm:"index" json:"created_at"`
}

// TableName returns the table name for Sale model.
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is a line of a sale. UnitPrice is the price captured when the
// product was added to the cart.
type SaleItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	SaleID    uint            `gorm:"not null;index" json:"sale_id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
}

// TableName returns the table name for SaleItem model.
func (SaleItem) TableName() string {
	return "sale_items"
}

// Subtotal returns quantity times unit price.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Models lists every entity in migration order.
func Models() []any {
	return []any{&Product{}, &Customer{}, &Sale{}, &SaleItem{}}
}
