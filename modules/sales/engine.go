package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/retail-pos/domain/ledger"
	"github.com/example/retail-pos/modules/catalog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrEmptyCart is returned when a sale is committed without lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCustomerRequired is returned when no customer is selected.
	ErrCustomerRequired = errors.New("customer is required")
	// ErrProductRequired is returned for a cart line without a product.
	ErrProductRequired = errors.New("product is required")
	// ErrInvalidQuantity is returned for cart lines with quantity <= 0.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrInvalidPrice is returned for cart lines with a negative price.
	ErrInvalidPrice = errors.New("price must be non-negative")
	// ErrCommitFailed wraps storage failures that rolled a sale back.
	ErrCommitFailed = errors.New("sale commit failed")
)

// Receipt describes a committed sale.
type Receipt struct {
	SaleID     uint              `json:"sale_id"`
	CustomerID uint              `json:"customer_id"`
	Total      decimal.Decimal   `json:"total"`
	Status     ledger.SaleStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	Items      []CartEntry       `json:"items"`
}

// Settlement describes a debt settlement.
type Settlement struct {
	CustomerID   uint            `json:"customer_id"`
	SalesSettled int64           `json:"sales_settled"`
	Amount       decimal.Decimal `json:"amount"`
}

// Engine turns carts into persisted sales and settles store credit.
type Engine struct {
	db  *gorm.DB
	now func() time.Time
}

// NewEngine creates an engine writing to db.
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db, now: time.Now}
}

// CommitSale persists the cart as one sale with its lines and takes the
// sold quantities out of stock, all in one transaction. Credit sales are
// stored PENDING. The total comes from the prices captured in the cart.
// Stock is decremented without checking availability.
func (e *Engine) CommitSale(ctx context.Context, customerID uint, cart *Cart, credit bool) (Receipt, error) {
	if cart == nil || cart.IsEmpty() {
		return Receipt{}, ErrEmptyCart
	}
	if customerID == 0 {
		return Receipt{}, ErrCustomerRequired
	}

	entries := cart.Entries()
	for _, entry := range entries {
		if entry.Quantity <= 0 {
			return Receipt{}, ErrInvalidQuantity
		}
		if entry.UnitPrice.IsNegative() {
			return Receipt{}, ErrInvalidPrice
		}
	}

	status := ledger.StatusPaid
	if credit {
		status = ledger.StatusPending
	}
	sale := ledger.Sale{
		CustomerID: &customerID,
		Total:      cart.Total(),
		Status:     status,
		CreatedAt:  e.now(),
	}

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sale).Error; err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}

		stock := catalog.NewRepository(tx)
		for _, entry := range entries {
			item := ledger.SaleItem{
				SaleID:    sale.ID,
				ProductID: entry.ProductID,
				Quantity:  entry.Quantity,
				UnitPrice: entry.UnitPrice,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to insert sale item for product %d: %w", entry.ProductID, err)
			}
			if err := stock.AdjustStock(ctx, entry.ProductID, -entry.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}

	return Receipt{
		SaleID:     sale.ID,
		CustomerID: customerID,
		Total:      sale.Total,
		Status:     sale.Status,
		CreatedAt:  sale.CreatedAt,
		Items:      entries,
	}, nil
}

// SettleDebt marks every PENDING sale of the customer as PAID and reports
// how many sales and how much money were settled. Settling a customer with
// nothing pending is a no-op.
func (e *Engine) SettleDebt(ctx context.Context, customerID uint) (Settlement, error) {
	if customerID == 0 {
		return Settlement{}, ErrCustomerRequired
	}

	result := Settlement{CustomerID: customerID, Amount: decimal.Zero}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pending := tx.Model(&ledger.Sale{}).Where("customer_id = ? AND status = ?", customerID, ledger.StatusPending)

		var amount decimal.Decimal
		if err := pending.Session(&gorm.Session{}).
			Select("COALESCE(SUM(total), 0)").
			Row().Scan(&amount); err != nil {
			return fmt.Errorf("failed to sum pending sales: %w", err)
		}

		updated := pending.Session(&gorm.Session{}).Update("status", ledger.StatusPaid)
		if err := updated.Error; err != nil {
			return fmt.Errorf("failed to settle pending sales: %w", err)
		}

		result.SalesSettled = updated.RowsAffected
		result.Amount = amount.Round(2)
		return nil
	})
	if err != nil {
		return Settlement{}, err
	}
	return result, nil
}
