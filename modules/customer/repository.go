package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/retail-pos/domain/ledger"
	"gorm.io/gorm"
)

// historyQuery summarizes each sale of a customer as "Name xQty, ...".
// Lines of deleted products show as "#<product id>".
const historyQuery = `
SELECT s.id AS sale_id,
       s.total AS total,
       s.created_at AS date,
       s.status AS status,
       COALESCE(GROUP_CONCAT(COALESCE(p.name, '#' || si.product_id) || ' x' || si.quantity, ', '), '') AS summary
FROM sales AS s
LEFT JOIN sale_items AS si ON si.sale_id = s.id
LEFT JOIN products AS p ON p.id = si.product_id
WHERE s.customer_id = ?
GROUP BY s.id
ORDER BY s.created_at DESC, s.id DESC`

// Repository provides access to customer storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new customer repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new customer to the database.
func (r *Repository) Create(ctx context.Context, customer *ledger.Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// FindByID retrieves a customer by its ID.
func (r *Repository) FindByID(ctx context.Context, id uint) (*ledger.Customer, error) {
	var customer ledger.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return &customer, nil
}

// Delete removes a customer row. Sales that reference it are kept.
func (r *Repository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&ledger.Customer{}, "id = ?", id)
	if err := result.Error; err != nil {
		return false, fmt.Errorf("failed to delete customer: %w", err)
	}
	return result.RowsAffected > 0, nil
}

// List returns customers by name. A non-empty search matches a substring of
// the name or the national id.
func (r *Repository) List(ctx context.Context, search string) ([]ledger.Customer, error) {
	q := r.db.WithContext(ctx).Order("name ASC, id ASC")
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("name LIKE ? OR national_id LIKE ?", pattern, pattern)
	}

	var customers []ledger.Customer
	if err := q.Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// PurchaseHistory returns every sale of a customer, newest first.
func (r *Repository) PurchaseHistory(ctx context.Context, customerID uint) ([]Purchase, error) {
	var rows []Purchase
	if err := r.db.WithContext(ctx).Raw(historyQuery, customerID).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load purchase history: %w", err)
	}
	return rows, nil
}
