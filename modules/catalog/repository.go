package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/retail-pos/domain/ledger"
	"gorm.io/gorm"
)

// soldJoin attaches the units sold per product to a products query.
const soldJoin = "LEFT JOIN (SELECT product_id, SUM(quantity) AS total_sold FROM sale_items GROUP BY product_id) AS sold ON sold.product_id = products.id"

// Repository provides access to product storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new product repository. db may be a transaction
// handle, in which case every call runs inside that transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new product to the database.
func (r *Repository) Create(ctx context.Context, product *ledger.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// FindByID retrieves a product by its ID.
func (r *Repository) FindByID(ctx context.Context, id uint) (*ledger.Product, error) {
	var product ledger.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// FindByIDs retrieves the products with the given IDs. Unknown IDs are
// skipped.
func (r *Repository) FindByIDs(ctx context.Context, ids []uint) ([]ledger.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []ledger.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return products, nil
}

// Update replaces every editable field of the product with the given ID.
// It reports false when no such product exists.
func (r *Repository) Update(ctx context.Context, id uint, product *ledger.Product) (bool, error) {
	result := r.db.WithContext(ctx).Model(&ledger.Product{}).Where("id = ?", id).Updates(map[string]any{
		"name":        product.Name,
		"category":    product.Category,
		"sale_price":  product.SalePrice,
		"cost_price":  product.CostPrice,
		"quantity":    product.Quantity,
		"active":      product.Active,
		"barcode":     product.Barcode,
		"photo":       product.Photo,
		"description": product.Description,
		"supplier":    product.Supplier,
	})
	if err := result.Error; err != nil {
		return false, fmt.Errorf("failed to update product: %w", err)
	}
	return result.RowsAffected > 0, nil
}

// Delete removes a product row. Sale lines that reference it are kept.
func (r *Repository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&ledger.Product{}, "id = ?", id)
	if err := result.Error; err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return result.RowsAffected > 0, nil
}

// AdjustStock adds delta to the product quantity. The result may be
// negative. A missing product is not an error.
func (r *Repository) AdjustStock(ctx context.Context, productID uint, delta int) error {
	err := r.db.WithContext(ctx).Model(&ledger.Product{}).
		Where("id = ?", productID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", delta)).Error
	if err != nil {
		return fmt.Errorf("failed to adjust stock of product %d: %w", productID, err)
	}
	return nil
}

// List returns the products matching every predicate of f, each with its
// total units sold.
func (r *Repository) List(ctx context.Context, f Filter) ([]Listing, error) {
	q := r.db.WithContext(ctx).Model(&ledger.Product{}).
		Select("products.*, COALESCE(sold.total_sold, 0) AS total_sold").
		Joins(soldJoin)

	if f.Search != "" {
		q = q.Where("products.name LIKE ?", "%"+f.Search+"%")
	}
	if f.Category != "" {
		q = q.Where("products.category = ?", f.Category)
	}
	if f.MinPrice != nil {
		q = q.Where("products.sale_price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("products.sale_price <= ?", *f.MaxPrice)
	}
	if f.LowStock {
		q = q.Where("products.quantity > 0 AND products.quantity <= ?", ledger.LowStockThreshold)
	}
	if f.OutOfStock {
		q = q.Where("products.quantity = 0")
	}
	if f.BestSellers {
		q = q.Where("sold.total_sold > 0")
	}
	q = q.Where("products.active = ?", !f.Inactive)

	sort := f.Sort
	if sort == "" && f.BestSellers {
		sort = SortBestSellers
	}
	q = q.Order(orderClause(sort))

	var rows []Listing
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return rows, nil
}

func orderClause(sort string) string {
	switch sort {
	case SortPriceAsc:
		return "products.sale_price ASC, products.name ASC"
	case SortStockDesc:
		return "products.quantity DESC, products.name ASC"
	case SortDateDesc:
		return "products.created_at DESC, products.id DESC"
	case SortBestSellers:
		return "total_sold DESC, products.name ASC"
	default:
		return "products.name ASC"
	}
}

// Categories returns the distinct non-empty categories in name order.
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&ledger.Product{}).
		Distinct().
		Where("category <> ''").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Movements returns the most recent sale lines of a product, newest first.
// limit is capped at MaxMovements; zero or negative means the cap.
func (r *Repository) Movements(ctx context.Context, productID uint, limit int) ([]Movement, error) {
	if limit <= 0 || limit > MaxMovements {
		limit = MaxMovements
	}

	var rows []Movement
	err := r.db.WithContext(ctx).Table("sale_items AS si").
		Select("s.id AS sale_id, s.created_at AS date, s.status AS status, c.name AS customer_name, si.quantity AS quantity, si.unit_price AS unit_price").
		Joins("JOIN sales AS s ON s.id = si.sale_id").
		Joins("LEFT JOIN customers AS c ON c.id = s.customer_id").
		Where("si.product_id = ?", productID).
		Order("s.created_at DESC, s.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return rows, nil
}
