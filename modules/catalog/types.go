package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/example/retail-pos/domain/ledger"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a product is not found.
	ErrNotFound = errors.New("product not found")
	// ErrNameRequired is returned when a product has no name.
	ErrNameRequired = errors.New("name is required")
	// ErrInvalidPrice is returned for negative sale or cost prices.
	ErrInvalidPrice = errors.New("price must be non-negative")
	// ErrIDRequired is returned when a request carries no product id.
	ErrIDRequired = errors.New("id is required")
)

// Sort keys accepted by Filter.Sort.
const (
	SortNameAsc     = "name_asc"
	SortPriceAsc    = "price_asc"
	SortStockDesc   = "stock_desc"
	SortDateDesc    = "date_desc"
	SortBestSellers = "best_sellers"
)

// MaxMovements caps the rows returned by Movements.
const MaxMovements = 50

// Filter narrows a product listing. Zero values disable a predicate.
type Filter struct {
	Search      string           `json:"search,omitempty"`
	Category    string           `json:"category,omitempty"`
	MinPrice    *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice    *decimal.Decimal `json:"max_price,omitempty"`
	LowStock    bool             `json:"low_stock,omitempty"`
	OutOfStock  bool             `json:"out_of_stock,omitempty"`
	BestSellers bool             `json:"best_sellers,omitempty"`
	Inactive    bool             `json:"inactive,omitempty"`
	Sort        string           `json:"sort,omitempty"`
}

// ValidSort reports whether s is empty or a known sort key.
func ValidSort(s string) bool {
	switch s {
	case "", SortNameAsc, SortPriceAsc, SortStockDesc, SortDateDesc, SortBestSellers:
		return true
	}
	return false
}

// Listing is a product row together with the units sold across all sales.
type Listing struct {
	ledger.Product
	TotalSold int64 `json:"total_sold"`
}

// Movement is one sale line of a product with its parent sale.
type Movement struct {
	SaleID       uint              `json:"sale_id"`
	Date         time.Time         `json:"date"`
	Status       ledger.SaleStatus `json:"status"`
	CustomerName *string           `json:"customer_name"`
	Quantity     int               `json:"quantity"`
	UnitPrice    decimal.Decimal   `json:"unit_price"`
}

// ProductInput carries the editable fields of a product.
type ProductInput struct {
	Name        string              `json:"name"`
	Category    string              `json:"category"`
	SalePrice   decimal.Decimal     `json:"sale_price"`
	CostPrice   decimal.NullDecimal `json:"cost_price"`
	Quantity    int                 `json:"quantity"`
	Active      *bool               `json:"active,omitempty"`
	Barcode     string              `json:"barcode"`
	Photo       string              `json:"photo"`
	Description string              `json:"description"`
	Supplier    string              `json:"supplier"`
}

// Validate checks the fields that must hold before anything is written.
func (in ProductInput) Validate() error {
	if in.Name == "" {
		return ErrNameRequired
	}
	if in.SalePrice.IsNegative() {
		return ErrInvalidPrice
	}
	if in.CostPrice.Valid && in.CostPrice.Decimal.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// CreateProductRequest is the request for creating a product.
type CreateProductRequest struct {
	ProductInput
}

// ProductResponse wraps a single product.
type ProductResponse struct {
	Product ledger.Product `json:"product"`
}

// GetProductRequest is the request for getting a product.
type GetProductRequest struct {
	ID uint `json:"id"`
}

// UpdateProductRequest replaces every editable field of a product.
type UpdateProductRequest struct {
	ID uint `json:"id"`
	ProductInput
}

// UpdateProductResponse reports whether a product row was updated.
type UpdateProductResponse struct {
	ID      uint `json:"id"`
	Updated bool `json:"updated"`
}

// DeleteProductRequest is the request for deleting a product.
type DeleteProductRequest struct {
	ID uint `json:"id"`
}

// DeleteProductResponse reports whether a product row was deleted.
type DeleteProductResponse struct {
	ID      uint `json:"id"`
	Deleted bool `json:"deleted"`
}

// ListProductsRequest is the request for listing products.
type ListProductsRequest struct {
	Filter Filter `json:"filter"`
}

// ListProductsResponse is the response containing a list of products.
type ListProductsResponse struct {
	Products []Listing `json:"products"`
	Total    int       `json:"total"`
}

// CategoriesRequest is the request for distinct categories.
type CategoriesRequest struct{}

// CategoriesResponse lists the distinct non-empty categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// MovementsRequest is the request for a product's sale history.
type MovementsRequest struct {
	ProductID uint `json:"product_id"`
	Limit     int  `json:"limit,omitempty"`
}

// MovementsResponse lists the most recent sale lines of a product.
type MovementsResponse struct {
	ProductID uint       `json:"product_id"`
	Movements []Movement `json:"movements"`
}

// CatalogPort defines the interface for catalog operations.
// This is the port that driving adapters depend on.
type CatalogPort interface {
	CreateProduct(ctx context.Context, in ProductInput) (*ledger.Product, error)
	GetProduct(ctx context.Context, id uint) (*ledger.Product, error)
	UpdateProduct(ctx context.Context, id uint, in ProductInput) (bool, error)
	DeleteProduct(ctx context.Context, id uint) (bool, error)
	ListProducts(ctx context.Context, filter Filter) (*ListProductsResponse, error)
	Categories(ctx context.Context) ([]string, error)
	Movements(ctx context.Context, productID uint, limit int) ([]Movement, error)
}
