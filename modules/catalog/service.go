package catalog

import (
	"context"
	"fmt"
	"log"

	"github.com/example/retail-pos/domain/ledger"
	"github.com/go-monolith/mono"
)

// createProduct handles the catalog.create service request.
func (m *CatalogModule) createProduct(ctx context.Context, req CreateProductRequest, _ *mono.Msg) (ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return ProductResponse{}, err
	}

	// GORM handles CreatedAt/UpdatedAt
	product := toProduct(req.ProductInput)
	if err := m.repo.Create(ctx, product); err != nil {
		return ProductResponse{}, fmt.Errorf("failed to save product: %w", err)
	}

	log.Printf("[catalog] Product created: id=%d name=%q", product.ID, product.Name)
	return ProductResponse{Product: *product}, nil
}

// getProduct handles the catalog.get service request.
func (m *CatalogModule) getProduct(ctx context.Context, req GetProductRequest, _ *mono.Msg) (ProductResponse, error) {
	if req.ID == 0 {
		return ProductResponse{}, ErrIDRequired
	}

	product, err := m.repo.FindByID(ctx, req.ID)
	if err != nil {
		return ProductResponse{}, err
	}
	return ProductResponse{Product: *product}, nil
}

// updateProduct handles the catalog.update service request.
// A missing product is reported with Updated=false.
func (m *CatalogModule) updateProduct(ctx context.Context, req UpdateProductRequest, _ *mono.Msg) (UpdateProductResponse, error) {
	if req.ID == 0 {
		return UpdateProductResponse{}, ErrIDRequired
	}
	if err := req.Validate(); err != nil {
		return UpdateProductResponse{ID: req.ID}, err
	}

	updated, err := m.repo.Update(ctx, req.ID, toProduct(req.ProductInput))
	if err != nil {
		return UpdateProductResponse{ID: req.ID}, err
	}
	return UpdateProductResponse{ID: req.ID, Updated: updated}, nil
}

// deleteProduct handles the catalog.delete service request.
func (m *CatalogModule) deleteProduct(ctx context.Context, req DeleteProductRequest, _ *mono.Msg) (DeleteProductResponse, error) {
	if req.ID == 0 {
		return DeleteProductResponse{}, ErrIDRequired
	}

	deleted, err := m.repo.Delete(ctx, req.ID)
	if err != nil {
		return DeleteProductResponse{ID: req.ID}, err
	}
	if deleted {
		log.Printf("[catalog] Product deleted: id=%d", req.ID)
	}
	return DeleteProductResponse{ID: req.ID, Deleted: deleted}, nil
}

// listProducts handles the catalog.list service request.
func (m *CatalogModule) listProducts(ctx context.Context, req ListProductsRequest, _ *mono.Msg) (ListProductsResponse, error) {
	if !ValidSort(req.Filter.Sort) {
		return ListProductsResponse{}, fmt.Errorf("unknown sort %q", req.Filter.Sort)
	}

	rows, err := m.repo.List(ctx, req.Filter)
	if err != nil {
		return ListProductsResponse{}, err
	}
	if rows == nil {
		rows = []Listing{}
	}
	return ListProductsResponse{Products: rows, Total: len(rows)}, nil
}

// listCategories handles the catalog.categories service request.
func (m *CatalogModule) listCategories(ctx context.Context, _ CategoriesRequest, _ *mono.Msg) (CategoriesResponse, error) {
	categories, err := m.repo.Categories(ctx)
	if err != nil {
		return CategoriesResponse{}, err
	}
	if categories == nil {
		categories = []string{}
	}
	return CategoriesResponse{Categories: categories}, nil
}

// listMovements handles the catalog.movements service request.
func (m *CatalogModule) listMovements(ctx context.Context, req MovementsRequest, _ *mono.Msg) (MovementsResponse, error) {
	if req.ProductID == 0 {
		return MovementsResponse{}, ErrIDRequired
	}

	rows, err := m.repo.Movements(ctx, req.ProductID, req.Limit)
	if err != nil {
		return MovementsResponse{}, err
	}
	if rows == nil {
		rows = []Movement{}
	}
	return MovementsResponse{ProductID: req.ProductID, Movements: rows}, nil
}

// toProduct builds a product entity from the editable fields. Active
// defaults to true.
func toProduct(in ProductInput) *ledger.Product {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return &ledger.Product{
		Name:        in.Name,
		Category:    in.Category,
		SalePrice:   in.SalePrice,
		CostPrice:   in.CostPrice,
		Quantity:    in.Quantity,
		Active:      active,
		Barcode:     in.Barcode,
		Photo:       in.Photo,
		Description: in.Description,
		Supplier:    in.Supplier,
	}
}
