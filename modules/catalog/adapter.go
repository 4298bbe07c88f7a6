package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/retail-pos/domain/ledger"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// catalogAdapter wraps ServiceContainer for type-safe cross-module communication.
type catalogAdapter struct {
	container mono.ServiceContainer
}

// NewCatalogAdapter creates a new adapter for catalog services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewCatalogAdapter(container mono.ServiceContainer) CatalogPort {
	if container == nil {
		panic("catalog adapter requires non-nil ServiceContainer")
	}
	return &catalogAdapter{container: container}
}

func call[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}

// CreateProduct creates a product via the create service.
func (a *catalogAdapter) CreateProduct(ctx context.Context, in ProductInput) (*ledger.Product, error) {
	req := CreateProductRequest{ProductInput: in}
	var resp ProductResponse
	if err := call(ctx, a.container, "create", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

// GetProduct retrieves a product by ID via the get service.
func (a *catalogAdapter) GetProduct(ctx context.Context, id uint) (*ledger.Product, error) {
	req := GetProductRequest{ID: id}
	var resp ProductResponse
	if err := call(ctx, a.container, "get", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

// UpdateProduct replaces a product's editable fields via the update service.
func (a *catalogAdapter) UpdateProduct(ctx context.Context, id uint, in ProductInput) (bool, error) {
	req := UpdateProductRequest{ID: id, ProductInput: in}
	var resp UpdateProductResponse
	if err := call(ctx, a.container, "update", &req, &resp); err != nil {
		return false, err
	}
	return resp.Updated, nil
}

// DeleteProduct deletes a product via the delete service.
func (a *catalogAdapter) DeleteProduct(ctx context.Context, id uint) (bool, error) {
	req := DeleteProductRequest{ID: id}
	var resp DeleteProductResponse
	if err := call(ctx, a.container, "delete", &req, &resp); err != nil {
		return false, err
	}
	return resp.Deleted, nil
}

// ListProducts lists products matching filter via the list service.
func (a *catalogAdapter) ListProducts(ctx context.Context, filter Filter) (*ListProductsResponse, error) {
	req := ListProductsRequest{Filter: filter}
	var resp ListProductsResponse
	if err := call(ctx, a.container, "list", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Categories lists distinct categories via the categories service.
func (a *catalogAdapter) Categories(ctx context.Context) ([]string, error) {
	var resp CategoriesResponse
	if err := call(ctx, a.container, "categories", &CategoriesRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// Movements lists a product's recent sale lines via the movements service.
func (a *catalogAdapter) Movements(ctx context.Context, productID uint, limit int) ([]Movement, error) {
	req := MovementsRequest{ProductID: productID, Limit: limit}
	var resp MovementsResponse
	if err := call(ctx, a.container, "movements", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Movements, nil
}
