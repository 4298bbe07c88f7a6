package api

import (
	"strconv"
	"strings"

	"github.com/example/retail-pos/modules/catalog"
	"github.com/example/retail-pos/modules/customer"
	"github.com/example/retail-pos/modules/sales"
	"github.com/example/retail-pos/modules/stockalert"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	api := app.Group("/api/v1")

	products := api.Group("/products")
	products.Get("/", m.listProducts)
	products.Post("/", m.createProduct)
	products.Get("/categories", m.listCategories)
	products.Get("/:id", m.getProduct)
	products.Put("/:id", m.updateProduct)
	products.Delete("/:id", m.deleteProduct)
	products.Get("/:id/movements", m.productMovements)

	customers := api.Group("/customers")
	customers.Get("/", m.listCustomers)
	customers.Post("/", m.createCustomer)
	customers.Delete("/:id", m.deleteCustomer)
	customers.Get("/:id/history", m.customerHistory)
	customers.Post("/:id/settle", m.settleDebt)

	api.Post("/sales", m.commitSale)

	reports := api.Group("/reports")
	reports.Get("/dashboard", m.dashboard)
	reports.Get("/debtors", m.debtors)

	api.Get("/alerts", m.recentAlerts)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"port":   m.port,
		},
	})
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: code, Message: message})
}

func serverError(c *fiber.Ctx, code string, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: code, Message: err.Error()})
}

func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func invalidID(c *fiber.Ctx) error {
	return badRequest(c, "validation_error", "A positive numeric id is required")
}

func parseDecimalQuery(c *fiber.Ctx, key string) (*decimal.Decimal, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, false
	}
	return &d, true
}

// listProducts handles GET /api/v1/products.
func (m *APIModule) listProducts(c *fiber.Ctx) error {
	filter := catalog.Filter{
		Search:      c.Query("search"),
		Category:    c.Query("category"),
		LowStock:    c.QueryBool("low_stock"),
		OutOfStock:  c.QueryBool("out_of_stock"),
		BestSellers: c.QueryBool("best_sellers"),
		Inactive:    c.QueryBool("inactive"),
		Sort:        c.Query("sort"),
	}

	var ok bool
	if filter.MinPrice, ok = parseDecimalQuery(c, "min_price"); !ok {
		return badRequest(c, "validation_error", "min_price must be a number")
	}
	if filter.MaxPrice, ok = parseDecimalQuery(c, "max_price"); !ok {
		return badRequest(c, "validation_error", "max_price must be a number")
	}
	if !catalog.ValidSort(filter.Sort) {
		return badRequest(c, "validation_error", "Unknown sort: "+filter.Sort)
	}

	resp, err := m.catalog.ListProducts(c.Context(), filter)
	if err != nil {
		return serverError(c, "list_failed", err)
	}
	return c.JSON(resp)
}

// createProduct handles POST /api/v1/products.
func (m *APIModule) createProduct(c *fiber.Ctx) error {
	var in catalog.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}
	if err := in.Validate(); err != nil {
		return badRequest(c, "validation_error", err.Error())
	}

	product, err := m.catalog.CreateProduct(c.Context(), in)
	if err != nil {
		return serverError(c, "create_failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// listCategories handles GET /api/v1/products/categories.
func (m *APIModule) listCategories(c *fiber.Ctx) error {
	categories, err := m.catalog.Categories(c.Context())
	if err != nil {
		return serverError(c, "list_failed", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(CategoriesResponse{Categories: categories})
}

// getProduct handles GET /api/v1/products/:id.
func (m *APIModule) getProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	product, err := m.catalog.GetProduct(c.Context(), id)
	if err != nil {
		// Service errors arrive as text over the bus.
		if strings.Contains(err.Error(), catalog.ErrNotFound.Error()) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error:   "not_found",
				Message: "Product not found",
			})
		}
		return serverError(c, "get_failed", err)
	}
	return c.JSON(product)
}

// updateProduct handles PUT /api/v1/products/:id. Updating a missing
// product answers 200 with updated=false.
func (m *APIModule) updateProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	var in catalog.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}
	if err := in.Validate(); err != nil {
		return badRequest(c, "validation_error", err.Error())
	}

	updated, err := m.catalog.UpdateProduct(c.Context(), id, in)
	if err != nil {
		return serverError(c, "update_failed", err)
	}
	return c.JSON(catalog.UpdateProductResponse{ID: id, Updated: updated})
}

// deleteProduct handles DELETE /api/v1/products/:id.
func (m *APIModule) deleteProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	deleted, err := m.catalog.DeleteProduct(c.Context(), id)
	if err != nil {
		return serverError(c, "delete_failed", err)
	}
	return c.JSON(catalog.DeleteProductResponse{ID: id, Deleted: deleted})
}

// productMovements handles GET /api/v1/products/:id/movements.
func (m *APIModule) productMovements(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	movements, err := m.catalog.Movements(c.Context(), id, c.QueryInt("limit", catalog.MaxMovements))
	if err != nil {
		return serverError(c, "list_failed", err)
	}
	if movements == nil {
		movements = []catalog.Movement{}
	}
	return c.JSON(MovementsResponse{ProductID: id, Movements: movements})
}

// listCustomers handles GET /api/v1/customers.
func (m *APIModule) listCustomers(c *fiber.Ctx) error {
	resp, err := m.customers.ListCustomers(c.Context(), c.Query("search"))
	if err != nil {
		return serverError(c, "list_failed", err)
	}
	return c.JSON(resp)
}

// createCustomer handles POST /api/v1/customers.
func (m *APIModule) createCustomer(c *fiber.Ctx) error {
	var req customer.CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}
	if req.Name == "" {
		return badRequest(c, "validation_error", customer.ErrNameRequired.Error())
	}

	created, err := m.customers.CreateCustomer(c.Context(), &req)
	if err != nil {
		return serverError(c, "create_failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// deleteCustomer handles DELETE /api/v1/customers/:id.
func (m *APIModule) deleteCustomer(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	deleted, err := m.customers.DeleteCustomer(c.Context(), id)
	if err != nil {
		return serverError(c, "delete_failed", err)
	}
	return c.JSON(customer.DeleteCustomerResponse{ID: id, Deleted: deleted})
}

// customerHistory handles GET /api/v1/customers/:id/history.
func (m *APIModule) customerHistory(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	purchases, err := m.customers.PurchaseHistory(c.Context(), id)
	if err != nil {
		return serverError(c, "history_failed", err)
	}
	if purchases == nil {
		purchases = []customer.Purchase{}
	}
	return c.JSON(HistoryResponse{CustomerID: id, Purchases: purchases})
}

// settleDebt handles POST /api/v1/customers/:id/settle.
func (m *APIModule) settleDebt(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	settlement, err := m.sales.SettleDebt(c.Context(), id)
	if err != nil {
		return serverError(c, "settle_failed", err)
	}
	return c.JSON(settlement)
}

// commitSale handles POST /api/v1/sales.
func (m *APIModule) commitSale(c *fiber.Ctx) error {
	var req CommitSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}
	if len(req.Items) == 0 {
		return badRequest(c, "validation_error", sales.ErrEmptyCart.Error())
	}
	if req.CustomerID == 0 {
		return badRequest(c, "validation_error", sales.ErrCustomerRequired.Error())
	}
	cart, err := sales.NewCart(req.Items...)
	if err != nil {
		return badRequest(c, "validation_error", err.Error())
	}

	resp, err := m.sales.CommitSale(c.Context(), &sales.CommitSaleRequest{
		CustomerID: req.CustomerID,
		Items:      cart.Entries(),
		Credit:     req.Credit,
	})
	if err != nil {
		return serverError(c, "commit_failed", err)
	}
	if !resp.Committed {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "commit_failed",
			Message: resp.Error,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(resp.Receipt)
}

// dashboard handles GET /api/v1/reports/dashboard.
func (m *APIModule) dashboard(c *fiber.Ctx) error {
	d, err := m.reports.Dashboard(c.Context())
	if err != nil {
		return serverError(c, "report_failed", err)
	}
	return c.JSON(d)
}

// debtors handles GET /api/v1/reports/debtors.
func (m *APIModule) debtors(c *fiber.Ctx) error {
	resp, err := m.reports.Debtors(c.Context())
	if err != nil {
		return serverError(c, "report_failed", err)
	}
	return c.JSON(resp)
}

// recentAlerts handles GET /api/v1/alerts.
func (m *APIModule) recentAlerts(c *fiber.Ctx) error {
	alerts, err := m.alerts.Recent(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return serverError(c, "alerts_failed", err)
	}
	if alerts == nil {
		alerts = []stockalert.Alert{}
	}
	return c.JSON(AlertsResponse{Alerts: alerts})
}
