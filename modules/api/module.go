package api

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/example/retail-pos/metrics"
	"github.com/example/retail-pos/modules/catalog"
	"github.com/example/retail-pos/modules/customer"
	"github.com/example/retail-pos/modules/report"
	"github.com/example/retail-pos/modules/sales"
	"github.com/example/retail-pos/modules/stockalert"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APIModule is the driving adapter that exposes REST endpoints.
// It reaches the core modules only through their ports.
type APIModule struct {
	app      *fiber.App
	port     int
	registry *prometheus.Registry

	catalog   catalog.CatalogPort
	customers customer.CustomerPort
	sales     sales.SalesPort
	reports   report.ReportPort
	alerts    stockalert.AlertPort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule listening on port. registry backs the
// /metrics endpoint; nil serves the default Prometheus registry.
func NewModule(port int, registry *prometheus.Registry) *APIModule {
	return &APIModule{port: port, registry: registry}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"catalog", "customer", "sales", "report", "stockalert"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "catalog":
		m.catalog = catalog.NewCatalogAdapter(container)
	case "customer":
		m.customers = customer.NewCustomerAdapter(container)
	case "sales":
		m.sales = sales.NewSalesAdapter(container)
	case "report":
		m.reports = report.NewReportAdapter(container)
	case "stockalert":
		m.alerts = stockalert.NewAlertAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
// Returns an error if required dependencies are not set.
func (m *APIModule) Start(_ context.Context) error {
	if err := m.checkPorts(); err != nil {
		return err
	}

	m.app = m.newApp()

	// Server availability is verified via Health() method.
	go func() {
		addr := fmt.Sprintf(":%d", m.port)
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%d", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.ShutdownWithContext(ctx)
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	if m.app == nil {
		return mono.HealthStatus{Healthy: false, Message: "HTTP server not started"}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

func (m *APIModule) checkPorts() error {
	switch {
	case m.catalog == nil:
		return fmt.Errorf("catalog dependency not set")
	case m.customers == nil:
		return fmt.Errorf("customer dependency not set")
	case m.sales == nil:
		return fmt.Errorf("sales dependency not set")
	case m.reports == nil:
		return fmt.Errorf("report dependency not set")
	case m.alerts == nil:
		return fmt.Errorf("stockalert dependency not set")
	}
	return nil
}

// newApp builds the Fiber app with middleware and routes.
func (m *APIModule) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Retail POS",
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[api] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())
	app.Use(metrics.Middleware())

	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if m.registry != nil {
		gatherer = m.registry
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	m.setupRoutes(app)
	return app
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
