package main

import (
	"context"
	"log"
	"os"

	"github.com/example/retail-pos/config"
	"github.com/example/retail-pos/metrics"
	"github.com/example/retail-pos/modules/api"
	"github.com/example/retail-pos/modules/catalog"
	"github.com/example/retail-pos/modules/customer"
	"github.com/example/retail-pos/modules/report"
	"github.com/example/retail-pos/modules/sales"
	"github.com/example/retail-pos/modules/stockalert"
	"github.com/example/retail-pos/modules/storage"
	"github.com/example/retail-pos/store"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	log.Println("=== Retail POS - Inventory & Sales ===")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := store.Open(store.Options{
		Path:         cfg.DBPath,
		Debug:        cfg.DBDebug,
		MaxOpenConns: cfg.DBMaxOpenConns,
	})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	levelOpt := mono.WithLogLevel(mono.LogLevelInfo)
	switch cfg.LogLevel {
	case "debug":
		levelOpt = mono.WithLogLevel(mono.LogLevelDebug)
	case "warn":
		levelOpt = mono.WithLogLevel(mono.LogLevelWarn)
	case "error":
		levelOpt = mono.WithLogLevel(mono.LogLevelError)
	}
	formatOpt := mono.WithLogFormat(mono.LogFormatText)
	if cfg.LogFormat == "json" {
		formatOpt = mono.WithLogFormat(mono.LogFormatJSON)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		levelOpt,
		formatOpt,
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Order: storage first so it stops last, then core modules, then the
	// driving adapter.
	app.Register(storage.NewModule(db, cfg.DBPath))
	app.Register(catalog.NewModule(db))
	app.Register(customer.NewModule(db))
	app.Register(sales.NewModule(db))      // Emits SaleCommitted / DebtSettled
	app.Register(report.NewModule(db))     // Read-only aggregates
	app.Register(stockalert.NewModule(db)) // Consumes SaleCommitted
	app.Register(api.NewModule(cfg.HTTPPort, metrics.NewRegistry()))

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Printf("Database: %s", cfg.DBPath)
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", cfg.HTTPPort)
	log.Println("  GET    /api/v1/products                 - Search products (filters, sort)")
	log.Println("  POST   /api/v1/products                 - Create a product")
	log.Println("  GET    /api/v1/products/categories      - Distinct categories")
	log.Println("  GET    /api/v1/products/:id             - Get a product")
	log.Println("  PUT    /api/v1/products/:id             - Update a product")
	log.Println("  DELETE /api/v1/products/:id             - Delete a product")
	log.Println("  GET    /api/v1/products/:id/movements   - Sales of a product")
	log.Println("  GET    /api/v1/customers                - Search customers")
	log.Println("  POST   /api/v1/customers                - Create a customer")
	log.Println("  DELETE /api/v1/customers/:id            - Delete a customer")
	log.Println("  GET    /api/v1/customers/:id/history    - Purchase history")
	log.Println("  POST   /api/v1/customers/:id/settle     - Settle pending debt")
	log.Println("  POST   /api/v1/sales                    - Commit a sale (cash or credit)")
	log.Println("  GET    /api/v1/reports/dashboard        - Dashboard totals")
	log.Println("  GET    /api/v1/reports/debtors          - Customers with pending debt")
	log.Println("  GET    /api/v1/alerts                   - Recent stock alerts")
	log.Println("  GET    /health                          - Health check")
	log.Println("  GET    /metrics                         - Prometheus metrics")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
