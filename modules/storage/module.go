// Package storage owns the lifetime of the shared SQLite database.
package storage

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/example/retail-pos/store"
	"github.com/go-monolith/mono"
	"gorm.io/gorm"
)

// StorageModule reports database health and closes the connection pool
// when the application stops. Registered first so that it stops last.
type StorageModule struct {
	db   *gorm.DB
	path string
}

// Compile-time interface checks.
var _ mono.Module = (*StorageModule)(nil)
var _ mono.HealthCheckableModule = (*StorageModule)(nil)

// NewModule wraps an opened database.
func NewModule(db *gorm.DB, path string) *StorageModule {
	return &StorageModule{db: db, path: path}
}

// Name returns the module name.
func (m *StorageModule) Name() string {
	return "storage"
}

// Start verifies that every ledger table exists.
func (m *StorageModule) Start(_ context.Context) error {
	if m.db == nil {
		return fmt.Errorf("database not initialized")
	}
	if missing := store.VerifyTables(m.db); len(missing) > 0 {
		return fmt.Errorf("missing tables: %s", strings.Join(missing, ", "))
	}
	log.Printf("[storage] Database ready at %s", m.path)
	return nil
}

// Stop closes the connection pool.
func (m *StorageModule) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}
	log.Println("[storage] Closing database...")
	return store.Close(m.db)
}

// Health pings the database and checks the schema.
func (m *StorageModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	if err := store.Ping(ctx, m.db); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	details := map[string]any{
		"driver": "sqlite",
		"path":   m.path,
	}
	if missing := store.VerifyTables(m.db); len(missing) > 0 {
		details["missing_tables"] = missing
		return mono.HealthStatus{
			Healthy: false,
			Message: "schema incomplete",
			Details: details,
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}
