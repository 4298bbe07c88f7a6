package store

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
)

// columnUpgrade is an optional column introduced after the first schema.
type columnUpgrade struct {
	table      string
	column     string
	definition string
	backfill   string
}

// upgrades are applied in order. Types follow what AutoMigrate would
// declare so a later migration sees matching columns.
var upgrades = []columnUpgrade{
	// Columns the first desktop release added to its own tables. They must
	// exist before ImportLegacy copies those tables.
	{table: "vendas", column: "status", definition: "text DEFAULT 'PAGO'"},
	{table: "vendas", column: "data", definition: "datetime"},
	{table: "produtos", column: "ativo", definition: "integer DEFAULT 1"},
	{table: "produtos", column: "foto", definition: "text"},
	{table: "produtos", column: "codigo_barras", definition: "text"},
	{table: "produtos", column: "descricao", definition: "text"},
	{table: "produtos", column: "fornecedor", definition: "text"},

	{table: "sales", column: "status", definition: "text NOT NULL DEFAULT 'PAID'"},
	{table: "products", column: "active", definition: "numeric NOT NULL DEFAULT 1"},
	{table: "products", column: "photo", definition: "text"},
	{table: "products", column: "barcode", definition: "text"},
	{table: "products", column: "description", definition: "text"},
	{table: "products", column: "supplier", definition: "text"},
	{
		table: "products", column: "created_at", definition: "datetime",
		backfill: "UPDATE products SET created_at = CURRENT_TIMESTAMP WHERE created_at IS NULL",
	},
	{
		table: "products", column: "updated_at", definition: "datetime",
		backfill: "UPDATE products SET updated_at = CURRENT_TIMESTAMP WHERE updated_at IS NULL",
	},
	{
		table: "customers", column: "created_at", definition: "datetime",
		backfill: "UPDATE customers SET created_at = CURRENT_TIMESTAMP WHERE created_at IS NULL",
	},
}

// UpgradeSchema adds optional columns to tables created by older
// installations. A column that already exists counts as upgraded. Failures
// on one column do not stop the others; they are joined into the returned
// error. Tables that do not exist yet are left to Migrate.
func UpgradeSchema(db *gorm.DB) error {
	var errs []error
	for _, u := range upgrades {
		if !db.Migrator().HasTable(u.table) {
			continue
		}

		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", u.table, u.column, u.definition)
		err := db.Exec(stmt).Error
		switch {
		case err == nil:
			log.Printf("[store] Added column %s.%s", u.table, u.column)
		case isDuplicateColumn(err):
			continue
		default:
			errs = append(errs, fmt.Errorf("add column %s.%s: %w", u.table, u.column, err))
			continue
		}

		if u.backfill != "" {
			if err := db.Exec(u.backfill).Error; err != nil {
				errs = append(errs, fmt.Errorf("backfill %s.%s: %w", u.table, u.column, err))
			}
		}
	}
	return errors.Join(errs...)
}

func isDuplicateColumn(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "duplicate column name")
}
