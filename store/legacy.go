package store

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// legacyTable maps a table of the Portuguese desktop schema onto its ledger
// table. Rows keep their ids so sale items still point at their sale and
// product.
type legacyTable struct {
	source string
	target string
	copy   string
}

// Parents come first so a partially imported file never holds items
// without their sale.
var legacyTables = []legacyTable{
	{
		source: "produtos",
		target: "products",
		copy: `INSERT INTO products (id, name, category, sale_price, cost_price, quantity, active,
			barcode, photo, description, supplier, created_at, updated_at)
		SELECT id, nome, COALESCE(categoria, ''), preco_venda, preco_compra, quantidade,
			COALESCE(ativo, 1) <> 0, COALESCE(codigo_barras, ''), COALESCE(foto, ''),
			COALESCE(descricao, ''), COALESCE(fornecedor, ''), CURRENT_TIMESTAMP, CURRENT_TIMESTAMP
		FROM produtos`,
	},
	{
		source: "clientes",
		target: "customers",
		copy: `INSERT INTO customers (id, name, phone, national_id, email, created_at)
		SELECT id, nome, COALESCE(telefone, ''), COALESCE(cpf, ''), COALESCE(email, ''), CURRENT_TIMESTAMP
		FROM clientes`,
	},
	{
		source: "vendas",
		target: "sales",
		copy: `INSERT INTO sales (id, customer_id, total, status, created_at)
		SELECT id, cliente_id, total,
			CASE WHEN status = 'PENDENTE' THEN 'PENDING' ELSE 'PAID' END,
			COALESCE(data, CURRENT_TIMESTAMP)
		FROM vendas`,
	},
	{
		source: "itens_venda",
		target: "sale_items",
		copy: `INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price)
		SELECT id, venda_id, produto_id, quantidade, preco_unitario
		FROM itens_venda
		WHERE venda_id IS NOT NULL AND produto_id IS NOT NULL`,
	},
}

// LegacyPrefix is prepended to a desktop table once its rows live in the
// ledger table.
const LegacyPrefix = "legacy_"

// ImportLegacy copies the rows of a database created by the desktop
// program into the ledger tables. Each source table is copied only while
// its target is still empty, then renamed with LegacyPrefix so a later
// start does not import it again. Must run after Migrate.
func ImportLegacy(db *gorm.DB) error {
	for _, lt := range legacyTables {
		if !db.Migrator().HasTable(lt.source) {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			var existing int64
			if err := tx.Table(lt.target).Count(&existing).Error; err != nil {
				return fmt.Errorf("failed to count %s: %w", lt.target, err)
			}
			if existing > 0 {
				log.Printf("[store] Warning: %s already has rows, leaving %s untouched", lt.target, lt.source)
				return nil
			}

			result := tx.Exec(lt.copy)
			if result.Error != nil {
				return fmt.Errorf("failed to copy %s into %s: %w", lt.source, lt.target, result.Error)
			}
			if err := tx.Migrator().RenameTable(lt.source, LegacyPrefix+lt.source); err != nil {
				return fmt.Errorf("failed to rename %s: %w", lt.source, err)
			}
			log.Printf("[store] Imported %d rows from %s into %s", result.RowsAffected, lt.source, lt.target)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
