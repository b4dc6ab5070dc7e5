package migrations

import (
	"fmt"

	"gorm.io/gorm"
)

// restoreIndexes recreates any index declared on model that the table no longer has.
// SQLite rebuilds the whole table for AlterColumn and DropColumn and the rebuild drops its indexes.
func restoreIndexes(tx *gorm.DB, model any) error {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(model); err != nil {
		return fmt.Errorf("failed to parse %T: %w", model, err)
	}

	for _, idx := range stmt.Schema.ParseIndexes() {
		if tx.Migrator().HasIndex(model, idx.Name) {
			continue
		}
		if err := tx.Migrator().CreateIndex(model, idx.Name); err != nil {
			return fmt.Errorf("failed to restore index %s: %w", idx.Name, err)
		}
	}
	return nil
}

// alterColumn changes a column to match its declaration on model, keeping the table's indexes
func alterColumn(tx *gorm.DB, model any, field string) error {
	if err := tx.Migrator().AlterColumn(model, field); err != nil {
		return err
	}
	return restoreIndexes(tx, model)
}

// dropColumn removes a column, keeping the indexes still declared on model
func dropColumn(tx *gorm.DB, model any, column string) error {
	if err := tx.Migrator().DropColumn(model, column); err != nil {
		return err
	}
	return restoreIndexes(tx, model)
}
