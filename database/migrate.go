package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// Migrate creates the terminal's local journal tables. Orders, foods, tables
// and bills live in the backend and are never migrated here.
func Migrate(db *gorm.DB) error {
	tables := []interface{}{
		&models.Notification{},
		&models.ProcessedEvent{},
		&models.Receipt{},
		&models.ReceiptItem{},
	}
	if err := db.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, t := range tables {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(t); err != nil {
			continue
		}
		utils.InfoLogger.Printf("Table verified: %s", stmt.Schema.Table)
	}
	return nil
}
