// Package modeltest opens throwaway SQLite databases for tests.
package modeltest

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"procurement.GO/model"
	entity "procurement.GO/model/entity"
	supplierEntity "procurement.GO/model/entity/supplier"
)

// NewDB returns a migrated SQLite database in the test's temp dir.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func SeedSupplier(t testing.TB, db *gorm.DB, orgID uint, name string) supplierEntity.Supplier {
	t.Helper()
	s := supplierEntity.Supplier{OrganizationID: orgID, Name: name}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	return s
}

func SeedItem(t testing.TB, db *gorm.DB, orgID uint, sku string) entity.Item {
	t.Helper()
	it := entity.Item{OrganizationID: orgID, SKU: sku, Name: "Item " + sku, UOM: "PCS"}
	if err := db.Create(&it).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return it
}

func SeedSupplierItem(t testing.TB, db *gorm.DB, supplierID, itemID uint, price string) supplierEntity.SupplierItem {
	t.Helper()
	si := supplierEntity.SupplierItem{SupplierID: supplierID, ItemID: itemID, UnitPrice: decimal.RequireFromString(price), UOM: "PCS"}
	if err := db.Create(&si).Error; err != nil {
		t.Fatalf("seed supplier item: %v", err)
	}
	return si
}
