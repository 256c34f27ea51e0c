package model

import (
	"gorm.io/gorm"

	entity "procurement.GO/model/entity"
	poEntity "procurement.GO/model/entity/purchaseorder"
	supplierEntity "procurement.GO/model/entity/supplier"
)

// Entities lists every table owned or read by this service.
func Entities() []interface{} {
	return []interface{}{
		&entity.Item{},
		&supplierEntity.Supplier{},
		&supplierEntity.SupplierItem{},
		&poEntity.PurchaseOrder{},
		&poEntity.PurchaseOrderItem{},
		&poEntity.GoodsReceiptNote{},
	}
}

// AutoMigrate creates or updates tables through GORM. Production MySQL uses the
// versioned migrations instead; this serves SQLite dev databases and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Entities()...)
}
