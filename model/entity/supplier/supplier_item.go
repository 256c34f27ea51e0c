package supplier

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierItem represents supplier_items table: a supplier's price for a product.
type SupplierItem struct {
	ID         uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SupplierID uint            `gorm:"column:supplier_id;not null;uniqueIndex:idx_supplier_item" json:"supplierId"`
	ItemID     uint            `gorm:"column:item_id;not null;uniqueIndex:idx_supplier_item" json:"itemId"`
	UnitPrice  decimal.Decimal `gorm:"column:unit_price;type:decimal(15,4);not null" json:"unitPrice"`
	UOM        string          `gorm:"column:uom;type:varchar(16)" json:"uom"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (SupplierItem) TableName() string {
	return "supplier_items"
}
