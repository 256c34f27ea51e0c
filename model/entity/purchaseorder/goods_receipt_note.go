package purchaseorder

import (
	"time"

	"gorm.io/datatypes"
)

// ReceivedLine is one {line id, quantity} pair of a receiving call.
type ReceivedLine struct {
	ItemID           uint    `json:"itemId"`
	ReceivedQuantity float64 `json:"receivedQuantity"`
}

// GoodsReceiptNote represents goods_receipt_notes table: one row per receiving call.
type GoodsReceiptNote struct {
	ID              uint                              `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PurchaseOrderID uint                              `gorm:"column:purchase_order_id;not null;index" json:"purchaseOrderId"`
	GRNNumber       string                            `gorm:"column:grn_number;type:varchar(40);not null;uniqueIndex" json:"grnNumber"`
	ReceivedDate    *time.Time                        `gorm:"column:received_date" json:"receivedDate"`
	ReceivedBy      uint                              `gorm:"column:received_by" json:"receivedBy"`
	Lines           datatypes.JSONSlice[ReceivedLine] `gorm:"column:received_lines" json:"lines"`
	StatusAfter     Status                            `gorm:"column:status_after;type:varchar(16);not null" json:"statusAfter"`
	CreatedAt       time.Time                         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (GoodsReceiptNote) TableName() string {
	return "goods_receipt_notes"
}
