package purchaseorder

import "github.com/shopspring/decimal"

// PurchaseOrderItem represents purchase_order_items table (one line of an order)
type PurchaseOrderItem struct {
	ID               uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PurchaseOrderID  uint            `gorm:"column:purchase_order_id;not null;index" json:"purchaseOrderId"`
	ItemID           uint            `gorm:"column:item_id;not null;index" json:"itemId"`
	Quantity         float64         `gorm:"column:quantity;type:decimal(12,4);not null;default:0" json:"quantity"`
	UnitPrice        decimal.Decimal `gorm:"column:unit_price;type:decimal(15,4);not null" json:"unitPrice"`
	TotalPrice       decimal.Decimal `gorm:"column:total_price;type:decimal(15,4);not null" json:"totalPrice"`
	ReceivedQuantity *float64        `gorm:"column:received_quantity;type:decimal(12,4)" json:"receivedQuantity"`
	UOM              string          `gorm:"column:uom;type:varchar(16)" json:"uom"`
	ItemName         string          `gorm:"column:item_name;type:varchar(255)" json:"itemName"`
}

func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// Received is true once the received quantity covers the ordered quantity.
func (i *PurchaseOrderItem) Received() bool {
	return i.ReceivedQuantity != nil && *i.ReceivedQuantity >= i.Quantity
}
