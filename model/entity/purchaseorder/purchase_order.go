package purchaseorder

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a purchase order.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusOpen      Status = "OPEN"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusRejected  Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusOpen, StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// Terminal statuses block further receiving.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusRejected
}

// PurchaseOrder represents purchase_orders table
type PurchaseOrder struct {
	ID                 uint                `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrganizationID     uint                `gorm:"column:organization_id;not null;index" json:"organizationId"`
	SupplierID         uint                `gorm:"column:supplier_id;not null;index" json:"supplierId"`
	OrderNumber        string              `gorm:"column:order_number;type:varchar(32);not null;uniqueIndex" json:"orderNumber"`
	Status             Status              `gorm:"column:status;type:varchar(16);not null;default:PENDING;index" json:"status"`
	TotalAmount        decimal.NullDecimal `gorm:"column:total_amount;type:decimal(15,4)" json:"totalAmount"`
	OrderDate          *time.Time          `gorm:"column:order_date" json:"orderDate"`
	ExpectedDate       *time.Time          `gorm:"column:expected_date" json:"expectedDate"`
	ReceivedDate       *time.Time          `gorm:"column:received_date" json:"receivedDate"`
	Remarks            *string             `gorm:"column:remarks;type:text" json:"remarks"`
	CreatedBy          uint                `gorm:"column:created_by" json:"createdBy"`
	UpdatedBy          *uint               `gorm:"column:updated_by" json:"updatedBy"`
	CreatedAt          time.Time           `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	PurchaseOrderItems []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE" json:"purchaseOrderItems"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// FullyReceived reports whether every line has a received quantity at or above
// the ordered quantity. An order without lines is fully received.
func (o *PurchaseOrder) FullyReceived() bool {
	for i := range o.PurchaseOrderItems {
		if !o.PurchaseOrderItems[i].Received() {
			return false
		}
	}
	return true
}

// LineByID returns the line with the given line id, or nil.
func (o *PurchaseOrder) LineByID(id uint) *PurchaseOrderItem {
	for i := range o.PurchaseOrderItems {
		if o.PurchaseOrderItems[i].ID == id {
			return &o.PurchaseOrderItems[i]
		}
	}
	return nil
}
