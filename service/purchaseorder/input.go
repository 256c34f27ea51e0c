package purchaseorder

import (
	"time"

	"github.com/shopspring/decimal"

	poEntity "procurement.GO/model/entity/purchaseorder"
)

// LineInput is one ordered line of a new purchase order.
type LineInput struct {
	ItemID    uint            `json:"itemId"`
	Quantity  float64         `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	UOM       string          `json:"uom"`
	ItemName  string          `json:"itemName"`
}

// CreateInput describes a new purchase order. OrganizationID is only honoured
// for super admins; everyone else creates in their own organization.
type CreateInput struct {
	OrganizationID     uint
	SupplierID         uint
	OrderDate          *time.Time
	ExpectedDate       *time.Time
	ReceivedDate       *time.Time
	Remarks            *string
	TotalAmount        *decimal.Decimal
	PurchaseOrderItems []LineInput
}

// ListInput filters List. OrganizationID 0 means "the caller's organization".
type ListInput struct {
	OrganizationID uint
	Status         string
}

// UpdateInput holds the mutable fields of an order; nil fields are left untouched.
type UpdateInput struct {
	Status       *string
	ExpectedDate *time.Time
	ReceivedDate *time.Time
	UpdatedBy    *uint
	TotalAmount  *decimal.Decimal
	Remarks      *string
}

// ReceiveInput is one receiving call. Each ItemID names an order line, not a product.
type ReceiveInput struct {
	ReceivedItems []poEntity.ReceivedLine
	ReceivedDate  *time.Time
}
