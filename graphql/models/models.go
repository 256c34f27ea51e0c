package models

import gql "github.com/graph-gophers/graphql-go"

// --- PurchaseOrder ---

type PurchaseOrder struct {
	ID             gql.ID               `mapstructure:"id"`
	OrganizationID int32                `mapstructure:"organizationId"`
	SupplierID     int32                `mapstructure:"supplierId"`
	OrderNumber    string               `mapstructure:"orderNumber"`
	Status         string               `mapstructure:"status"`
	TotalAmount    *float64             `mapstructure:"totalAmount"`
	OrderDate      *string              `mapstructure:"orderDate"`
	ExpectedDate   *string              `mapstructure:"expectedDate"`
	ReceivedDate   *string              `mapstructure:"receivedDate"`
	Remarks        *string              `mapstructure:"remarks"`
	CreatedBy      int32                `mapstructure:"createdBy"`
	UpdatedBy      *int32               `mapstructure:"updatedBy"`
	Items          []*PurchaseOrderItem `mapstructure:"purchaseOrderItems"`
}

// --- PurchaseOrderItem ---

type PurchaseOrderItem struct {
	ID                gql.ID   `mapstructure:"id"`
	ItemID            int32    `mapstructure:"itemId"`
	ItemName          *string  `mapstructure:"itemName"`
	UOM               *string  `mapstructure:"uom"`
	Quantity          float64  `mapstructure:"quantity"`
	UnitPrice         float64  `mapstructure:"unitPrice"`
	TotalPrice        float64  `mapstructure:"totalPrice"`
	ReceivedQuantity  *float64 `mapstructure:"receivedQuantity"`
	SupplierUnitPrice *float64 `mapstructure:"supplierUnitPrice"`
}
