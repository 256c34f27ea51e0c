package entity

// Item represents items table (product master). Maintained by the catalog module.
type Item struct {
	ID             uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrganizationID uint   `gorm:"column:organization_id;not null;index" json:"organizationId"`
	SKU            string `gorm:"column:sku;type:varchar(64);not null" json:"sku"`
	Name           string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	UOM            string `gorm:"column:uom;type:varchar(16)" json:"uom"`
}

func (Item) TableName() string {
	return "items"
}
