package supplier

import "time"

// Supplier represents suppliers table. Maintained by the supplier module.
type Supplier struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrganizationID uint      `gorm:"column:organization_id;not null;index" json:"organizationId"`
	Name           string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Code           string    `gorm:"column:code;type:varchar(64)" json:"code"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
