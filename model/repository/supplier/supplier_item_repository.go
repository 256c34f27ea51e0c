package supplier

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	entity "procurement.GO/model/entity"
	supplierEntity "procurement.GO/model/entity/supplier"
)

type SupplierItemRepository struct {
	db *gorm.DB
}

func NewSupplierItemRepository(db *gorm.DB) *SupplierItemRepository {
	return &SupplierItemRepository{db: db}
}

// FindBySuppliers fetches every price row for the given suppliers in one query.
func (r *SupplierItemRepository) FindBySuppliers(ctx context.Context, supplierIDs []uint) ([]supplierEntity.SupplierItem, error) {
	if len(supplierIDs) == 0 {
		return nil, nil
	}
	var rows []supplierEntity.SupplierItem
	err := r.db.WithContext(ctx).
		Where("supplier_id IN ?", supplierIDs).
		Find(&rows).Error
	return rows, err
}

// ExistingSupplierIDs returns the subset of ids present in suppliers of organizationID
// (any organization when 0).
func (r *SupplierItemRepository) ExistingSupplierIDs(ctx context.Context, organizationID uint, ids []uint) (map[uint]bool, error) {
	return r.existingIDs(ctx, &supplierEntity.Supplier{}, organizationID, ids)
}

// ExistingItemIDs returns the subset of ids present in items of organizationID
// (any organization when 0).
func (r *SupplierItemRepository) ExistingItemIDs(ctx context.Context, organizationID uint, ids []uint) (map[uint]bool, error) {
	return r.existingIDs(ctx, &entity.Item{}, organizationID, ids)
}

func (r *SupplierItemRepository) existingIDs(ctx context.Context, model interface{}, organizationID uint, ids []uint) (map[uint]bool, error) {
	found := make(map[uint]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	query := r.db.WithContext(ctx).Model(model).Where("id IN ?", ids)
	if organizationID != 0 {
		query = query.Where("organization_id = ?", organizationID)
	}
	var existing []uint
	if err := query.Pluck("id", &existing).Error; err != nil {
		return nil, err
	}
	for _, id := range existing {
		found[id] = true
	}
	return found, nil
}

// Upsert inserts or updates price rows keyed by (supplier_id, item_id).
func (r *SupplierItemRepository) Upsert(ctx context.Context, rows []supplierEntity.SupplierItem, batchSize int) error {
	if len(rows) == 0 {
		return nil
	}
	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "supplier_id"}, {Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"unit_price", "uom", "updated_at"}),
	}
	return r.db.WithContext(ctx).Clauses(upsert).CreateInBatches(rows, batchSize).Error
}
