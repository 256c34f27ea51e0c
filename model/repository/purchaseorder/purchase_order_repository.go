package purchaseorder

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	poEntity "procurement.GO/model/entity/purchaseorder"
)

var ErrNotFound = errors.New("record not found")

// ListFilter narrows FindAll. Zero values mean "any".
type ListFilter struct {
	OrganizationID uint
	Status         poEntity.Status
}

type PurchaseOrderRepository struct {
	db *gorm.DB
}

func NewPurchaseOrderRepository(db *gorm.DB) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{db: db}
}

// Transaction runs fn with a repository bound to a single DB transaction.
func (r *PurchaseOrderRepository) Transaction(ctx context.Context, fn func(tx *PurchaseOrderRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PurchaseOrderRepository{db: tx})
	})
}

func preloadLines(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// Create inserts the order together with its lines.
func (r *PurchaseOrderRepository) Create(ctx context.Context, po *poEntity.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(po).Error
}

// OrderNumberExists reports whether an order already uses number.
func (r *PurchaseOrderRepository) OrderNumberExists(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&poEntity.PurchaseOrder{}).
		Where("order_number = ?", number).
		Count(&count).Error
	return count > 0, err
}

// FindByID returns the order with its lines ordered by line id.
func (r *PurchaseOrderRepository) FindByID(ctx context.Context, id uint) (*poEntity.PurchaseOrder, error) {
	return r.findByID(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate is FindByID with a row lock on the order (SELECT ... FOR UPDATE).
// Call inside Transaction.
func (r *PurchaseOrderRepository) FindByIDForUpdate(ctx context.Context, id uint) (*poEntity.PurchaseOrder, error) {
	return r.findByID(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *PurchaseOrderRepository) findByID(db *gorm.DB, id uint) (*poEntity.PurchaseOrder, error) {
	var po poEntity.PurchaseOrder
	err := db.Preload("PurchaseOrderItems", preloadLines).
		Where("id = ?", id).
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &po, nil
}

// FindAll returns matching orders, newest first, with their lines.
func (r *PurchaseOrderRepository) FindAll(ctx context.Context, filter ListFilter) ([]poEntity.PurchaseOrder, error) {
	query := r.db.WithContext(ctx).Model(&poEntity.PurchaseOrder{})
	if filter.OrganizationID != 0 {
		query = query.Where("organization_id = ?", filter.OrganizationID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var orders []poEntity.PurchaseOrder
	err := query.
		Preload("PurchaseOrderItems", preloadLines).
		Order("id DESC").
		Find(&orders).Error
	return orders, err
}

// Update writes the given columns verbatim.
func (r *PurchaseOrderRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&poEntity.PurchaseOrder{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// SetReceivedQuantity overwrites the received quantity of one line.
func (r *PurchaseOrderRepository) SetReceivedQuantity(ctx context.Context, lineID uint, qty float64) error {
	return r.db.WithContext(ctx).Model(&poEntity.PurchaseOrderItem{}).
		Where("id = ?", lineID).
		Update("received_quantity", qty).Error
}

// Delete removes the order and its lines. Returns false when the order did not exist.
func (r *PurchaseOrderRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_order_id = ?", id).Delete(&poEntity.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("purchase_order_id = ?", id).Delete(&poEntity.GoodsReceiptNote{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&poEntity.PurchaseOrder{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func (r *PurchaseOrderRepository) CreateReceipt(ctx context.Context, grn *poEntity.GoodsReceiptNote) error {
	return r.db.WithContext(ctx).Create(grn).Error
}

// FindReceipts returns the goods receipt notes of an order, newest first.
func (r *PurchaseOrderRepository) FindReceipts(ctx context.Context, purchaseOrderID uint) ([]poEntity.GoodsReceiptNote, error) {
	var notes []poEntity.GoodsReceiptNote
	err := r.db.WithContext(ctx).
		Where("purchase_order_id = ?", purchaseOrderID).
		Order("id DESC").
		Find(&notes).Error
	return notes, err
}

// CountByStatus returns the number of orders per status for an organization.
func (r *PurchaseOrderRepository) CountByStatus(ctx context.Context, organizationID uint) (map[poEntity.Status]int64, error) {
	type statusRow struct {
		Status poEntity.Status `gorm:"column:status"`
		Cnt    int64           `gorm:"column:cnt"`
	}
	var rows []statusRow
	err := r.db.WithContext(ctx).Model(&poEntity.PurchaseOrder{}).
		Select("status, COUNT(*) AS cnt").
		Where("organization_id = ?", organizationID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[poEntity.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Cnt
	}
	return counts, nil
}

func overdueScope(organizationID uint, now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("expected_date IS NOT NULL AND expected_date < ?", now).
			Where("status IN ?", []poEntity.Status{poEntity.StatusPending, poEntity.StatusOpen})
		if organizationID != 0 {
			db = db.Where("organization_id = ?", organizationID)
		}
		return db
	}
}

// CountOverdue counts open or pending orders whose expected date has passed.
// organizationID 0 counts across all organizations.
func (r *PurchaseOrderRepository) CountOverdue(ctx context.Context, organizationID uint, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&poEntity.PurchaseOrder{}).
		Scopes(overdueScope(organizationID, now)).
		Count(&count).Error
	return count, err
}

// FindOverdue lists overdue orders, oldest expected date first.
func (r *PurchaseOrderRepository) FindOverdue(ctx context.Context, organizationID uint, now time.Time) ([]poEntity.PurchaseOrder, error) {
	var orders []poEntity.PurchaseOrder
	err := r.db.WithContext(ctx).
		Scopes(overdueScope(organizationID, now)).
		Order("expected_date ASC").
		Find(&orders).Error
	return orders, err
}

// CountReceiptsSince counts goods receipt notes of an organization created at or after since.
func (r *PurchaseOrderRepository) CountReceiptsSince(ctx context.Context, organizationID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&poEntity.GoodsReceiptNote{}).
		Joins("JOIN purchase_orders ON purchase_orders.id = goods_receipt_notes.purchase_order_id").
		Where("purchase_orders.organization_id = ?", organizationID).
		Where("goods_receipt_notes.created_at >= ?", since).
		Count(&count).Error
	return count, err
}
