package purchaseorder

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"procurement.GO/core/auth"
	poEntity "procurement.GO/model/entity/purchaseorder"
	poRepo "procurement.GO/model/repository/purchaseorder"
	"procurement.GO/service/pricing"
)

const (
	orderNumberPrefix      = "PO-"
	orderNumberSpace       = 1_000_000
	orderNumberMaxAttempts = 5
)

// Indexer mirrors orders into a search index. Failures never fail the caller.
type Indexer interface {
	Index(ctx context.Context, po *poEntity.PurchaseOrder) error
	Delete(ctx context.Context, id uint) error
}

type noopIndexer struct{}

func (noopIndexer) Index(context.Context, *poEntity.PurchaseOrder) error { return nil }
func (noopIndexer) Delete(context.Context, uint) error                   { return nil }

// RandomOrderNumber returns "PO-" followed by a pseudo-random number in [0, 1000000).
func RandomOrderNumber() string {
	return fmt.Sprintf("%s%d", orderNumberPrefix, rand.Intn(orderNumberSpace))
}

// Service owns the purchase order lifecycle and the receiving workflow.
type Service struct {
	repo        *poRepo.PurchaseOrderRepository
	prices      *pricing.PriceLookup
	indexer     Indexer
	log         *zap.Logger
	orderNumber func() string
	now         func() time.Time
}

type Option func(*Service)

func WithIndexer(ix Indexer) Option {
	return func(s *Service) {
		if ix != nil {
			s.indexer = ix
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPriceLookup sets the lookup used to enrich List results, typically one backed by a PriceCache.
func WithPriceLookup(l *pricing.PriceLookup) Option {
	return func(s *Service) {
		if l != nil {
			s.prices = l
		}
	}
}

// WithOrderNumberGenerator replaces RandomOrderNumber.
func WithOrderNumberGenerator(gen func() string) Option {
	return func(s *Service) { s.orderNumber = gen }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(db *gorm.DB, opts ...Option) *Service {
	s := &Service{
		repo:        poRepo.NewPurchaseOrderRepository(db),
		prices:      pricing.NewPriceLookup(db, nil),
		indexer:     noopIndexer{},
		log:         zap.NewNop(),
		orderNumber: RandomOrderNumber,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func requireWriter(p auth.Principal) error {
	if !p.CanWrite() {
		return forbidden("insufficient permissions")
	}
	return nil
}

// load fetches an order and hides orders of other organizations behind ErrNotFound.
func (s *Service) load(ctx context.Context, p auth.Principal, id uint) (*poEntity.PurchaseOrder, error) {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, poRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !p.CanAccessOrganization(po.OrganizationID) {
		return nil, ErrNotFound
	}
	return po, nil
}

func (s *Service) index(ctx context.Context, po *poEntity.PurchaseOrder) {
	if err := s.indexer.Index(ctx, po); err != nil {
		s.log.Warn("index purchase order", zap.Uint("id", po.ID), zap.Error(err))
	}
}

// Create persists a new PENDING order with its lines. Line totals are quantity × unitPrice;
// totalAmount defaults to the sum of line totals.
func (s *Service) Create(ctx context.Context, p auth.Principal, in CreateInput) (*poEntity.PurchaseOrder, error) {
	if err := requireWriter(p); err != nil {
		return nil, err
	}
	orgID := p.OrganizationID
	if p.IsSuperAdmin() && in.OrganizationID != 0 {
		orgID = in.OrganizationID
	}
	if orgID == 0 {
		return nil, validationf("organizationId is required")
	}
	if in.SupplierID == 0 {
		return nil, validationf("supplierId is required")
	}
	if len(in.PurchaseOrderItems) == 0 {
		return nil, validationf("purchaseOrderItems must be a non-empty array")
	}

	lines := make([]poEntity.PurchaseOrderItem, 0, len(in.PurchaseOrderItems))
	total := decimal.Zero
	for i, li := range in.PurchaseOrderItems {
		if li.ItemID == 0 {
			return nil, validationf("purchaseOrderItems[%d].itemId is required", i)
		}
		if li.Quantity < 0 {
			return nil, validationf("purchaseOrderItems[%d].quantity must be >= 0", i)
		}
		lineTotal := decimal.NewFromFloat(li.Quantity).Mul(li.UnitPrice)
		total = total.Add(lineTotal)
		lines = append(lines, poEntity.PurchaseOrderItem{
			ItemID:     li.ItemID,
			Quantity:   li.Quantity,
			UnitPrice:  li.UnitPrice,
			TotalPrice: lineTotal,
			UOM:        li.UOM,
			ItemName:   li.ItemName,
		})
	}
	if in.TotalAmount != nil {
		total = *in.TotalAmount
	}

	orderDate := in.OrderDate
	if orderDate == nil {
		now := s.now()
		orderDate = &now
	}

	po := &poEntity.PurchaseOrder{
		OrganizationID:     orgID,
		SupplierID:         in.SupplierID,
		Status:             poEntity.StatusPending,
		TotalAmount:        decimal.NewNullDecimal(total),
		OrderDate:          orderDate,
		ExpectedDate:       in.ExpectedDate,
		ReceivedDate:       in.ReceivedDate,
		Remarks:            in.Remarks,
		CreatedBy:          p.ID,
		PurchaseOrderItems: lines,
	}
	if err := s.createWithOrderNumber(ctx, po); err != nil {
		return nil, err
	}
	s.index(ctx, po)
	return po, nil
}

// createWithOrderNumber draws order numbers until one is free. The unique index
// on order_number catches races between the existence check and the insert.
func (s *Service) createWithOrderNumber(ctx context.Context, po *poEntity.PurchaseOrder) error {
	for attempt := 1; attempt <= orderNumberMaxAttempts; attempt++ {
		number := s.orderNumber()
		taken, err := s.repo.OrderNumberExists(ctx, number)
		if err != nil {
			return err
		}
		if taken {
			s.log.Debug("order number collision", zap.String("orderNumber", number), zap.Int("attempt", attempt))
			continue
		}

		po.OrderNumber = number
		err = s.repo.Create(ctx, po)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		s.log.Debug("order number collision on insert", zap.String("orderNumber", number), zap.Int("attempt", attempt))
		po.ID = 0
		for i := range po.PurchaseOrderItems {
			po.PurchaseOrderItems[i].ID = 0
			po.PurchaseOrderItems[i].PurchaseOrderID = 0
		}
	}
	return ErrOrderNumberExhausted
}

// ScopeOrganization resolves which organization a read may target. Super admins must name
// one; everyone else is pinned to their own and is refused any other.
func ScopeOrganization(p auth.Principal, requested uint) (uint, error) {
	if p.IsSuperAdmin() {
		if requested == 0 {
			return 0, validationf("organizationId is required")
		}
		return requested, nil
	}
	if requested != 0 && requested != p.OrganizationID {
		return 0, forbidden("access to this organization is not allowed")
	}
	return p.OrganizationID, nil
}

// List returns the orders of one organization, newest first, with every line carrying
// the supplier's list price as supplierUnitPrice (nil when the supplier has none).
func (s *Service) List(ctx context.Context, p auth.Principal, in ListInput) ([]EnrichedOrder, error) {
	orgID, err := ScopeOrganization(p, in.OrganizationID)
	if err != nil {
		return nil, err
	}
	status := poEntity.Status(in.Status)
	if status != "" && !status.Valid() {
		return nil, validationf("invalid status %q", in.Status)
	}

	orders, err := s.repo.FindAll(ctx, poRepo.ListFilter{OrganizationID: orgID, Status: status})
	if err != nil {
		return nil, err
	}
	prices, err := s.prices.SupplierPrices(ctx, supplierIDs(orders))
	if err != nil {
		return nil, err
	}
	return enrich(orders, prices), nil
}

// Get returns one order with its lines, without price enrichment.
func (s *Service) Get(ctx context.Context, p auth.Principal, id uint) (*poEntity.PurchaseOrder, error) {
	return s.load(ctx, p, id)
}

// Update writes the given fields verbatim. Status changes are not checked against
// the lifecycle; only unknown status values are rejected.
func (s *Service) Update(ctx context.Context, p auth.Principal, id uint, in UpdateInput) (*poEntity.PurchaseOrder, error) {
	if err := requireWriter(p); err != nil {
		return nil, err
	}
	if _, err := s.load(ctx, p, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Status != nil {
		status := poEntity.Status(*in.Status)
		if !status.Valid() {
			return nil, validationf("invalid status %q", *in.Status)
		}
		fields["status"] = status
	}
	if in.ExpectedDate != nil {
		fields["expected_date"] = *in.ExpectedDate
	}
	if in.ReceivedDate != nil {
		fields["received_date"] = *in.ReceivedDate
	}
	if in.TotalAmount != nil {
		fields["total_amount"] = *in.TotalAmount
	}
	if in.Remarks != nil {
		fields["remarks"] = *in.Remarks
	}
	updatedBy := p.ID
	if in.UpdatedBy != nil {
		updatedBy = *in.UpdatedBy
	}
	fields["updated_by"] = updatedBy

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	// Re-read through load so a concurrent delete surfaces as ErrNotFound.
	po, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	s.index(ctx, po)
	return po, nil
}

// Delete hard-deletes the order, its lines and its receipts.
func (s *Service) Delete(ctx context.Context, p auth.Principal, id uint) error {
	if err := requireWriter(p); err != nil {
		return err
	}
	if _, err := s.load(ctx, p, id); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	if err := s.indexer.Delete(ctx, id); err != nil {
		s.log.Warn("remove purchase order from index", zap.Uint("id", id), zap.Error(err))
	}
	return nil
}

// ListReceipts returns the goods receipt notes recorded for an order, newest first.
func (s *Service) ListReceipts(ctx context.Context, p auth.Principal, id uint) ([]poEntity.GoodsReceiptNote, error) {
	if _, err := s.load(ctx, p, id); err != nil {
		return nil, err
	}
	return s.repo.FindReceipts(ctx, id)
}
