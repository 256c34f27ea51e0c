package report

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"procurement.GO/core/auth"
	poEntity "procurement.GO/model/entity/purchaseorder"
	poRepo "procurement.GO/model/repository/purchaseorder"
	poService "procurement.GO/service/purchaseorder"
)

// ReceiptWindow is how far back Summary counts goods receipts.
const ReceiptWindow = 30 * 24 * time.Hour

// Summary is a point-in-time overview of an organization's purchase orders.
type Summary struct {
	OrganizationID uint                      `json:"organizationId"`
	ByStatus       map[poEntity.Status]int64 `json:"byStatus"`
	Total          int64                     `json:"total"`
	Overdue        int64                     `json:"overdue"`
	RecentReceipts int64                     `json:"recentReceipts"`
	GeneratedAt    time.Time                 `json:"generatedAt"`
}

type Service struct {
	repo *poRepo.PurchaseOrderRepository
}

func NewService(db *gorm.DB) *Service {
	return &Service{repo: poRepo.NewPurchaseOrderRepository(db)}
}

// Summary counts orders per status, overdue orders and receipts of the last ReceiptWindow.
// The three queries run concurrently.
func (s *Service) Summary(ctx context.Context, p auth.Principal, organizationID uint, now time.Time) (*Summary, error) {
	orgID, err := poService.ScopeOrganization(p, organizationID)
	if err != nil {
		return nil, err
	}

	var (
		byStatus map[poEntity.Status]int64
		overdue  int64
		receipts int64
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		byStatus, err = s.repo.CountByStatus(egCtx, orgID)
		return err
	})
	eg.Go(func() error {
		var err error
		overdue, err = s.repo.CountOverdue(egCtx, orgID, now)
		return err
	})
	eg.Go(func() error {
		var err error
		receipts, err = s.repo.CountReceiptsSince(egCtx, orgID, now.Add(-ReceiptWindow))
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sum := &Summary{
		OrganizationID: orgID,
		ByStatus:       make(map[poEntity.Status]int64, 5),
		Overdue:        overdue,
		RecentReceipts: receipts,
		GeneratedAt:    now,
	}
	for _, st := range []poEntity.Status{
		poEntity.StatusPending, poEntity.StatusOpen, poEntity.StatusCompleted,
		poEntity.StatusCancelled, poEntity.StatusRejected,
	} {
		sum.ByStatus[st] = byStatus[st]
		sum.Total += byStatus[st]
	}
	return sum, nil
}

// Overdue lists PENDING or OPEN orders of one organization whose expected date is before now.
func (s *Service) Overdue(ctx context.Context, p auth.Principal, organizationID uint, now time.Time) ([]poEntity.PurchaseOrder, error) {
	orgID, err := poService.ScopeOrganization(p, organizationID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindOverdue(ctx, orgID, now)
}

// OverdueByOrganization groups every overdue order by organization. Used by batch jobs.
func (s *Service) OverdueByOrganization(ctx context.Context, now time.Time) (map[uint][]poEntity.PurchaseOrder, error) {
	orders, err := s.repo.FindOverdue(ctx, 0, now)
	if err != nil {
		return nil, err
	}
	grouped := make(map[uint][]poEntity.PurchaseOrder)
	for _, po := range orders {
		grouped[po.OrganizationID] = append(grouped[po.OrganizationID], po)
	}
	return grouped, nil
}
