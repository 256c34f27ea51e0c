package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"procurement.GO/core/auth"
	poEntity "procurement.GO/model/entity/purchaseorder"
	"procurement.GO/model/modeltest"
	poService "procurement.GO/service/purchaseorder"
)

var manager = auth.Principal{ID: 3, Role: auth.RoleManager, OrganizationID: 1}

func TestSummaryAndOverdue(t *testing.T) {
	db := modeltest.NewDB(t)
	ctx := context.Background()
	supplier := modeltest.SeedSupplier(t, db, 1, "Acme")
	item := modeltest.SeedItem(t, db, 1, "SKU-1")
	orders := poService.NewService(db)

	now := time.Now()
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)
	create := func(expected time.Time) *poEntity.PurchaseOrder {
		po, err := orders.Create(ctx, manager, poService.CreateInput{
			SupplierID:   supplier.ID,
			ExpectedDate: &expected,
			PurchaseOrderItems: []poService.LineInput{
				{ItemID: item.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(4)},
			},
		})
		require.NoError(t, err)
		return po
	}

	late := create(past)
	create(future)
	done := create(past)
	_, err := orders.Receive(ctx, manager, done.ID, poService.ReceiveInput{
		ReceivedItems: []poEntity.ReceivedLine{{ItemID: done.PurchaseOrderItems[0].ID, ReceivedQuantity: 2}},
	})
	require.NoError(t, err)

	reports := NewService(db)
	sum, err := reports.Summary(ctx, manager, 0, now)
	require.NoError(t, err)
	require.Equal(t, uint(1), sum.OrganizationID)
	require.Equal(t, int64(3), sum.Total)
	require.Equal(t, int64(2), sum.ByStatus[poEntity.StatusPending])
	require.Equal(t, int64(1), sum.ByStatus[poEntity.StatusCompleted])
	require.Equal(t, int64(0), sum.ByStatus[poEntity.StatusCancelled])
	require.Equal(t, int64(1), sum.Overdue)
	require.Equal(t, int64(1), sum.RecentReceipts)

	overdue, err := reports.Overdue(ctx, manager, 0, now)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	require.Equal(t, late.ID, overdue[0].ID)

	grouped, err := reports.OverdueByOrganization(ctx, now)
	require.NoError(t, err)
	require.Len(t, grouped[1], 1)
}

func TestSummary_Scoping(t *testing.T) {
	db := modeltest.NewDB(t)
	reports := NewService(db)
	ctx := context.Background()

	_, err := reports.Summary(ctx, auth.Principal{Role: auth.RoleSuperAdmin}, 0, time.Now())
	require.ErrorIs(t, err, poService.ErrValidation)

	_, err = reports.Summary(ctx, manager, 2, time.Now())
	require.ErrorIs(t, err, poService.ErrForbidden)
}
