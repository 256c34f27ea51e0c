package purchaseorder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	poEntity "procurement.GO/model/entity/purchaseorder"
)

func lines(po *poEntity.PurchaseOrder) (uint, uint) {
	return po.PurchaseOrderItems[0].ID, po.PurchaseOrderItems[1].ID
}

func TestReceive_FullReceiptCompletes(t *testing.T) {
	f := newFixture(t)
	po := f.createOrder(t)
	l1, l2 := lines(po)
	when := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	status, err := f.svc.Receive(context.Background(), admin, po.ID, ReceiveInput{
		ReceivedItems: []poEntity.ReceivedLine{{ItemID: l1, ReceivedQuantity: 5}, {ItemID: l2, ReceivedQuantity: 3}},
		ReceivedDate:  &when,
	})
	require.NoError(t, err)
	require.Equal(t, poEntity.StatusCompleted, status)

	got, err := f.svc.Get(context.Background(), admin, po.ID)
	require.NoError(t, err)
	require.Equal(t, poEntity.StatusCompleted, got.Status)
	require.NotNil(t, got.ReceivedDate)
	require.True(t, when.Equal(*got.ReceivedDate))
	require.Equal(t, 5.0, *got.PurchaseOrderItems[0].ReceivedQuantity)
	require.Equal(t, 3.0, *got.PurchaseOrderItems[1].ReceivedQuantity)
}

func TestReceive_PartialReceiptOpens(t *testing.T) {
	f := newFixture(t)
	po := f.createOrder(t)
	l1, _ := lines(po)

	status, err := f.svc.Receive(context.Background(), admin, po.ID, ReceiveInput{
		ReceivedItems: []poEntity.ReceivedLine{{ItemID: l1, ReceivedQuantity: 5}},
	})
	require.NoError(t, err)
	require.Equal(t, poEntity.StatusOpen, status)

	got, err := f.svc.Get(context.Background(), admin, po.ID)
	require.NoError(t, err)
	require.Equal(t, poEntity.StatusOpen, got.Status)
	require.Nil(t, got.ReceivedDate)
	require.Equal(t, 5.0, *got.PurchaseOrderItems[0].ReceivedQuantity)
	require.Nil(t, got.PurchaseOrderItems[1].ReceivedQuantity)
}

func TestReceive_OverwritesInsteadOfAccumulating(t *testing.T) {
	f := newFixture(t)
	po := f.createOrder(t)
	l1, _ := lines(po)
	ctx := context.Background()
	in := ReceiveInput{ReceivedItems: []poEntity.ReceivedLine{{ItemID: l1, ReceivedQuantity: 2}}}

	first, err := f.svc.Receive(ctx, admin, po.ID, in)
	require.NoError(t, err)
	second, err := f.svc.Receive(ctx, admin, po.ID, in)
	require.NoError(t, err)
	require.Equal(t, first, second)

	got, err := f.svc.Get(ctx, admin, po.ID)
	require.NoError(t, err)
	require.Equal(t, 2.0, *got.PurchaseOrderItems[0].ReceivedQuantity)
}

func TestReceive_TerminalStatusRejectedWithoutChanges(t *testing.T) {
	for _, terminal := range []string{"CANCELLED", "REJECTED"} {
		t.Run(terminal, func(t *testing.T) {
			f := newFixture(t)
			po := f.createOrder(t)
			l1, l2 := lines(po)
			ctx := context.Background()
			status := terminal
			_, err := f.svc.Update(ctx, admin, po.ID, UpdateInput{Status: &status})
			require.NoError(t, err)

			_, err = f.svc.Receive(ctx, admin, po.ID, ReceiveInput{
				ReceivedItems: []poEntity.ReceivedLine{{ItemID: l1, ReceivedQuantity: 5}, {ItemID: l2, ReceivedQuantity: 3}},
			})
			require.ErrorIs(t, err, ErrValidation)

			got, err := f.svc.Get(ctx, admin, po.ID)
			require.NoError(t, err)
			require.Equal(t, poEntity.Status(terminal), got.Status)
			for _, line := range got.PurchaseOrderItems {
				require.Nil(t, line.ReceivedQuantity)
			}
			receipts, err := f.svc.ListReceipts(ctx, admin, po.ID)
			require.NoError(t, err)
			require.Empty(t, receipts)
		})
	}
}

func TestReceive_CompletedStaysCompletedOnPartialOverwrite(t *testing.T) {
	f := newFixture(t)
	po := f.createOrder(t)
	l1, l2 := lines(po)
	ctx := context.Background()

	_, err := f.svc.Receive(ctx, admin, po.ID, ReceiveInput{
		ReceivedItems: []poEntity.ReceivedLine{{ItemID: l1, ReceivedQuantity: 5}, {ItemID: l2, ReceivedQuantity: 3}},
	})
	require.NoError(t, err)

	status, err := f.svc.Receive(ctx, admin, po.ID, ReceiveInput{
		ReceivedItems: []poEntity.ReceivedLine{{ItemID: l2, ReceivedQuantity: 1}},
	})
	require.NoError(t, err)
	require.Equal(t, poEntity.StatusCompleted, status)
}

func TestReceive_UnknownLinesIgnoredAndOverReceiptAllowed(t *testing.T) {
	f := newFixture(t)
	po := f.createOrder(t)
	l1, l2 := lines(po)

	status, err := f.svc.Receive(context.Background(), admin, po.ID, ReceiveInput{
		ReceivedItems: []poEntity.ReceivedLine{
			{ItemID: 424242, ReceivedQuantity: 1},
			{ItemID: l1, ReceivedQuantity: 50},
			{ItemID: l2, ReceivedQuantity: 3},
		},
	})
	require.NoError(t, err)
	require.Equal(t, poEntity.StatusCompleted, status)

	receipts, err := f.svc.ListReceipts(context.Background(), admin, po.ID)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	require.Len(t, receipts[0].Lines, 2)
	require.Equal(t, poEntity.StatusCompleted, receipts[0].StatusAfter)
	require.Regexp(t, `^GRN-[0-9A-F-]{36}$`, receipts[0].GRNNumber)
}

func TestReceive_Errors(t *testing.T) {
	f := newFixture(t)
	po := f.createOrder(t)
	l1, _ := lines(po)
	ctx := context.Background()

	_, err := f.svc.Receive(ctx, admin, 9999, ReceiveInput{})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Receive(ctx, otherOrg, po.ID, ReceiveInput{})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Receive(ctx, viewer, po.ID, ReceiveInput{})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Receive(ctx, admin, po.ID, ReceiveInput{
		ReceivedItems: []poEntity.ReceivedLine{{ItemID: l1, ReceivedQuantity: -1}},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestReceive_DefaultsReceivedDateToNow(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f := newFixture(t, WithClock(func() time.Time { return fixed }))
	po := f.createOrder(t)
	l1, l2 := lines(po)

	_, err := f.svc.Receive(context.Background(), admin, po.ID, ReceiveInput{
		ReceivedItems: []poEntity.ReceivedLine{{ItemID: l1, ReceivedQuantity: 5}, {ItemID: l2, ReceivedQuantity: 3}},
	})
	require.NoError(t, err)

	got, err := f.svc.Get(context.Background(), admin, po.ID)
	require.NoError(t, err)
	require.True(t, fixed.Equal(*got.ReceivedDate))
}
