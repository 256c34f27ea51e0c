package purchaseorder

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"procurement.GO/core/auth"
	poEntity "procurement.GO/model/entity/purchaseorder"
	poRepo "procurement.GO/model/repository/purchaseorder"
)

func newGRNNumber() string {
	return "GRN-" + strings.ToUpper(uuid.NewString())
}

// Receive records delivered quantities against order lines and advances the status.
//
// Each pair overwrites the line's receivedQuantity; pairs naming an unknown line are
// ignored. PENDING moves to OPEN, and any status moves to COMPLETED (with receivedDate
// set) once every line has receivedQuantity >= quantity. The whole call runs in one
// transaction holding a row lock on the order, so it either applies fully or not at all.
func (s *Service) Receive(ctx context.Context, p auth.Principal, id uint, in ReceiveInput) (poEntity.Status, error) {
	if err := requireWriter(p); err != nil {
		return "", err
	}
	for i, rl := range in.ReceivedItems {
		if rl.ReceivedQuantity < 0 {
			return "", validationf("receivedItems[%d].receivedQuantity must be >= 0", i)
		}
	}
	receivedDate := s.now()
	if in.ReceivedDate != nil {
		receivedDate = *in.ReceivedDate
	}

	var po *poEntity.PurchaseOrder
	err := s.repo.Transaction(ctx, func(tx *poRepo.PurchaseOrderRepository) error {
		var err error
		po, err = tx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, poRepo.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !p.CanAccessOrganization(po.OrganizationID) {
			return ErrNotFound
		}
		if po.Status.Terminal() {
			return validationf("cannot receive a %s purchase order", po.Status)
		}

		applied := make([]poEntity.ReceivedLine, 0, len(in.ReceivedItems))
		for _, rl := range in.ReceivedItems {
			line := po.LineByID(rl.ItemID)
			if line == nil {
				continue
			}
			qty := rl.ReceivedQuantity
			line.ReceivedQuantity = &qty
			if err := tx.SetReceivedQuantity(ctx, line.ID, qty); err != nil {
				return err
			}
			applied = append(applied, rl)
		}

		fields := map[string]interface{}{"updated_by": p.ID}
		if po.Status == poEntity.StatusPending {
			po.Status = poEntity.StatusOpen
		}
		if po.FullyReceived() {
			po.Status = poEntity.StatusCompleted
			po.ReceivedDate = &receivedDate
			fields["received_date"] = receivedDate
		}
		fields["status"] = po.Status
		if err := tx.Update(ctx, po.ID, fields); err != nil {
			return err
		}

		return tx.CreateReceipt(ctx, &poEntity.GoodsReceiptNote{
			PurchaseOrderID: po.ID,
			GRNNumber:       newGRNNumber(),
			ReceivedDate:    &receivedDate,
			ReceivedBy:      p.ID,
			Lines:           applied,
			StatusAfter:     po.Status,
		})
	})
	if err != nil {
		return "", err
	}

	s.log.Info("purchase order received",
		zap.Uint("id", po.ID),
		zap.String("status", string(po.Status)),
		zap.Int("lines", len(in.ReceivedItems)),
	)
	s.index(ctx, po)
	return po.Status, nil
}
