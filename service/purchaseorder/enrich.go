package purchaseorder

import (
	"github.com/shopspring/decimal"

	poEntity "procurement.GO/model/entity/purchaseorder"
	"procurement.GO/service/pricing"
)

// EnrichedItem is an order line with the supplier's current list price attached.
type EnrichedItem struct {
	poEntity.PurchaseOrderItem
	SupplierUnitPrice *decimal.Decimal `json:"supplierUnitPrice"`
}

// EnrichedOrder is a purchase order as returned by List.
type EnrichedOrder struct {
	poEntity.PurchaseOrder
	PurchaseOrderItems []EnrichedItem `json:"purchaseOrderItems"`
}

func enrich(orders []poEntity.PurchaseOrder, prices map[uint]pricing.ItemPrices) []EnrichedOrder {
	out := make([]EnrichedOrder, 0, len(orders))
	for _, po := range orders {
		items := make([]EnrichedItem, 0, len(po.PurchaseOrderItems))
		for _, line := range po.PurchaseOrderItems {
			ei := EnrichedItem{PurchaseOrderItem: line}
			if p, ok := pricing.Price(prices, po.SupplierID, line.ItemID); ok {
				price := p
				ei.SupplierUnitPrice = &price
			}
			items = append(items, ei)
		}
		po.PurchaseOrderItems = nil
		out = append(out, EnrichedOrder{PurchaseOrder: po, PurchaseOrderItems: items})
	}
	return out
}

func supplierIDs(orders []poEntity.PurchaseOrder) []uint {
	seen := make(map[uint]bool, len(orders))
	ids := make([]uint, 0, len(orders))
	for _, po := range orders {
		if !seen[po.SupplierID] {
			seen[po.SupplierID] = true
			ids = append(ids, po.SupplierID)
		}
	}
	return ids
}
