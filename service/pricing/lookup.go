package pricing

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	supplierRepo "procurement.GO/model/repository/supplier"
)

// PriceLookup resolves supplier price lists for many suppliers at once.
type PriceLookup struct {
	repo  *supplierRepo.SupplierItemRepository
	cache PriceCache
}

// NewPriceLookup creates a lookup; cache may be nil.
func NewPriceLookup(db *gorm.DB, cache PriceCache) *PriceLookup {
	return &PriceLookup{repo: supplierRepo.NewSupplierItemRepository(db), cache: cache}
}

// SupplierPrices returns supplierID -> itemID -> unit price. Suppliers without any
// price row map to an empty ItemPrices. Cache misses are loaded in a single query.
func (l *PriceLookup) SupplierPrices(ctx context.Context, supplierIDs []uint) (map[uint]ItemPrices, error) {
	result := make(map[uint]ItemPrices, len(supplierIDs))
	missing := make([]uint, 0, len(supplierIDs))
	for _, id := range supplierIDs {
		if _, seen := result[id]; seen {
			continue
		}
		if l.cache != nil {
			if prices, ok := l.cache.Get(ctx, id); ok {
				result[id] = prices
				continue
			}
		}
		result[id] = nil
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return result, nil
	}

	rows, err := l.repo.FindBySuppliers(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, id := range missing {
		result[id] = ItemPrices{}
	}
	for _, row := range rows {
		result[row.SupplierID][row.ItemID] = row.UnitPrice
	}
	if l.cache != nil {
		for _, id := range missing {
			l.cache.Set(ctx, id, result[id])
		}
	}
	return result, nil
}

// Price returns the unit price of item for supplier from a SupplierPrices result.
func Price(prices map[uint]ItemPrices, supplierID, itemID uint) (decimal.Decimal, bool) {
	p, ok := prices[supplierID][itemID]
	return p, ok
}

// Invalidate forgets cached price lists of the given suppliers.
func (l *PriceLookup) Invalidate(ctx context.Context, supplierIDs ...uint) {
	if l.cache != nil {
		l.cache.Invalidate(ctx, supplierIDs...)
	}
}
