package api

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"procurement.GO/search"
	"procurement.GO/service/pricing"
	poService "procurement.GO/service/purchaseorder"
	"procurement.GO/service/report"
)

// Deps is what route modules are wired with.
type Deps struct {
	DB             *gorm.DB
	Log            *zap.Logger
	PurchaseOrders *poService.Service
	Reports        *report.Service
	Prices         *pricing.PriceLookup
	// Search is nil when Elasticsearch is not configured.
	Search *search.ElasticIndexer
}

// NewDeps builds services over db. Options are passed to the purchase order service.
func NewDeps(db *gorm.DB, log *zap.Logger, prices *pricing.PriceLookup, opts ...poService.Option) *Deps {
	if log == nil {
		log = zap.NewNop()
	}
	if prices == nil {
		prices = pricing.NewPriceLookup(db, nil)
	}
	opts = append([]poService.Option{poService.WithLogger(log), poService.WithPriceLookup(prices)}, opts...)
	return &Deps{
		DB:             db,
		Log:            log,
		PurchaseOrders: poService.NewService(db, opts...),
		Reports:        report.NewService(db),
		Prices:         prices,
	}
}
