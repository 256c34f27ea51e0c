package api

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"procurement.GO/config"
	"procurement.GO/search"
	"procurement.GO/service/pricing"
	poService "procurement.GO/service/purchaseorder"
)

// NewDepsFromConfig wires the price cache (Redis when rdb is set, memory otherwise)
// and, when ELASTICSEARCH_HOST is configured, the search indexer.
func NewDepsFromConfig(cfg *config.Config, db *gorm.DB, log *zap.Logger, rdb *redis.Client) *Deps {
	prices := pricing.NewPriceLookup(db, pricing.NewPriceCache(cfg.PriceCacheTTL, rdb))

	var opts []poService.Option
	var indexer *search.ElasticIndexer
	if cfg.ElasticsearchHost != "" {
		ix, err := search.NewElasticIndexer(cfg.ElasticsearchHost, cfg.ElasticsearchPrefix)
		if err != nil {
			log.Warn("elasticsearch disabled", zap.Error(err))
		} else {
			indexer = ix
			opts = append(opts, poService.WithIndexer(ix))
			log.Info("elasticsearch indexing enabled", zap.String("index", search.IndexName(cfg.ElasticsearchPrefix)))
		}
	}

	deps := NewDeps(db, log, prices, opts...)
	deps.Search = indexer
	return deps
}
