package api

import (
	"testing"

	"go.uber.org/zap"

	"procurement.GO/config"
	"procurement.GO/model/modeltest"
)

func TestNewDepsFromConfig_WithoutSearch(t *testing.T) {
	db := modeltest.NewDB(t)
	deps := NewDepsFromConfig(&config.Config{PriceCacheTTL: 60}, db, zap.NewNop(), nil)
	if deps.Search != nil {
		t.Error("Search should be nil without ELASTICSEARCH_HOST")
	}
	if deps.PurchaseOrders == nil || deps.Reports == nil || deps.Prices == nil {
		t.Errorf("deps not wired: %+v", deps)
	}
}

func TestNewDepsFromConfig_WithSearch(t *testing.T) {
	db := modeltest.NewDB(t)
	deps := NewDepsFromConfig(&config.Config{ElasticsearchHost: "http://localhost:9200", ElasticsearchPrefix: "test"}, db, zap.NewNop(), nil)
	if deps.Search == nil {
		t.Error("Search should be wired when ELASTICSEARCH_HOST is set")
	}
}
