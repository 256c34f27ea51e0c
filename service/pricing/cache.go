package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"procurement.GO/core/cache"
)

const priceCacheTag = "supplier_prices"

// ItemPrices maps item id to the supplier's unit price.
type ItemPrices map[uint]decimal.Decimal

// PriceCache stores the price list of one supplier.
type PriceCache interface {
	Get(ctx context.Context, supplierID uint) (ItemPrices, bool)
	Set(ctx context.Context, supplierID uint, prices ItemPrices)
	Invalidate(ctx context.Context, supplierIDs ...uint)
}

func priceKey(supplierID uint) string {
	return fmt.Sprintf("%s:%d", priceCacheTag, supplierID)
}

// NewPriceCache picks Redis when a client is given, the in-process cache otherwise.
// A ttl of 0 disables caching and returns nil.
func NewPriceCache(ttl int64, rdb *redis.Client) PriceCache {
	if ttl <= 0 {
		return nil
	}
	if rdb != nil {
		return NewRedisPriceCache(rdb, ttl)
	}
	return NewMemoryPriceCache(cache.GetInstance(), ttl)
}

type MemoryPriceCache struct {
	c   *cache.Cache
	ttl int64
}

func NewMemoryPriceCache(c *cache.Cache, ttl int64) *MemoryPriceCache {
	return &MemoryPriceCache{c: c, ttl: ttl}
}

func (m *MemoryPriceCache) Get(_ context.Context, supplierID uint) (ItemPrices, bool) {
	v, ok := m.c.Get(priceKey(supplierID))
	if !ok {
		return nil, false
	}
	prices, ok := v.(ItemPrices)
	return prices, ok
}

func (m *MemoryPriceCache) Set(_ context.Context, supplierID uint, prices ItemPrices) {
	m.c.Set(priceKey(supplierID), prices, m.ttl, []string{priceCacheTag})
}

func (m *MemoryPriceCache) Invalidate(_ context.Context, supplierIDs ...uint) {
	if len(supplierIDs) == 0 {
		m.c.DeleteByTag(priceCacheTag)
		return
	}
	for _, id := range supplierIDs {
		m.c.Delete(priceKey(id))
	}
}

// RedisPriceCache keeps price lists as JSON so every instance shares them.
type RedisPriceCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisPriceCache(rdb *redis.Client, ttl int64) *RedisPriceCache {
	return &RedisPriceCache{rdb: rdb, ttl: time.Duration(ttl) * time.Second}
}

func (r *RedisPriceCache) Get(ctx context.Context, supplierID uint) (ItemPrices, bool) {
	raw, err := r.rdb.Get(ctx, priceKey(supplierID)).Bytes()
	if err != nil {
		return nil, false
	}
	var prices ItemPrices
	if err := json.Unmarshal(raw, &prices); err != nil {
		return nil, false
	}
	return prices, true
}

func (r *RedisPriceCache) Set(ctx context.Context, supplierID uint, prices ItemPrices) {
	raw, err := json.Marshal(prices)
	if err != nil {
		return
	}
	r.rdb.Set(ctx, priceKey(supplierID), raw, r.ttl)
}

// Invalidate drops the given suppliers. Without ids every cached price list is dropped.
func (r *RedisPriceCache) Invalidate(ctx context.Context, supplierIDs ...uint) {
	if len(supplierIDs) > 0 {
		keys := make([]string, 0, len(supplierIDs))
		for _, id := range supplierIDs {
			keys = append(keys, priceKey(id))
		}
		r.rdb.Del(ctx, keys...)
		return
	}
	iter := r.rdb.Scan(ctx, 0, priceCacheTag+":*", 100).Iterator()
	for iter.Next(ctx) {
		r.rdb.Del(ctx, iter.Val())
	}
}
