package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/SallyAnnCreed/Costing-App/internal/model"
	"github.com/SallyAnnCreed/Costing-App/internal/repository"
)

// CatalogProvider hands out catalog snapshots for cost resolution. The
// propagator resolves every soft reference through this, so catalog reads can
// be cached; writes must call Invalidate for the touched collection.
type CatalogProvider interface {
	Labels(ctx context.Context) ([]model.Label, error)
	Packaging(ctx context.Context) ([]model.Packaging, error)
	RawMaterials(ctx context.Context) ([]model.RawMaterial, error)
	Invalidate(ctx context.Context, collection string)
}

const (
	labelsCacheKey       = "catalog:labels"
	packagingCacheKey    = "catalog:packaging"
	rawMaterialsCacheKey = "catalog:raw_materials"
)

// catalogCache is a read-through cache over the three catalog repositories.
// Redis errors degrade to direct repository reads — the cache is an
// optimization, never a source of truth.
type catalogCache struct {
	labels       repository.LabelRepository
	packaging    repository.PackagingRepository
	rawMaterials repository.RawMaterialRepository
	rdb          *redis.Client
	ttl          time.Duration
}

func NewCatalogCache(
	labels repository.LabelRepository,
	packaging repository.PackagingRepository,
	rawMaterials repository.RawMaterialRepository,
	rdb *redis.Client,
	ttl time.Duration,
) CatalogProvider {
	return &catalogCache{
		labels:       labels,
		packaging:    packaging,
		rawMaterials: rawMaterials,
		rdb:          rdb,
		ttl:          ttl,
	}
}

func (c *catalogCache) Labels(ctx context.Context) ([]model.Label, error) {
	var cached []model.Label
	if c.readCache(ctx, labelsCacheKey, &cached) {
		return cached, nil
	}
	labels, err := c.labels.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	c.writeCache(ctx, labelsCacheKey, labels)
	return labels, nil
}

func (c *catalogCache) Packaging(ctx context.Context) ([]model.Packaging, error) {
	var cached []model.Packaging
	if c.readCache(ctx, packagingCacheKey, &cached) {
		return cached, nil
	}
	entries, err := c.packaging.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	c.writeCache(ctx, packagingCacheKey, entries)
	return entries, nil
}

func (c *catalogCache) RawMaterials(ctx context.Context) ([]model.RawMaterial, error) {
	var cached []model.RawMaterial
	if c.readCache(ctx, rawMaterialsCacheKey, &cached) {
		return cached, nil
	}
	materials, err := c.rawMaterials.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	c.writeCache(ctx, rawMaterialsCacheKey, materials)
	return materials, nil
}

// Invalidate drops the cached snapshot for a collection. Called after every
// catalog write so the next resolution re-reads the store.
func (c *catalogCache) Invalidate(ctx context.Context, collection string) {
	if c.rdb == nil {
		return
	}
	key := "catalog:" + collection
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("catalog cache invalidation failed")
	}
}

func (c *catalogCache) readCache(ctx context.Context, key string, dest interface{}) bool {
	if c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("catalog cache entry corrupt — dropping")
		c.rdb.Del(ctx, key)
		return false
	}
	return true
}

func (c *catalogCache) writeCache(ctx context.Context, key string, value interface{}) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
	}
}
