package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// CachedCatalog is a redis read-through decorator over another Catalog.
type CachedCatalog struct {
	next    Catalog
	client  *redis.Client
	baseTTL time.Duration
	sfg     singleflight.Group // Prevents cache stampede
}

func NewCachedCatalog(next Catalog, client *redis.Client) *CachedCatalog {
	return &CachedCatalog{
		next:    next,
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

func (c *CachedCatalog) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := c.sfg.Do(id, func() (interface{}, error) {
		product, err := c.cacheGet(ctx, id)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			slog.Warn("catalog cache get failed", "product_id", id, "error", err)
		}

		product, errGet := c.next.GetByID(ctx, id)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := c.cacheSet(context.Background(), product); errSet != nil {
				slog.Warn("catalog cache set failed", "product_id", id, "error", errSet)
			}
		}()

		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

func (c *CachedCatalog) List(ctx context.Context) ([]domain.Product, error) {
	return c.next.List(ctx)
}

func (c *CachedCatalog) cacheGet(ctx context.Context, id string) (*domain.Product, error) {
	data, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var product domain.Product
	if err2 := json.Unmarshal(data, &product); err2 != nil {
		return nil, fmt.Errorf("unmarshal product failed: %w", err2)
	}
	return &product, nil
}

func (c *CachedCatalog) cacheSet(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(5)) * time.Minute
	if errSet := c.client.Set(ctx, cacheKey(product.ID), data, c.baseTTL+jitter).Err(); errSet != nil {
		return fmt.Errorf("redis set failed: %w", errSet)
	}
	return nil
}

func cacheKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}
