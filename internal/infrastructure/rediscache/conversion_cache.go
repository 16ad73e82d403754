package rediscache

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jpabloc/gestion-comercial/internal/application/units"
)

var _ units.ConversionCache = (*ConversionCache)(nil)

// ConversionCache cachea factores de conversión en Redis. Las claves se
// agrupan por producto en un hash para poder invalidar todas las unidades
// de un producto con un solo DEL al re-registrar sus conversiones.
type ConversionCache struct {
	client *redis.Client
}

// NewConversionCache construye el cache contra un Redis.
func NewConversionCache(addr, password string, db int) *ConversionCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &ConversionCache{client: client}
}

func (c *ConversionCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *ConversionCache) Close() error {
	return c.client.Close()
}

func productKey(productID string) string {
	return "unitfactor:" + productID
}

func (c *ConversionCache) GetFactor(ctx context.Context, productID, unitID string) (decimal.Decimal, bool, error) {
	val, err := c.client.HGet(ctx, productKey(productID), unitID).Result()
	if err == redis.Nil {
		return decimal.Decimal{}, false, nil
	}
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	factor, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	return factor, true, nil
}

func (c *ConversionCache) SetFactor(ctx context.Context, productID, unitID string, factor decimal.Decimal, ttl time.Duration) error {
	key := productKey(productID)
	if err := c.client.HSet(ctx, key, unitID, factor.String()).Err(); err != nil {
		return err
	}
	return c.client.Expire(ctx, key, ttl).Err()
}

func (c *ConversionCache) InvalidateProduct(ctx context.Context, productID string) error {
	return c.client.Del(ctx, productKey(productID)).Err()
}
