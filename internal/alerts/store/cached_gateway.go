package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"stockwatch-system/internal/alerts"
)

const (
	COMPANY_CACHE_PREFIX = "alerts:company:"
	CACHE_TTL_SHORT      = 5 * time.Minute
	CACHE_TTL_MEDIUM     = 30 * time.Minute
)

// CachedGateway caches company lookups in Redis. Alert lists and summaries
// themselves are never cached; they are computed fresh on every request.
// Cache failures degrade to the underlying gateway, never to an error.
type CachedGateway struct {
	alerts.Gateway
	redis *redis.Client
}

func NewCachedGateway(gw alerts.Gateway, redisClient *redis.Client) *CachedGateway {
	return &CachedGateway{Gateway: gw, redis: redisClient}
}

func (c *CachedGateway) GetCompany(ctx context.Context, companyID int64) (*alerts.CompanyRecord, error) {
	cacheKey := fmt.Sprintf("%s%d", COMPANY_CACHE_PREFIX, companyID)

	raw, err := c.redis.Get(ctx, cacheKey).Result()
	if err == nil {
		var record alerts.CompanyRecord
		if jsonErr := json.Unmarshal([]byte(raw), &record); jsonErr == nil {
			return &record, nil
		}
	} else if err != redis.Nil {
		log.Warn().Err(err).Int64("company_id", companyID).Msg("company cache read failed")
	}

	record, err := c.Gateway.GetCompany(ctx, companyID)
	if err != nil || record == nil {
		return record, err
	}

	if payload, jsonErr := json.Marshal(record); jsonErr == nil {
		if setErr := c.redis.Set(ctx, cacheKey, payload, CACHE_TTL_MEDIUM).Err(); setErr != nil {
			log.Warn().Err(setErr).Int64("company_id", companyID).Msg("company cache write failed")
		}
	}
	return record, nil
}

// InvalidateCompany drops the cached record, e.g. after a rename.
func (c *CachedGateway) InvalidateCompany(ctx context.Context, companyID int64) {
	_ = c.redis.Del(ctx, fmt.Sprintf("%s%d", COMPANY_CACHE_PREFIX, companyID))
}
