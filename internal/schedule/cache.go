package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/FUAD-ALSHABIBI/mee-ad-app/pkg/logging"
)

// CachedRepository wraps a Repository with a Redis read-through cache.
// Schedules change rarely and are read on every availability request, so a
// short TTL plus invalidation on replace keeps reads off Postgres without
// risking a stale week lingering.
type CachedRepository struct {
	inner  Repository
	redis  *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewCachedRepository wraps inner. A nil redis client disables caching and
// every call passes straight through.
func NewCachedRepository(inner Repository, redisClient *redis.Client, ttl time.Duration, logger *logging.Logger) *CachedRepository {
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedRepository{inner: inner, redis: redisClient, ttl: ttl, logger: logger}
}

func (c *CachedRepository) key(businessID string) string {
	return fmt.Sprintf("schedule:rules:%s", businessID)
}

// ListForBusiness serves from cache when possible. Cache failures degrade to
// the inner repository; they are logged, never surfaced.
func (c *CachedRepository) ListForBusiness(ctx context.Context, businessID string) ([]Rule, error) {
	if c.redis == nil {
		return c.inner.ListForBusiness(ctx, businessID)
	}

	data, err := c.redis.Get(ctx, c.key(businessID)).Bytes()
	if err == nil {
		var rules []Rule
		if err := json.Unmarshal(data, &rules); err == nil {
			return rules, nil
		}
		c.logger.Warn("discarding corrupt schedule cache entry", "business_id", businessID)
	} else if err != redis.Nil {
		c.logger.Warn("schedule cache read failed", "business_id", businessID, "error", err)
	}

	rules, err := c.inner.ListForBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(rules); err == nil {
		if err := c.redis.Set(ctx, c.key(businessID), payload, c.ttl).Err(); err != nil {
			c.logger.Warn("schedule cache write failed", "business_id", businessID, "error", err)
		}
	}
	return rules, nil
}

// ReplaceForBusiness writes through and invalidates the cached schedule.
func (c *CachedRepository) ReplaceForBusiness(ctx context.Context, businessID string, inputs []RuleInput) ([]Rule, error) {
	rules, err := c.inner.ReplaceForBusiness(ctx, businessID, inputs)
	if err != nil {
		return nil, err
	}
	if c.redis != nil {
		if err := c.redis.Del(ctx, c.key(businessID)).Err(); err != nil {
			c.logger.Warn("schedule cache invalidation failed", "business_id", businessID, "error", err)
		}
	}
	return rules, nil
}
