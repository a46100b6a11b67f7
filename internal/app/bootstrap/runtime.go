package bootstrap

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/FUAD-ALSHABIBI/mee-ad-app/internal/config"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/schedule"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		return nil
	}
	return client
}

// BuildPgxPool opens the Postgres connection pool.
func BuildPgxPool(ctx context.Context, cfg *appconfig.Config) (*pgxpool.Pool, error) {
	if cfg == nil || strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, fmt.Errorf("bootstrap: DATABASE_URL not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: open pool failed: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("bootstrap: database unreachable: %w", err)
	}
	return pool, nil
}

// BuildScheduleRepository wires the Postgres schedule store behind the Redis
// read-through cache when a client is available.
func BuildScheduleRepository(pool *pgxpool.Pool, redisClient *redis.Client, cfg *appconfig.Config, logger *logging.Logger) schedule.Repository {
	repo := schedule.NewPostgresRepository(pool)
	if redisClient == nil {
		return repo
	}
	return schedule.NewCachedRepository(repo, redisClient, cfg.ScheduleCacheTTL, logger)
}
