package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"streamvibe.tv/read-gateway/app/utils/logger"
	"streamvibe.tv/read-gateway/config/environment_variables"
)

// envelope is the wire format for every cache entry. FreshUntil is the soft
// deadline: entries past it are invisible to Get but still served by GetStale
// until the hard Redis expiry removes them.
type envelope struct {
	FreshUntil time.Time       `json:"fresh_until"`
	Value      json.RawMessage `json:"value"`
}

// RedisCacheService provides caching functionality using Redis
type RedisCacheService struct {
	client *redis.Client
	rs     *redsync.Redsync
}

// NewRedisCacheService creates a new Redis cache service
func NewRedisCacheService() CacheService {
	// Parse Redis URL and options
	redisURL := environment_variables.EnvironmentVariables.CACHE_URL
	if redisURL == "" {
		redisURL = environment_variables.EnvironmentVariables.REDIS_URL
	}
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.GetLogger().Error(fmt.Sprintf("Failed to parse Redis URL: %v", err))
		// Fallback to default configuration
		opts = &redis.Options{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		}
	}

	// Override with environment variables if provided
	if environment_variables.EnvironmentVariables.CACHE_PASSWORD != "" {
		opts.Password = environment_variables.EnvironmentVariables.CACHE_PASSWORD
	} else if environment_variables.EnvironmentVariables.REDIS_PASSWORD != "" {
		opts.Password = environment_variables.EnvironmentVariables.REDIS_PASSWORD
	}
	if environment_variables.EnvironmentVariables.CACHE_DB != "" {
		if db, err := strconv.Atoi(environment_variables.EnvironmentVariables.CACHE_DB); err == nil {
			opts.DB = db
		}
	} else if environment_variables.EnvironmentVariables.REDIS_DB != "" {
		if db, err := strconv.Atoi(environment_variables.EnvironmentVariables.REDIS_DB); err == nil {
			opts.DB = db
		}
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.GetLogger().Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logger.GetLogger().Info("Successfully connected to Redis")
	}

	return &RedisCacheService{
		client: client,
		rs:     redsync.New(goredis.NewPool(client)),
	}
}

// Set stores a value in Redis, fresh for ttl and retained for the stale window
func (r *RedisCacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	env, err := json.Marshal(envelope{
		FreshUntil: time.Now().Add(ttl),
		Value:      raw,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	return r.client.Set(ctx, key, env, ttl*staleRetentionFactor).Err()
}

// SetIndexed stores the value like Set and registers the key in the index set
// backing DeleteIndexed. Members of one index share a TTL class, so refreshing
// the index expiry on every write keeps it alive at least as long as its
// newest member.
func (r *RedisCacheService) SetIndexed(ctx context.Context, key, indexKey string, value any, ttl time.Duration) error {
	if err := r.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	pipe := r.client.Pipeline()
	pipe.SAdd(ctx, indexKey, key)
	pipe.Expire(ctx, indexKey, ttl*staleRetentionFactor)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to register key %s in index %s: %w", key, indexKey, err)
	}
	return nil
}

// Get retrieves a fresh value from Redis. Backend errors are logged and folded
// into ErrCacheMiss so the read path degrades to the backing store.
func (r *RedisCacheService) Get(ctx context.Context, key string, dest any) error {
	env, err := r.fetch(ctx, key)
	if err != nil {
		return err
	}
	if time.Now().After(env.FreshUntil) {
		return ErrCacheMiss
	}
	return json.Unmarshal(env.Value, dest)
}

// GetStale retrieves a value regardless of its freshness deadline.
func (r *RedisCacheService) GetStale(ctx context.Context, key string, dest any) error {
	env, err := r.fetch(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(env.Value, dest)
}

func (r *RedisCacheService) fetch(ctx context.Context, key string) (*envelope, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.GetLogger().Errorf("cache get failed for key %s: %v", key, err)
		}
		return nil, ErrCacheMiss
	}
	var env envelope
	if err := json.Unmarshal([]byte(val), &env); err != nil {
		logger.GetLogger().Errorf("cache entry corrupt for key %s: %v", key, err)
		return nil, ErrCacheMiss
	}
	return &env, nil
}

// GetWithFallback retrieves a value from Redis, or executes fallback function if not found
func (r *RedisCacheService) GetWithFallback(ctx context.Context, key string, dest any, fallback func() (any, error), ttl time.Duration) error {
	// Try to get from cache first
	err := r.Get(ctx, key, dest)
	if err == nil {
		return nil // Found in cache
	}

	// Cache miss, execute fallback
	value, err := fallback()
	if err != nil {
		return fmt.Errorf("fallback function failed: %w", err)
	}

	// Store in cache for future requests
	if err := r.Set(ctx, key, value, ttl); err != nil {
		logger.GetLogger().Errorf("Failed to cache value: %v", err)
		// Don't return error, just log it
	}

	// Copy the value to dest
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal fallback value: %w", err)
	}

	return json.Unmarshal(jsonValue, dest)
}

// Delete removes a key from Redis
func (r *RedisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Unlink removes a key from Redis asynchronously (non-blocking)
func (r *RedisCacheService) Unlink(ctx context.Context, key string) error {
	return r.client.Unlink(ctx, key).Err()
}

// DeleteIndexed removes every key registered under indexKey plus the index
// itself, without touching the rest of the keyspace.
func (r *RedisCacheService) DeleteIndexed(ctx context.Context, indexKey string) error {
	members, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("failed to read key index %s: %w", indexKey, err)
	}
	return r.client.Unlink(ctx, append(members, indexKey)...).Err()
}

// Exists checks if a key exists in Redis
func (r *RedisCacheService) Exists(ctx context.Context, key string) (bool, error) {
	result, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check key existence: %w", err)
	}
	return result > 0, nil
}

// Close closes the Redis connection
func (r *RedisCacheService) Close() error {
	return r.client.Close()
}

// HealthCheck verifies Redis connectivity
func (r *RedisCacheService) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// NewMutex returns a Redis-backed distributed lock.
func (r *RedisCacheService) NewMutex(name string, options ...redsync.Option) *redsync.Mutex {
	return r.rs.NewMutex(name, options...)
}
