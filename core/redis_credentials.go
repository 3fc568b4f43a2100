package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCredentialStore persists the bearer token in Redis so a restarted
// process (or several replicas behind one storefront) resumes an existing
// session instead of forcing a fresh login.
type RedisCredentialStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisCredentialStore connects to Redis and verifies the connection.
func NewRedisCredentialStore(config RedisConfig) (*RedisCredentialStore, error) {
	opt, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := config.KeyPrefix
	if prefix == "" {
		prefix = "shopfront"
	}
	ttl := config.TokenTTL
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}

	return &RedisCredentialStore{
		client:    client,
		keyPrefix: prefix,
		ttl:       ttl,
	}, nil
}

func (r *RedisCredentialStore) tokenKey() string {
	return r.keyPrefix + ":auth:token"
}

// Token returns the persisted token, or ErrNoCredential when none is stored.
func (r *RedisCredentialStore) Token(ctx context.Context) (string, error) {
	token, err := r.client.Get(ctx, r.tokenKey()).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoCredential
	}
	if err != nil {
		return "", fmt.Errorf("failed to read credential: %w", err)
	}
	if token == "" {
		return "", ErrNoCredential
	}
	return token, nil
}

// SetToken persists a bearer token with the configured TTL
func (r *RedisCredentialStore) SetToken(ctx context.Context, token string) error {
	if err := r.client.Set(ctx, r.tokenKey(), token, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	return nil
}

// ClearToken removes the persisted token
func (r *RedisCredentialStore) ClearToken(ctx context.Context) error {
	if err := r.client.Del(ctx, r.tokenKey()).Err(); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection
func (r *RedisCredentialStore) Close() error {
	return r.client.Close()
}
