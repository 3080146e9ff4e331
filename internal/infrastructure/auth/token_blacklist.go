package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tsvs/backend/internal/infrastructure/config"
)

// TokenBlacklist revokes access tokens before they expire.
// Single tokens are revoked by JTI on logout; a whole user is revoked by
// cut-off time when an administrator disables the account.
type TokenBlacklist interface {
	// AddToBlacklist revokes one token. ttl is the token's remaining lifetime.
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error

	IsBlacklisted(ctx context.Context, jti string) (bool, error)

	// AddUserTokensToBlacklist revokes every token of the user issued before issuedBefore.
	// Token issue times have second precision, so the cut-off is compared in whole seconds.
	AddUserTokensToBlacklist(ctx context.Context, userID string, issuedBefore time.Time, ttl time.Duration) error

	// IsUserTokenInvalidated reports whether a token issued at issuedAt predates the user's cut-off.
	IsUserTokenInvalidated(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

const revocationKeyPrefix = "tsvs:revoked:"

// NewRedisClient opens a Redis client and pings it
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr(), err)
	}
	return client, nil
}

// RedisTokenBlacklist stores revocations in Redis so every instance sees them.
// Keys expire with the tokens they revoke.
type RedisTokenBlacklist struct {
	client *redis.Client
}

// NewRedisTokenBlacklistWithClient creates a blacklist on an existing client
func NewRedisTokenBlacklistWithClient(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

func tokenKey(jti string) string   { return revocationKeyPrefix + "token:" + jti }
func userKey(userID string) string { return revocationKeyPrefix + "user:" + userID }

func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if err := b.client.Set(ctx, tokenKey(jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, tokenKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}

// AddUserTokensToBlacklist records the unix second of issuedBefore as the user's cut-off
func (b *RedisTokenBlacklist) AddUserTokensToBlacklist(ctx context.Context, userID string, issuedBefore time.Time, ttl time.Duration) error {
	cutoff := strconv.FormatInt(issuedBefore.Unix(), 10)
	if err := b.client.Set(ctx, userKey(userID), cutoff, ttl).Err(); err != nil {
		return fmt.Errorf("revoke user tokens: %w", err)
	}
	return nil
}

// IsUserTokenInvalidated compares at second precision, so a token issued
// within the cut-off second stays valid.
func (b *RedisTokenBlacklist) IsUserTokenInvalidated(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	raw, err := b.client.Get(ctx, userKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check revoked user: %w", err)
	}
	cutoff, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("parse cut-off %q: %w", raw, err)
	}
	return issuedAt.Unix() < cutoff, nil
}

// InMemoryTokenBlacklist keeps revocations in process memory.
// Used when Redis is disabled; revocations do not survive a restart
// and are not shared between instances.
type InMemoryTokenBlacklist struct {
	mu      sync.Mutex
	tokens  map[string]time.Time // jti -> expiry
	cutoffs map[string]cutoff    // user id -> cut-off
	now     func() time.Time
}

type cutoff struct {
	at      time.Time
	expires time.Time
}

// NewInMemoryTokenBlacklist creates an empty blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		tokens:  make(map[string]time.Time),
		cutoffs: make(map[string]cutoff),
		now:     time.Now,
	}
}

func (b *InMemoryTokenBlacklist) AddToBlacklist(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	b.sweep(now)
	b.tokens[jti] = now.Add(ttl)
	return nil
}

func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	expires, ok := b.tokens[jti]
	if !ok {
		return false, nil
	}
	if !b.now().Before(expires) {
		delete(b.tokens, jti)
		return false, nil
	}
	return true, nil
}

// AddUserTokensToBlacklist sets the user's cut-off. A non-positive ttl keeps it forever.
func (b *InMemoryTokenBlacklist) AddUserTokensToBlacklist(_ context.Context, userID string, issuedBefore time.Time, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	b.sweep(now)
	c := cutoff{at: issuedBefore}
	if ttl > 0 {
		c.expires = now.Add(ttl)
	}
	b.cutoffs[userID] = c
	return nil
}

func (b *InMemoryTokenBlacklist) IsUserTokenInvalidated(_ context.Context, userID string, issuedAt time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.cutoffs[userID]
	if !ok {
		return false, nil
	}
	if !c.expires.IsZero() && !b.now().Before(c.expires) {
		delete(b.cutoffs, userID)
		return false, nil
	}
	return issuedAt.Unix() < c.at.Unix(), nil
}

// sweep drops expired entries; callers hold mu
func (b *InMemoryTokenBlacklist) sweep(now time.Time) {
	for jti, expires := range b.tokens {
		if !now.Before(expires) {
			delete(b.tokens, jti)
		}
	}
	for id, c := range b.cutoffs {
		if !c.expires.IsZero() && !now.Before(c.expires) {
			delete(b.cutoffs, id)
		}
	}
}

var (
	_ TokenBlacklist = (*RedisTokenBlacklist)(nil)
	_ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
)
