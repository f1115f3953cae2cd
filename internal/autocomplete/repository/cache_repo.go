package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	suggestionKeyPrefix  = "ac:suggestion:" // ac:suggestion:{sha256(prompt)}
	DefaultSuggestionTTL = 10 * time.Minute
)

// SuggestionCache stores completions per exact prompt in Redis
type SuggestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSuggestionCache creates a new SuggestionCache
func NewSuggestionCache(client *redis.Client, ttl time.Duration) *SuggestionCache {
	if ttl <= 0 {
		ttl = DefaultSuggestionTTL
	}
	return &SuggestionCache{client: client, ttl: ttl}
}

// Get returns the cached suggestion for prompt, if any
func (r *SuggestionCache) Get(ctx context.Context, prompt string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.key(prompt)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get suggestion: %w", err)
	}
	return val, true, nil
}

// Set stores suggestion for prompt
func (r *SuggestionCache) Set(ctx context.Context, prompt, suggestion string) error {
	if err := r.client.Set(ctx, r.key(prompt), suggestion, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store suggestion: %w", err)
	}
	return nil
}

// Ping checks the Redis connection
func (r *SuggestionCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *SuggestionCache) key(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return suggestionKeyPrefix + hex.EncodeToString(sum[:])
}
