package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"barberflow/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type CacheService interface {
	// Catalog caching
	GetServices(ctx context.Context, organizationID uuid.UUID) ([]*models.Service, error)
	SetServices(ctx context.Context, organizationID uuid.UUID, services []*models.Service, ttl time.Duration) error
	InvalidateServices(ctx context.Context, organizationID uuid.UUID) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("redis ping failed on initialization")
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetServices(ctx context.Context, organizationID uuid.UUID) ([]*models.Service, error) {
	key := fmt.Sprintf("barberflow:services:%s", organizationID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var services []*models.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *redisCacheService) SetServices(ctx context.Context, organizationID uuid.UUID, services []*models.Service, ttl time.Duration) error {
	key := fmt.Sprintf("barberflow:services:%s", organizationID.String())
	data, err := json.Marshal(services)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) InvalidateServices(ctx context.Context, organizationID uuid.UUID) error {
	key := fmt.Sprintf("barberflow:services:%s", organizationID.String())
	return r.client.Del(ctx, key).Err()
}

// IsRateLimited bumps a fixed-window counter and reports whether the
// caller exceeded the limit for the window.
func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := fmt.Sprintf("barberflow:ratelimit:%s", key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return false, err
	}

	// Window starts on the first hit.
	if count == 1 {
		r.client.Expire(ctx, cacheKey, window)
	}

	return count > int64(limit), nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
