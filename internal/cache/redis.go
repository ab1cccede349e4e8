package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/travelbooking/config"
	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client         *redis.Client
	itinerariesTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, itinerariesTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:         redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		itinerariesTTL: itinerariesTTL,
	}
}

// GetItineraries returns nil, nil on a cache miss.
func (c *RedisCache) GetItineraries(ctx context.Context) ([]domain.Itinerary, error) {
	data, err := c.client.Get(ctx, itinerariesKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var itineraries []domain.Itinerary
	if err := json.Unmarshal(data, &itineraries); err != nil {
		return nil, err
	}
	return itineraries, nil
}

func (c *RedisCache) SetItineraries(ctx context.Context, itineraries []domain.Itinerary) error {
	payload, err := json.Marshal(itineraries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, itinerariesKey(), payload, c.itinerariesTTL).Err()
}

func (c *RedisCache) InvalidateItineraries(ctx context.Context) error {
	return c.client.Del(ctx, itinerariesKey()).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func itinerariesKey() string {
	return "cache:itineraries"
}
