package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sleeptrain/checkin-engine/internal/core/domain"
)

var _ domain.StatsRepository = (*CachedStatsRepository)(nil)

// CachedStatsRepository serves the streak counter from redis so the
// widget's frequent polls do not hit postgres. Writes go through to the
// next repository and invalidate the cached row.
type CachedStatsRepository struct {
	next  domain.StatsRepository
	cache *redis.Client
}

func NewCachedStatsRepository(next domain.StatsRepository, cache *redis.Client) *CachedStatsRepository {
	return &CachedStatsRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedStatsRepository) cacheKey(userID string) string {
	return fmt.Sprintf("stats:%s", userID)
}

func (r *CachedStatsRepository) GetByUserID(ctx context.Context, userID string) (*domain.Stats, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var stats domain.Stats
		if err := json.Unmarshal([]byte(val), &stats); err == nil {
			return &stats, nil
		}

		log.Printf("[CACHE] Corrupted stats for user %s, cleaning up key", userID)
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	stats, err := r.next.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stats); err == nil {
		if setErr := r.cache.Set(ctx, key, data, 30*time.Minute).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return stats, nil
}

func (r *CachedStatsRepository) Save(ctx context.Context, stats *domain.Stats) error {
	if err := r.next.Save(ctx, stats); err != nil {
		return err
	}

	if err := r.cache.Del(ctx, r.cacheKey(stats.UserID)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate stats for user %s: %v", stats.UserID, err)
	}
	return nil
}
