package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
	"github.com/comitanigiacomo/kanso-coach/internal/logging"
)

var _ domain.ProfileRepository = (*CachedProfileRepository)(nil)

const profileCacheTTL = 30 * time.Minute

// CachedProfileRepository is a Redis read-through cache in front of the
// profile store. Cache failures are logged and fall back to next.
type CachedProfileRepository struct {
	next  domain.ProfileRepository
	cache *redis.Client
	log   zerolog.Logger
}

func NewCachedProfileRepository(next domain.ProfileRepository, cache *redis.Client) *CachedProfileRepository {
	return &CachedProfileRepository{
		next:  next,
		cache: cache,
		log:   logging.Component("cache"),
	}
}

func profileKey(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}

func goalKey(userID string) string {
	return fmt.Sprintf("goal:%s", userID)
}

func (r *CachedProfileRepository) invalidate(ctx context.Context, keys ...string) {
	if err := r.cache.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn().Err(err).Strs("keys", keys).Msg("failed to invalidate")
	}
}

func readThrough[T any](ctx context.Context, r *CachedProfileRepository, key string, load func() (*T, error)) (*T, error) {
	val, err := r.cache.Get(ctx, key).Bytes()
	if err == nil {
		var v T
		if err := json.Unmarshal(val, &v); err == nil {
			return &v, nil
		}
		r.log.Warn().Str("key", key).Msg("corrupted cache entry, cleaning up")
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		r.log.Warn().Err(err).Msg("redis read error")
	}

	v, err := load()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(v); err == nil {
		if setErr := r.cache.Set(ctx, key, data, profileCacheTTL).Err(); setErr != nil {
			r.log.Warn().Err(setErr).Msg("redis set error")
		}
	}
	return v, nil
}

func (r *CachedProfileRepository) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	return readThrough(ctx, r, profileKey(userID), func() (*domain.Profile, error) {
		return r.next.Get(ctx, userID)
	})
}

func (r *CachedProfileRepository) ActiveGoal(ctx context.Context, userID string) (*domain.Goal, error) {
	return readThrough(ctx, r, goalKey(userID), func() (*domain.Goal, error) {
		return r.next.ActiveGoal(ctx, userID)
	})
}

func (r *CachedProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	if err := r.next.Upsert(ctx, p); err != nil {
		return err
	}
	r.invalidate(ctx, profileKey(p.UserID))
	return nil
}

func (r *CachedProfileRepository) UpdateLongestStreak(ctx context.Context, userID string, longest int) error {
	if err := r.next.UpdateLongestStreak(ctx, userID, longest); err != nil {
		return err
	}
	r.invalidate(ctx, profileKey(userID))
	return nil
}

func (r *CachedProfileRepository) SetGoal(ctx context.Context, g *domain.Goal) error {
	if err := r.next.SetGoal(ctx, g); err != nil {
		return err
	}
	r.invalidate(ctx, goalKey(g.UserID))
	return nil
}
