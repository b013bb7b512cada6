package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/gowheels/gowheels-backend/internal/models"
	"github.com/gowheels/gowheels-backend/internal/store"
)

// StatsService serves the dashboard aggregates, caching each result for a
// short TTL. A TTL of zero disables the cache.
type StatsService struct {
	store store.Store
	cache *expirable.LRU[string, any]
	now   func() time.Time
}

func NewStatsService(st store.Store, ttl time.Duration) *StatsService {
	s := &StatsService{store: st, now: time.Now}
	if ttl > 0 {
		s.cache = expirable.NewLRU[string, any](32, nil, ttl)
	}
	return s
}

func (s *StatsService) RatingsByCarType(ctx context.Context) ([]models.RatingByCarType, error) {
	return cached(s, "ratings-by-car-type", func() ([]models.RatingByCarType, error) {
		return s.store.RatingsByCarType(ctx)
	})
}

func (s *StatsService) AgeStats(ctx context.Context) ([]models.AgeStat, error) {
	now := s.now()
	return cached(s, fmt.Sprintf("age:%d", now.Year()), func() ([]models.AgeStat, error) {
		return s.store.AgeStats(ctx, now)
	})
}

func (s *StatsService) PassengersByAgeGroup(ctx context.Context) ([]models.AgeGroupCount, error) {
	now := s.now()
	return cached(s, fmt.Sprintf("passengers-by-age:%d", now.Year()), func() ([]models.AgeGroupCount, error) {
		return s.store.PassengersByAgeGroup(ctx, now)
	})
}

func cached[T any](s *StatsService, key string, load func() ([]T, error)) ([]T, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			if rows, ok := v.([]T); ok {
				return rows, nil
			}
		}
	}
	rows, err := load()
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Add(key, rows)
	}
	return rows, nil
}
