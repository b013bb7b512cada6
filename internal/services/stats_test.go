package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gowheels/gowheels-backend/internal/models"
	"github.com/gowheels/gowheels-backend/internal/store"
	"github.com/gowheels/gowheels-backend/internal/store/memstore"
)

type countingStore struct {
	store.Store
	ratingCalls int
}

func (c *countingStore) RatingsByCarType(ctx context.Context) ([]models.RatingByCarType, error) {
	c.ratingCalls++
	return c.Store.RatingsByCarType(ctx)
}

func seedStats(t *testing.T) *memstore.Store {
	t.Helper()
	st := memstore.New()
	ctx := context.Background()

	seedDriver(t, st, "a", 4.0, models.DriverStatusAvailable, "Sedan")
	seedDriver(t, st, "b", 4.5, models.DriverStatusOffDuty, "Sedan")
	seedDriver(t, st, "c", 5.0, models.DriverStatusAvailable, "SUV")

	for i, year := range []int{1995, 2010, 2003, 1970} {
		p := &models.Passenger{
			Username:    string(rune('p' + i)),
			Name:        "P",
			DateOfBirth: dob(year),
		}
		require.NoError(t, st.CreatePassenger(ctx, p))
	}
	return st
}

func TestStatsAggregates(t *testing.T) {
	svc := NewStatsService(seedStats(t), 0)
	svc.now = func() time.Time { return time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	ratings, err := svc.RatingsByCarType(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.RatingByCarType{
		{CarType: "SUV", AverageRating: 5.0, LowestRating: 5.0, HighestRating: 5.0, DriverCount: 1},
		{CarType: "Sedan", AverageRating: 4.25, LowestRating: 4.0, HighestRating: 4.5, DriverCount: 2},
	}, ratings)

	ages, err := svc.AgeStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.AgeStat{
		{UserType: "Drivers", AverageAge: 41, YoungestAge: 41, OldestAge: 41},
		{UserType: "Passengers", AverageAge: 31.5, YoungestAge: 16, OldestAge: 56},
	}, ages)

	groups, err := svc.PassengersByAgeGroup(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.AgeGroupCount{
		{AgeGroup: "Under 20", PassengerCount: 1},
		{AgeGroup: "20-25", PassengerCount: 1},
		{AgeGroup: "31-40", PassengerCount: 1},
		{AgeGroup: "Over 40", PassengerCount: 1},
	}, groups)
}

func TestStatsEmptyStore(t *testing.T) {
	svc := NewStatsService(memstore.New(), 0)
	ctx := context.Background()

	ratings, err := svc.RatingsByCarType(ctx)
	require.NoError(t, err)
	assert.Empty(t, ratings)

	ages, err := svc.AgeStats(ctx)
	require.NoError(t, err)
	assert.Empty(t, ages)
}

func TestStatsCache(t *testing.T) {
	counting := &countingStore{Store: seedStats(t)}
	svc := NewStatsService(counting, 50*time.Millisecond)
	ctx := context.Background()

	first, err := svc.RatingsByCarType(ctx)
	require.NoError(t, err)
	second, err := svc.RatingsByCarType(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, counting.ratingCalls)

	assert.Eventually(t, func() bool {
		_, err := svc.RatingsByCarType(ctx)
		return err == nil && counting.ratingCalls == 2
	}, time.Second, 20*time.Millisecond)
}
