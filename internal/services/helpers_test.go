package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gowheels/gowheels-backend/internal/models"
	"github.com/gowheels/gowheels-backend/internal/store/memstore"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingNotifier) Notify(_ context.Context, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recordingNotifier) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

func dob(year int) time.Time {
	return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)
}

func seedPassenger(t *testing.T, st *memstore.Store, username, name string) *models.Passenger {
	t.Helper()
	p := &models.Passenger{Username: username, Name: name, PickupLocation: "Home", DateOfBirth: dob(1995)}
	require.NoError(t, st.CreatePassenger(context.Background(), p))
	return p
}

func seedDriver(t *testing.T, st *memstore.Store, username string, rating float64, status models.DriverStatus, carType string) *models.Driver {
	t.Helper()
	ctx := context.Background()
	v := &models.Vehicle{CarNo: "CAR-" + username, CarModel: "Model " + username, CarType: carType}
	require.NoError(t, st.EnsureVehicle(ctx, v))
	d := &models.Driver{
		Username:      username,
		Name:          "Driver " + username,
		Rating:        rating,
		CurrentStatus: status,
		CarNo:         v.CarNo,
		DateOfBirth:   dob(1985),
	}
	require.NoError(t, st.CreateDriver(ctx, d))
	return d
}

func driverStatus(t *testing.T, st *memstore.Store, id uint) models.DriverStatus {
	t.Helper()
	d, err := st.GetDriver(context.Background(), id)
	require.NoError(t, err)
	return d.CurrentStatus
}
