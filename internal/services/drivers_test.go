package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gowheels/gowheels-backend/internal/apperr"
	"github.com/gowheels/gowheels-backend/internal/models"
	"github.com/gowheels/gowheels-backend/internal/store"
	"github.com/gowheels/gowheels-backend/internal/store/memstore"
)

// claimAfterRead assigns the driver to a trip right after the service reads
// the driver, inside the same unit of work.
type claimAfterRead struct {
	store.Store
}

func (s claimAfterRead) Transact(ctx context.Context, fn func(tx store.Store) error) error {
	return s.Store.Transact(ctx, func(tx store.Store) error {
		return fn(claimingTx{tx})
	})
}

type claimingTx struct {
	store.Store
}

func (tx claimingTx) GetDriver(ctx context.Context, id uint) (*models.Driver, error) {
	d, err := tx.Store.GetDriver(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Store.CompareAndSwapDriverStatus(ctx, id, models.DriverStatusAvailable, models.DriverStatusInRide); err != nil {
		return nil, err
	}
	return d, nil
}

func TestListAvailableDrivers(t *testing.T) {
	st := memstore.New()
	svc := NewDriverService(st, nil)
	ctx := context.Background()

	none, err := svc.ListAvailable(ctx)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	seedDriver(t, st, "low", 3.1, models.DriverStatusAvailable, "Sedan")
	seedDriver(t, st, "busy", 5.0, models.DriverStatusInRide, "Sedan")
	seedDriver(t, st, "high", 4.9, models.DriverStatusAvailable, "SUV")
	seedDriver(t, st, "off", 4.95, models.DriverStatusOffDuty, "SUV")

	got, err := svc.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "high", got[0].Username)
	assert.Equal(t, "low", got[1].Username)
	for _, d := range got {
		assert.Equal(t, models.DriverStatusAvailable, d.CurrentStatus)
		require.NotNil(t, d.Vehicle)
	}
	assert.Equal(t, "SUV", got[0].Vehicle.CarType)
}

func TestDriverSetStatus(t *testing.T) {
	st := memstore.New()
	events := &recordingNotifier{}
	svc := NewDriverService(st, events)
	ctx := context.Background()

	off := seedDriver(t, st, "off", 4.0, models.DriverStatusOffDuty, "Sedan")
	riding := seedDriver(t, st, "riding", 4.0, models.DriverStatusInRide, "Sedan")

	_, err := svc.SetStatus(ctx, off.ID, "Sleeping")
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)

	_, err = svc.SetStatus(ctx, off.ID, "In Ride")
	assert.ErrorIs(t, err, apperr.ErrInvalidState)

	_, err = svc.SetStatus(ctx, riding.ID, "Off Duty")
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
	assert.Equal(t, models.DriverStatusInRide, driverStatus(t, st, riding.ID))

	_, err = svc.SetStatus(ctx, 999, "Available")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	d, err := svc.SetStatus(ctx, off.ID, "Available")
	require.NoError(t, err)
	assert.Equal(t, models.DriverStatusAvailable, d.CurrentStatus)
	assert.Equal(t, models.DriverStatusAvailable, driverStatus(t, st, off.ID))
	assert.Equal(t, []EventType{EventDriverStatusChanged}, events.types())
}

func TestDriverSetLocation(t *testing.T) {
	st := memstore.New()
	svc := NewDriverService(st, nil)
	ctx := context.Background()
	d := seedDriver(t, st, "dan", 4.0, models.DriverStatusOffDuty, "Sedan")

	assert.ErrorIs(t, svc.SetLocation(ctx, d.ID, " "), apperr.ErrInvalidRequest)
	assert.ErrorIs(t, svc.SetLocation(ctx, 42, "Downtown"), apperr.ErrNotFound)

	require.NoError(t, svc.SetLocation(ctx, d.ID, "Downtown"))
	got, err := svc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Downtown", got.CabLocation)
}

func TestDriverSetStatusLosesToTripClaim(t *testing.T) {
	st := memstore.New()
	events := &recordingNotifier{}
	svc := NewDriverService(claimAfterRead{st}, events)
	d := seedDriver(t, st, "dan", 4.0, models.DriverStatusAvailable, "Sedan")

	_, err := svc.SetStatus(context.Background(), d.ID, "Off Duty")
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Empty(t, events.types())
}
