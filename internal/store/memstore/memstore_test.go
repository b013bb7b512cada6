package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gowheels/gowheels-backend/internal/apperr"
	"github.com/gowheels/gowheels-backend/internal/models"
	"github.com/gowheels/gowheels-backend/internal/store"
)

func seed(t *testing.T) (*Store, *models.Passenger, *models.Driver) {
	t.Helper()
	ctx := context.Background()
	s := New()

	require.NoError(t, s.EnsureVehicle(ctx, &models.Vehicle{CarNo: "KAA1", CarModel: "Axio", CarType: "Sedan"}))
	p := &models.Passenger{Username: "amy", Name: "Amy"}
	require.NoError(t, s.CreatePassenger(ctx, p))
	d := &models.Driver{Username: "dan", Name: "Dan", Rating: 4.5, CurrentStatus: models.DriverStatusAvailable, CarNo: "KAA1"}
	require.NoError(t, s.CreateDriver(ctx, d))
	return s, p, d
}

func TestTransactRollsBack(t *testing.T) {
	s, p, d := seed(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Transact(ctx, func(tx store.Store) error {
		b := &models.Booking{PassengerID: p.ID, PickupLocation: "A", DropLocation: "B"}
		if err := tx.CreateBooking(ctx, b); err != nil {
			return err
		}
		if _, err := tx.CompareAndSwapDriverStatus(ctx, d.ID, models.DriverStatusAvailable, models.DriverStatusInRide); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	bookings, err := s.ListBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	got, err := s.GetDriver(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DriverStatusAvailable, got.CurrentStatus)

	// ids handed out inside the failed transaction are reused
	b := &models.Booking{PassengerID: p.ID, PickupLocation: "A", DropLocation: "B"}
	require.NoError(t, s.CreateBooking(ctx, b))
	assert.Equal(t, uint(1), b.ID)
}

func TestTransactCommits(t *testing.T) {
	s, p, _ := seed(t)
	ctx := context.Background()

	err := s.Transact(ctx, func(tx store.Store) error {
		return tx.CreateBooking(ctx, &models.Booking{PassengerID: p.ID, PickupLocation: "A", DropLocation: "B"})
	})
	require.NoError(t, err)

	bookings, err := s.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "Amy", bookings[0].PassengerName)
}

func TestCompareAndSwapDriverStatus(t *testing.T) {
	s, _, d := seed(t)
	ctx := context.Background()

	ok, err := s.CompareAndSwapDriverStatus(ctx, d.ID, models.DriverStatusAvailable, models.DriverStatusInRide)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.CompareAndSwapDriverStatus(ctx, d.ID, models.DriverStatusAvailable, models.DriverStatusInRide)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.CompareAndSwapDriverStatus(ctx, 99, models.DriverStatusAvailable, models.DriverStatusInRide)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListDriversByStatusOrder(t *testing.T) {
	s, _, _ := seed(t)
	ctx := context.Background()
	for _, d := range []*models.Driver{
		{Username: "b", Rating: 3.0, CurrentStatus: models.DriverStatusAvailable, CarNo: "KAA1"},
		{Username: "c", Rating: 4.9, CurrentStatus: models.DriverStatusAvailable, CarNo: "KAA1"},
		{Username: "d", Rating: 5.0, CurrentStatus: models.DriverStatusOffDuty, CarNo: "KAA1"},
		{Username: "e", Rating: 5.0, CurrentStatus: models.DriverStatusAvailable, CarNo: "MISSING"},
	} {
		require.NoError(t, s.CreateDriver(ctx, d))
	}

	got, err := s.ListDriversByStatus(ctx, models.DriverStatusAvailable)
	require.NoError(t, err)
	var names []string
	for _, d := range got {
		names = append(names, d.Username)
	}
	assert.Equal(t, []string{"c", "dan", "b"}, names)
}

func TestTripsAndPayments(t *testing.T) {
	s, p, d := seed(t)
	ctx := context.Background()

	trip := &models.Trip{ID: 7, Status: models.TripStatusCompleted, PassengerID: p.ID, DriverID: d.ID, Fare: 80}
	require.NoError(t, s.CreateTrip(ctx, trip))
	assert.ErrorIs(t, s.CreateTrip(ctx, &models.Trip{ID: 7}), apperr.ErrConflict)

	detail, err := s.GetTripDetail(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Amy", detail.PassengerName)
	assert.Equal(t, "dan", detail.DriverUsername)
	assert.Equal(t, "Axio", detail.CarModel)

	require.NoError(t, s.CreatePayment(ctx, &models.Payment{ID: "p1", TripID: 7, Status: models.PaymentStatusCompleted}))
	err = s.CreatePayment(ctx, &models.Payment{ID: "p2", TripID: 7, Status: models.PaymentStatusCompleted})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	require.NoError(t, s.SetPaymentReceipt(ctx, "p1", "file:///tmp/p1.json"))
	assert.ErrorIs(t, s.SetPaymentReceipt(ctx, "nope", "x"), apperr.ErrNotFound)

	list, err := s.ListPaymentsByTrip(ctx, 7)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "file:///tmp/p1.json", list[0].ReceiptURL)
}

func TestNotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.GetBooking(ctx, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = s.GetTrip(ctx, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = s.GetTripDetail(ctx, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, s.UpdateTripStatus(ctx, 1, models.TripStatusCompleted), apperr.ErrNotFound)
	assert.ErrorIs(t, s.SetDriverStatus(ctx, 1, models.DriverStatusAvailable), apperr.ErrNotFound)
	assert.ErrorIs(t, s.UpdatePassenger(ctx, 1, models.PassengerUpdate{Name: "x"}), apperr.ErrNotFound)
}
