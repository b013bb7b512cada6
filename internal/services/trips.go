package services

import (
	"context"
	"errors"

	"github.com/gowheels/gowheels-backend/internal/apperr"
	"github.com/gowheels/gowheels-backend/internal/models"
	"github.com/gowheels/gowheels-backend/internal/store"
	"github.com/gowheels/gowheels-backend/pkg/utils"
)

// TripService turns bookings into trips and moves them through their
// statuses. Every driver status change it makes happens in the same
// transaction as the trip write that causes it.
type TripService struct {
	store    store.Store
	fare     utils.FarePolicy
	notifier Notifier
}

func NewTripService(st store.Store, fare utils.FarePolicy, n Notifier) *TripService {
	if fare == nil {
		fare = utils.RandomFare(nil)
	}
	return &TripService{store: st, fare: fare, notifier: n}
}

// Create assigns driverID to the booking. The driver is claimed with a
// compare-and-swap from Available to In Ride; losing that race is a Conflict.
func (s *TripService) Create(ctx context.Context, bookingID, driverID uint) (*models.Trip, error) {
	var trip *models.Trip
	err := s.store.Transact(ctx, func(tx store.Store) error {
		b, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}

		if _, err := tx.GetTrip(ctx, bookingID); err == nil {
			return apperr.Conflict("booking %d already has a trip", bookingID)
		} else if !errors.Is(err, apperr.ErrNotFound) {
			return err
		}

		claimed, err := tx.CompareAndSwapDriverStatus(ctx, driverID, models.DriverStatusAvailable, models.DriverStatusInRide)
		if err != nil {
			return err
		}
		if !claimed {
			if _, err := tx.GetDriver(ctx, driverID); err != nil {
				return err
			}
			return apperr.Conflict("driver %d is not available", driverID)
		}

		trip = &models.Trip{
			ID:             b.ID,
			Status:         models.TripStatusPending,
			PassengerID:    b.PassengerID,
			DriverID:       driverID,
			PickupLocation: b.PickupLocation,
			DropLocation:   b.DropLocation,
			Fare:           s.fare(b.PickupLocation, b.DropLocation),
		}
		return tx.CreateTrip(ctx, trip)
	})
	if err != nil {
		return nil, err
	}

	notify(ctx, s.notifier, tripEvent(EventTripCreated, trip))
	return trip, nil
}

// SetStatus moves a trip to status. Non-terminal statuses may be set in any
// order; once a trip is Completed or Cancelled it is frozen. Reaching a
// terminal status releases the driver.
func (s *TripService) SetStatus(ctx context.Context, tripID uint, status string) (*models.Trip, error) {
	next, ok := models.ParseTripStatus(status)
	if !ok {
		return nil, apperr.InvalidRequest("invalid trip status %q", status)
	}

	var trip *models.Trip
	err := s.store.Transact(ctx, func(tx store.Store) error {
		t, err := tx.GetTripForUpdate(ctx, tripID)
		if err != nil {
			return err
		}
		if t.Status.IsTerminal() {
			return apperr.InvalidState("trip %d is already %s", tripID, t.Status)
		}

		if err := tx.UpdateTripStatus(ctx, tripID, next); err != nil {
			return err
		}
		if next.IsTerminal() {
			if err := tx.SetDriverStatus(ctx, t.DriverID, models.DriverStatusAvailable); err != nil {
				return err
			}
		}
		t.Status = next
		trip = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	notify(ctx, s.notifier, tripEvent(EventTripStatusChanged, trip))
	return trip, nil
}

func (s *TripService) Get(ctx context.Context, tripID uint) (*models.TripDetail, error) {
	return s.store.GetTripDetail(ctx, tripID)
}
