package services

import (
	"context"
	"strings"

	"github.com/gowheels/gowheels-backend/internal/apperr"
	"github.com/gowheels/gowheels-backend/internal/models"
	"github.com/gowheels/gowheels-backend/internal/store"
)

type BookingService struct {
	store store.Store
}

func NewBookingService(st store.Store) *BookingService {
	return &BookingService{store: st}
}

// Create records a ride request. The passenger is not looked up here; the
// store's referential checks own that.
func (s *BookingService) Create(ctx context.Context, passengerID uint, pickup, drop string) (*models.Booking, error) {
	pickup, drop = strings.TrimSpace(pickup), strings.TrimSpace(drop)
	if pickup == "" || drop == "" {
		return nil, apperr.InvalidRequest("pickup and drop locations are required")
	}
	if pickup == drop {
		return nil, apperr.InvalidRequest("pickup and drop locations cannot be the same")
	}

	b := &models.Booking{
		PassengerID:    passengerID,
		PickupLocation: pickup,
		DropLocation:   drop,
	}
	if err := s.store.CreateBooking(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BookingService) List(ctx context.Context) ([]models.BookingSummary, error) {
	return s.store.ListBookings(ctx)
}

func (s *BookingService) ListByPassenger(ctx context.Context, passengerID uint) ([]models.Booking, error) {
	return s.store.ListBookingsByPassenger(ctx, passengerID)
}
