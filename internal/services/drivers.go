package services

import (
	"context"
	"strings"
	"time"

	"github.com/gowheels/gowheels-backend/internal/apperr"
	"github.com/gowheels/gowheels-backend/internal/models"
	"github.com/gowheels/gowheels-backend/internal/store"
)

type DriverService struct {
	store    store.Store
	notifier Notifier
}

func NewDriverService(st store.Store, n Notifier) *DriverService {
	return &DriverService{store: st, notifier: n}
}

// ListAvailable returns drivers that can be picked for a trip, best rated
// first. No drivers is an empty slice, not an error.
func (s *DriverService) ListAvailable(ctx context.Context) ([]models.Driver, error) {
	return s.store.ListDriversByStatus(ctx, models.DriverStatusAvailable)
}

func (s *DriverService) List(ctx context.Context) ([]models.Driver, error) {
	return s.store.ListDrivers(ctx)
}

func (s *DriverService) Get(ctx context.Context, id uint) (*models.Driver, error) {
	return s.store.GetDriver(ctx, id)
}

// SetStatus is the driver's own duty toggle. In Ride is owned by trip
// assignment and cannot be entered or left here.
func (s *DriverService) SetStatus(ctx context.Context, id uint, status string) (*models.Driver, error) {
	next, ok := models.ParseDriverStatus(status)
	if !ok {
		return nil, apperr.InvalidRequest("invalid driver status %q", status)
	}
	if next == models.DriverStatusInRide {
		return nil, apperr.InvalidState("drivers are set In Ride only by trip assignment")
	}

	var out *models.Driver
	err := s.store.Transact(ctx, func(tx store.Store) error {
		d, err := tx.GetDriver(ctx, id)
		if err != nil {
			return err
		}
		if d.CurrentStatus == models.DriverStatusInRide {
			return apperr.InvalidState("driver %d is on a trip", id)
		}
		// A trip may claim the driver after the read; only write over the
		// status we saw.
		swapped, err := tx.CompareAndSwapDriverStatus(ctx, id, d.CurrentStatus, next)
		if err != nil {
			return err
		}
		if !swapped {
			return apperr.Conflict("driver %d changed status, retry", id)
		}
		d.CurrentStatus = next
		out = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	notify(ctx, s.notifier, Event{
		Type:     EventDriverStatusChanged,
		DriverID: id,
		Status:   string(next),
		At:       time.Now().UTC(),
	})
	return out, nil
}

func (s *DriverService) SetLocation(ctx context.Context, id uint, cabLocation string) error {
	cabLocation = strings.TrimSpace(cabLocation)
	if cabLocation == "" {
		return apperr.InvalidRequest("cab_location is required")
	}
	return s.store.SetDriverLocation(ctx, id, cabLocation)
}
