package services

import (
	"context"
	"strings"

	"github.com/gowheels/gowheels-backend/internal/apperr"
	"github.com/gowheels/gowheels-backend/internal/models"
	"github.com/gowheels/gowheels-backend/internal/store"
)

type PassengerService struct {
	store store.Store
}

func NewPassengerService(st store.Store) *PassengerService {
	return &PassengerService{store: st}
}

func (s *PassengerService) List(ctx context.Context) ([]models.Passenger, error) {
	return s.store.ListPassengers(ctx)
}

func (s *PassengerService) Get(ctx context.Context, id uint) (*models.Passenger, error) {
	return s.store.GetPassenger(ctx, id)
}

func (s *PassengerService) Update(ctx context.Context, id uint, upd models.PassengerUpdate) (*models.Passenger, error) {
	upd.Name = strings.TrimSpace(upd.Name)
	if upd.Name == "" {
		return nil, apperr.InvalidRequest("name is required")
	}
	var out *models.Passenger
	err := s.store.Transact(ctx, func(tx store.Store) error {
		if err := tx.UpdatePassenger(ctx, id, upd); err != nil {
			return err
		}
		p, err := tx.GetPassenger(ctx, id)
		out = p
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
