package gormstore

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/gowheels/gowheels-backend/internal/apperr"
	"github.com/gowheels/gowheels-backend/internal/models"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if err := s.conn(ctx).Create(u).Error; err != nil {
		if apperr.KindOf(translate(err, "")) == apperr.KindConflict {
			return apperr.Conflict("username %q is already taken", u.Username)
		}
		return translate(err, "create user")
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFound(err, apperr.NotFound("user %q not found", username), "get user")
	}
	return &u, nil
}

func (s *Store) CreatePassenger(ctx context.Context, p *models.Passenger) error {
	return translate(s.conn(ctx).Create(p).Error, "create passenger")
}

func (s *Store) GetPassenger(ctx context.Context, id uint) (*models.Passenger, error) {
	var p models.Passenger
	if err := s.conn(ctx).First(&p, "passenger_id = ?", id).Error; err != nil {
		return nil, notFound(err, apperr.NotFound("passenger %d not found", id), "get passenger")
	}
	return &p, nil
}

func (s *Store) GetPassengerByUsername(ctx context.Context, username string) (*models.Passenger, error) {
	var p models.Passenger
	if err := s.conn(ctx).First(&p, "username = ?", username).Error; err != nil {
		return nil, notFound(err, apperr.NotFound("passenger %q not found", username), "get passenger")
	}
	return &p, nil
}

func (s *Store) ListPassengers(ctx context.Context) ([]models.Passenger, error) {
	out := []models.Passenger{}
	if err := s.conn(ctx).Order("passenger_id").Find(&out).Error; err != nil {
		return nil, translate(err, "list passengers")
	}
	return out, nil
}

func (s *Store) UpdatePassenger(ctx context.Context, id uint, upd models.PassengerUpdate) error {
	res := s.conn(ctx).Model(&models.Passenger{}).
		Where("passenger_id = ?", id).
		Updates(map[string]any{
			"name":            upd.Name,
			"contact_number":  upd.ContactNumber,
			"pickup_location": upd.PickupLocation,
		})
	return mustAffect(res, apperr.NotFound("passenger %d not found", id), "update passenger")
}

func (s *Store) CreateDriver(ctx context.Context, d *models.Driver) error {
	if d.CurrentStatus == "" {
		d.CurrentStatus = models.DriverStatusOffDuty
	}
	return translate(s.conn(ctx).Omit(clause.Associations).Create(d).Error, "create driver")
}

func (s *Store) GetDriver(ctx context.Context, id uint) (*models.Driver, error) {
	var d models.Driver
	if err := s.conn(ctx).Preload("Vehicle").First(&d, "driver_id = ?", id).Error; err != nil {
		return nil, notFound(err, apperr.NotFound("driver %d not found", id), "get driver")
	}
	return &d, nil
}

func (s *Store) GetDriverByUsername(ctx context.Context, username string) (*models.Driver, error) {
	var d models.Driver
	if err := s.conn(ctx).Preload("Vehicle").First(&d, "username = ?", username).Error; err != nil {
		return nil, notFound(err, apperr.NotFound("driver %q not found", username), "get driver")
	}
	return &d, nil
}

func (s *Store) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	out := []models.Driver{}
	if err := s.conn(ctx).InnerJoins("Vehicle").Order("drivers.driver_id").Find(&out).Error; err != nil {
		return nil, translate(err, "list drivers")
	}
	return out, nil
}

func (s *Store) ListDriversByStatus(ctx context.Context, status models.DriverStatus) ([]models.Driver, error) {
	out := []models.Driver{}
	err := s.conn(ctx).
		InnerJoins("Vehicle").
		Where("drivers.current_status = ?", status).
		Order("drivers.rating DESC").
		Find(&out).Error
	if err != nil {
		return nil, translate(err, "list drivers by status")
	}
	return out, nil
}

// CompareAndSwapDriverStatus is a single conditional UPDATE, so two
// transactions racing for the same driver serialize on the row lock and the
// second one matches zero rows.
func (s *Store) CompareAndSwapDriverStatus(ctx context.Context, id uint, expected, next models.DriverStatus) (bool, error) {
	res := s.conn(ctx).Model(&models.Driver{}).
		Where("driver_id = ? AND current_status = ?", id, expected).
		Update("current_status", next)
	if res.Error != nil {
		return false, translate(res.Error, "swap driver status")
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) SetDriverStatus(ctx context.Context, id uint, status models.DriverStatus) error {
	res := s.conn(ctx).Model(&models.Driver{}).
		Where("driver_id = ?", id).
		Update("current_status", status)
	return mustAffect(res, apperr.NotFound("driver %d not found", id), "set driver status")
}

func (s *Store) SetDriverLocation(ctx context.Context, id uint, cabLocation string) error {
	res := s.conn(ctx).Model(&models.Driver{}).
		Where("driver_id = ?", id).
		Update("cab_location", cabLocation)
	return mustAffect(res, apperr.NotFound("driver %d not found", id), "set driver location")
}

func (s *Store) EnsureVehicle(ctx context.Context, v *models.Vehicle) error {
	err := s.conn(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "car_no"}}, DoNothing: true}).
		Create(v).Error
	return translate(err, "create vehicle")
}
