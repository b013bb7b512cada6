package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/gowheels/gowheels-backend/internal/apperr"
	"github.com/gowheels/gowheels-backend/internal/models"
)

func (s *Store) CreateBooking(ctx context.Context, b *models.Booking) error {
	return translate(s.conn(ctx).Create(b).Error, "create booking")
}

func (s *Store) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := s.conn(ctx).First(&b, "booking_id = ?", id).Error; err != nil {
		return nil, notFound(err, apperr.NotFound("booking %d not found", id), "get booking")
	}
	return &b, nil
}

func (s *Store) ListBookings(ctx context.Context) ([]models.BookingSummary, error) {
	out := []models.BookingSummary{}
	err := s.conn(ctx).
		Table("bookings AS b").
		Select("b.*, p.name AS passenger_name").
		Joins("JOIN passengers p ON p.passenger_id = b.passenger_id").
		Order("b.booking_id").
		Scan(&out).Error
	if err != nil {
		return nil, translate(err, "list bookings")
	}
	return out, nil
}

func (s *Store) ListBookingsByPassenger(ctx context.Context, passengerID uint) ([]models.Booking, error) {
	out := []models.Booking{}
	err := s.conn(ctx).
		Where("passenger_id = ?", passengerID).
		Order("booking_id").
		Find(&out).Error
	if err != nil {
		return nil, translate(err, "list bookings")
	}
	return out, nil
}

func (s *Store) CreateTrip(ctx context.Context, t *models.Trip) error {
	if err := s.conn(ctx).Create(t).Error; err != nil {
		if apperr.KindOf(translate(err, "")) == apperr.KindConflict {
			return apperr.Conflict("trip %d already exists", t.ID)
		}
		return translate(err, "create trip")
	}
	return nil
}

func (s *Store) GetTrip(ctx context.Context, id uint) (*models.Trip, error) {
	var t models.Trip
	if err := s.conn(ctx).First(&t, "trip_id = ?", id).Error; err != nil {
		return nil, notFound(err, apperr.NotFound("trip %d not found", id), "get trip")
	}
	return &t, nil
}

func (s *Store) GetTripForUpdate(ctx context.Context, id uint) (*models.Trip, error) {
	var t models.Trip
	err := s.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&t, "trip_id = ?", id).Error
	if err != nil {
		return nil, notFound(err, apperr.NotFound("trip %d not found", id), "lock trip")
	}
	return &t, nil
}

func (s *Store) GetTripDetail(ctx context.Context, id uint) (*models.TripDetail, error) {
	var out models.TripDetail
	res := s.conn(ctx).
		Table("trips AS t").
		Select(`t.*,
			p.name AS passenger_name, p.username AS passenger_username,
			d.name AS driver_name, d.username AS driver_username,
			v.car_model, v.car_type`).
		Joins("JOIN passengers p ON t.passenger_id = p.passenger_id").
		Joins("JOIN drivers d ON t.driver_id = d.driver_id").
		Joins("JOIN vehicles v ON d.car_no = v.car_no").
		Where("t.trip_id = ?", id).
		Limit(1).
		Scan(&out)
	if err := mustAffect(res, apperr.NotFound("trip %d not found", id), "get trip detail"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) UpdateTripStatus(ctx context.Context, id uint, status models.TripStatus) error {
	res := s.conn(ctx).Model(&models.Trip{}).
		Where("trip_id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	return mustAffect(res, apperr.NotFound("trip %d not found", id), "update trip status")
}

func (s *Store) CreatePayment(ctx context.Context, p *models.Payment) error {
	if err := s.conn(ctx).Create(p).Error; err != nil {
		if apperr.KindOf(translate(err, "")) == apperr.KindConflict {
			return apperr.Conflict("trip %d is already paid", p.TripID)
		}
		return translate(err, "create payment")
	}
	return nil
}

func (s *Store) ListPaymentsByTrip(ctx context.Context, tripID uint) ([]models.Payment, error) {
	out := []models.Payment{}
	err := s.conn(ctx).
		Where("trip_id = ?", tripID).
		Order("created_at").
		Find(&out).Error
	if err != nil {
		return nil, translate(err, "list payments")
	}
	return out, nil
}

func (s *Store) SetPaymentReceipt(ctx context.Context, id, receiptURL string) error {
	res := s.conn(ctx).Model(&models.Payment{}).
		Where("payment_id = ?", id).
		Update("receipt_url", receiptURL)
	return mustAffect(res, apperr.NotFound("payment %s not found", id), "set payment receipt")
}
