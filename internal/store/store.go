// Package store declares the persistence ports used by the ride services.
// Implementations live in gormstore (PostgreSQL) and memstore (in-process).
//
// Every method returns apperr-classified errors: a missing row is
// apperr.KindNotFound, a uniqueness violation apperr.KindConflict and any
// other driver failure apperr.KindStoreUnavailable.
package store

import (
	"context"
	"time"

	"github.com/gowheels/gowheels-backend/internal/models"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, username string) (*models.User, error)
}

type PassengerRepo interface {
	CreatePassenger(ctx context.Context, p *models.Passenger) error
	GetPassenger(ctx context.Context, id uint) (*models.Passenger, error)
	GetPassengerByUsername(ctx context.Context, username string) (*models.Passenger, error)
	ListPassengers(ctx context.Context) ([]models.Passenger, error)
	UpdatePassenger(ctx context.Context, id uint, upd models.PassengerUpdate) error
}

type DriverRepo interface {
	CreateDriver(ctx context.Context, d *models.Driver) error
	// GetDriver loads the driver with its vehicle.
	GetDriver(ctx context.Context, id uint) (*models.Driver, error)
	GetDriverByUsername(ctx context.Context, username string) (*models.Driver, error)
	ListDrivers(ctx context.Context) ([]models.Driver, error)
	// ListDriversByStatus returns drivers with their vehicles, highest rating first.
	ListDriversByStatus(ctx context.Context, status models.DriverStatus) ([]models.Driver, error)
	// CompareAndSwapDriverStatus sets the driver's status to next only when it
	// currently equals expected. It reports whether a row was changed.
	CompareAndSwapDriverStatus(ctx context.Context, id uint, expected, next models.DriverStatus) (bool, error)
	SetDriverStatus(ctx context.Context, id uint, status models.DriverStatus) error
	SetDriverLocation(ctx context.Context, id uint, cabLocation string) error
	// EnsureVehicle inserts the vehicle unless one with the same car number exists.
	EnsureVehicle(ctx context.Context, v *models.Vehicle) error
}

type BookingRepo interface {
	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.BookingSummary, error)
	ListBookingsByPassenger(ctx context.Context, passengerID uint) ([]models.Booking, error)
}

type TripRepo interface {
	// CreateTrip fails with KindConflict when a trip already uses the id.
	CreateTrip(ctx context.Context, t *models.Trip) error
	GetTrip(ctx context.Context, id uint) (*models.Trip, error)
	// GetTripForUpdate reads the trip and holds it until the surrounding
	// transaction ends.
	GetTripForUpdate(ctx context.Context, id uint) (*models.Trip, error)
	GetTripDetail(ctx context.Context, id uint) (*models.TripDetail, error)
	UpdateTripStatus(ctx context.Context, id uint, status models.TripStatus) error
}

type PaymentRepo interface {
	CreatePayment(ctx context.Context, p *models.Payment) error
	ListPaymentsByTrip(ctx context.Context, tripID uint) ([]models.Payment, error)
	SetPaymentReceipt(ctx context.Context, id, receiptURL string) error
}

type StatsRepo interface {
	RatingsByCarType(ctx context.Context) ([]models.RatingByCarType, error)
	AgeStats(ctx context.Context, now time.Time) ([]models.AgeStat, error)
	PassengersByAgeGroup(ctx context.Context, now time.Time) ([]models.AgeGroupCount, error)
}

// Store is the full directory. Transact runs fn as one unit of work: all
// writes made through the Store handed to fn commit together or not at all.
type Store interface {
	UserRepo
	PassengerRepo
	DriverRepo
	BookingRepo
	TripRepo
	PaymentRepo
	StatsRepo

	Transact(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}

// QueryRunner is implemented by stores that can run raw read-only SQL.
type QueryRunner interface {
	RunReadOnly(ctx context.Context, query string) ([]map[string]any, error)
}
