// Package memstore is an in-process implementation of store.Store. It backs
// DB_DRIVER=memory demo runs and the service and handler tests.
//
// Transact holds the store lock for the whole unit of work and runs it
// against a copy of the data, which replaces the live data only if the
// callback returns nil.
package memstore

import (
	"context"
	"maps"
	"math"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/gowheels/gowheels-backend/internal/apperr"
	"github.com/gowheels/gowheels-backend/internal/models"
	"github.com/gowheels/gowheels-backend/internal/store"
)

type state struct {
	users      map[string]models.User
	passengers map[uint]models.Passenger
	drivers    map[uint]models.Driver
	vehicles   map[string]models.Vehicle
	bookings   map[uint]models.Booking
	trips      map[uint]models.Trip
	payments   map[string]models.Payment
	paymentSeq []string

	nextPassenger uint
	nextDriver    uint
	nextBooking   uint
}

func newState() *state {
	return &state{
		users:         map[string]models.User{},
		passengers:    map[uint]models.Passenger{},
		drivers:       map[uint]models.Driver{},
		vehicles:      map[string]models.Vehicle{},
		bookings:      map[uint]models.Booking{},
		trips:         map[uint]models.Trip{},
		payments:      map[string]models.Payment{},
		nextPassenger: 1,
		nextDriver:    1,
		nextBooking:   1,
	}
}

func (s *state) clone() *state {
	c := *s
	c.users = maps.Clone(s.users)
	c.passengers = maps.Clone(s.passengers)
	c.drivers = maps.Clone(s.drivers)
	c.vehicles = maps.Clone(s.vehicles)
	c.bookings = maps.Clone(s.bookings)
	c.trips = maps.Clone(s.trips)
	c.payments = maps.Clone(s.payments)
	c.paymentSeq = slices.Clone(s.paymentSeq)
	return &c
}

type shared struct {
	mu sync.Mutex
	st *state
}

// Store is safe for concurrent use.
type Store struct {
	shared *shared
	tx     *state // set on the Store handed to a Transact callback
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{shared: &shared{st: newState()}}
}

func (s *Store) with(fn func(st *state) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	return fn(s.shared.st)
}

func (s *Store) Transact(ctx context.Context, fn func(tx store.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return apperr.StoreUnavailable(err, "begin transaction")
	}
	work := s.shared.st.clone()
	if err := fn(&Store{shared: s.shared, tx: work}); err != nil {
		return err
	}
	s.shared.st = work
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func now() time.Time {
	return time.Now().UTC()
}

// Users

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	return s.with(func(st *state) error {
		if _, ok := st.users[u.Username]; ok {
			return apperr.Conflict("username %q is already taken", u.Username)
		}
		if u.CreatedAt.IsZero() {
			u.CreatedAt = now()
		}
		u.UpdatedAt = u.CreatedAt
		st.users[u.Username] = *u
		return nil
	})
}

func (s *Store) GetUser(_ context.Context, username string) (*models.User, error) {
	var out models.User
	err := s.with(func(st *state) error {
		u, ok := st.users[username]
		if !ok {
			return apperr.NotFound("user %q not found", username)
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Passengers

func (s *Store) CreatePassenger(_ context.Context, p *models.Passenger) error {
	return s.with(func(st *state) error {
		for _, existing := range st.passengers {
			if existing.Username == p.Username {
				return apperr.Conflict("passenger profile for %q already exists", p.Username)
			}
		}
		p.ID = st.nextPassenger
		st.nextPassenger++
		st.passengers[p.ID] = *p
		return nil
	})
}

func (s *Store) GetPassenger(_ context.Context, id uint) (*models.Passenger, error) {
	var out models.Passenger
	err := s.with(func(st *state) error {
		p, ok := st.passengers[id]
		if !ok {
			return apperr.NotFound("passenger %d not found", id)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) GetPassengerByUsername(_ context.Context, username string) (*models.Passenger, error) {
	var out models.Passenger
	err := s.with(func(st *state) error {
		for _, p := range st.passengers {
			if p.Username == username {
				out = p
				return nil
			}
		}
		return apperr.NotFound("passenger %q not found", username)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) ListPassengers(_ context.Context) ([]models.Passenger, error) {
	out := []models.Passenger{}
	err := s.with(func(st *state) error {
		out = sortedValues(st.passengers)
		return nil
	})
	return out, err
}

func (s *Store) UpdatePassenger(_ context.Context, id uint, upd models.PassengerUpdate) error {
	return s.with(func(st *state) error {
		p, ok := st.passengers[id]
		if !ok {
			return apperr.NotFound("passenger %d not found", id)
		}
		p.Name = upd.Name
		p.ContactNumber = upd.ContactNumber
		p.PickupLocation = upd.PickupLocation
		st.passengers[id] = p
		return nil
	})
}

// Drivers

func (s *Store) CreateDriver(_ context.Context, d *models.Driver) error {
	return s.with(func(st *state) error {
		for _, existing := range st.drivers {
			if existing.Username == d.Username {
				return apperr.Conflict("driver profile for %q already exists", d.Username)
			}
		}
		if d.CurrentStatus == "" {
			d.CurrentStatus = models.DriverStatusOffDuty
		}
		d.ID = st.nextDriver
		st.nextDriver++
		row := *d
		row.Vehicle = nil
		st.drivers[d.ID] = row
		return nil
	})
}

// withVehicle returns a copy of d carrying its vehicle, or false when the
// vehicle is missing (the SQL store inner-joins vehicles).
func (st *state) withVehicle(d models.Driver) (models.Driver, bool) {
	v, ok := st.vehicles[d.CarNo]
	if !ok {
		return d, false
	}
	d.Vehicle = &v
	return d, true
}

func (s *Store) GetDriver(_ context.Context, id uint) (*models.Driver, error) {
	var out models.Driver
	err := s.with(func(st *state) error {
		d, ok := st.drivers[id]
		if !ok {
			return apperr.NotFound("driver %d not found", id)
		}
		out, _ = st.withVehicle(d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) GetDriverByUsername(_ context.Context, username string) (*models.Driver, error) {
	var out models.Driver
	err := s.with(func(st *state) error {
		for _, d := range st.drivers {
			if d.Username == username {
				out, _ = st.withVehicle(d)
				return nil
			}
		}
		return apperr.NotFound("driver %q not found", username)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) ListDrivers(_ context.Context) ([]models.Driver, error) {
	out := []models.Driver{}
	err := s.with(func(st *state) error {
		for _, d := range sortedValues(st.drivers) {
			if dv, ok := st.withVehicle(d); ok {
				out = append(out, dv)
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) ListDriversByStatus(_ context.Context, status models.DriverStatus) ([]models.Driver, error) {
	out := []models.Driver{}
	err := s.with(func(st *state) error {
		for _, d := range sortedValues(st.drivers) {
			if d.CurrentStatus != status {
				continue
			}
			if dv, ok := st.withVehicle(d); ok {
				out = append(out, dv)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
		return nil
	})
	return out, err
}

func (s *Store) CompareAndSwapDriverStatus(_ context.Context, id uint, expected, next models.DriverStatus) (bool, error) {
	var swapped bool
	err := s.with(func(st *state) error {
		d, ok := st.drivers[id]
		if !ok || d.CurrentStatus != expected {
			return nil
		}
		d.CurrentStatus = next
		st.drivers[id] = d
		swapped = true
		return nil
	})
	return swapped, err
}

func (s *Store) SetDriverStatus(_ context.Context, id uint, status models.DriverStatus) error {
	return s.with(func(st *state) error {
		d, ok := st.drivers[id]
		if !ok {
			return apperr.NotFound("driver %d not found", id)
		}
		d.CurrentStatus = status
		st.drivers[id] = d
		return nil
	})
}

func (s *Store) SetDriverLocation(_ context.Context, id uint, cabLocation string) error {
	return s.with(func(st *state) error {
		d, ok := st.drivers[id]
		if !ok {
			return apperr.NotFound("driver %d not found", id)
		}
		d.CabLocation = cabLocation
		st.drivers[id] = d
		return nil
	})
}

func (s *Store) EnsureVehicle(_ context.Context, v *models.Vehicle) error {
	return s.with(func(st *state) error {
		if _, ok := st.vehicles[v.CarNo]; !ok {
			st.vehicles[v.CarNo] = *v
		}
		return nil
	})
}

// Bookings

func (s *Store) CreateBooking(_ context.Context, b *models.Booking) error {
	return s.with(func(st *state) error {
		b.ID = st.nextBooking
		st.nextBooking++
		if b.CreatedAt.IsZero() {
			b.CreatedAt = now()
		}
		st.bookings[b.ID] = *b
		return nil
	})
}

func (s *Store) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	var out models.Booking
	err := s.with(func(st *state) error {
		b, ok := st.bookings[id]
		if !ok {
			return apperr.NotFound("booking %d not found", id)
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) ListBookings(_ context.Context) ([]models.BookingSummary, error) {
	out := []models.BookingSummary{}
	err := s.with(func(st *state) error {
		for _, b := range sortedValues(st.bookings) {
			p, ok := st.passengers[b.PassengerID]
			if !ok {
				continue
			}
			out = append(out, models.BookingSummary{Booking: b, PassengerName: p.Name})
		}
		return nil
	})
	return out, err
}

func (s *Store) ListBookingsByPassenger(_ context.Context, passengerID uint) ([]models.Booking, error) {
	out := []models.Booking{}
	err := s.with(func(st *state) error {
		for _, b := range sortedValues(st.bookings) {
			if b.PassengerID == passengerID {
				out = append(out, b)
			}
		}
		return nil
	})
	return out, err
}

// Trips

func (s *Store) CreateTrip(_ context.Context, t *models.Trip) error {
	return s.with(func(st *state) error {
		if _, ok := st.trips[t.ID]; ok {
			return apperr.Conflict("trip %d already exists", t.ID)
		}
		ts := now()
		t.CreatedAt, t.UpdatedAt = ts, ts
		st.trips[t.ID] = *t
		return nil
	})
}

func (s *Store) GetTrip(_ context.Context, id uint) (*models.Trip, error) {
	var out models.Trip
	err := s.with(func(st *state) error {
		t, ok := st.trips[id]
		if !ok {
			return apperr.NotFound("trip %d not found", id)
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTripForUpdate needs no row lock: a Transact callback already holds the
// store lock.
func (s *Store) GetTripForUpdate(ctx context.Context, id uint) (*models.Trip, error) {
	return s.GetTrip(ctx, id)
}

func (s *Store) GetTripDetail(_ context.Context, id uint) (*models.TripDetail, error) {
	var out models.TripDetail
	err := s.with(func(st *state) error {
		t, ok := st.trips[id]
		if !ok {
			return apperr.NotFound("trip %d not found", id)
		}
		p, pok := st.passengers[t.PassengerID]
		d, dok := st.drivers[t.DriverID]
		var v models.Vehicle
		vok := false
		if dok {
			v, vok = st.vehicles[d.CarNo]
		}
		if !pok || !vok {
			return apperr.NotFound("trip %d not found", id)
		}
		out = models.TripDetail{
			Trip:              t,
			PassengerName:     p.Name,
			PassengerUsername: p.Username,
			DriverName:        d.Name,
			DriverUsername:    d.Username,
			CarModel:          v.CarModel,
			CarType:           v.CarType,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) UpdateTripStatus(_ context.Context, id uint, status models.TripStatus) error {
	return s.with(func(st *state) error {
		t, ok := st.trips[id]
		if !ok {
			return apperr.NotFound("trip %d not found", id)
		}
		t.Status = status
		t.UpdatedAt = now()
		st.trips[id] = t
		return nil
	})
}

// Payments

func (s *Store) CreatePayment(_ context.Context, p *models.Payment) error {
	return s.with(func(st *state) error {
		if _, ok := st.payments[p.ID]; ok {
			return apperr.Conflict("payment %s already exists", p.ID)
		}
		if p.Status == models.PaymentStatusCompleted {
			for _, existing := range st.payments {
				if existing.TripID == p.TripID && existing.Status == models.PaymentStatusCompleted {
					return apperr.Conflict("trip %d is already paid", p.TripID)
				}
			}
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now()
		}
		st.payments[p.ID] = *p
		st.paymentSeq = append(st.paymentSeq, p.ID)
		return nil
	})
}

func (s *Store) ListPaymentsByTrip(_ context.Context, tripID uint) ([]models.Payment, error) {
	out := []models.Payment{}
	err := s.with(func(st *state) error {
		for _, id := range st.paymentSeq {
			if p := st.payments[id]; p.TripID == tripID {
				out = append(out, p)
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) SetPaymentReceipt(_ context.Context, id, receiptURL string) error {
	return s.with(func(st *state) error {
		p, ok := st.payments[id]
		if !ok {
			return apperr.NotFound("payment %s not found", id)
		}
		p.ReceiptURL = receiptURL
		st.payments[id] = p
		return nil
	})
}

// Stats

func (s *Store) RatingsByCarType(_ context.Context) ([]models.RatingByCarType, error) {
	out := []models.RatingByCarType{}
	err := s.with(func(st *state) error {
		groups := map[string]*models.RatingByCarType{}
		sums := map[string]float64{}
		for _, d := range st.drivers {
			v, ok := st.vehicles[d.CarNo]
			if !ok {
				continue
			}
			g, ok := groups[v.CarType]
			if !ok {
				g = &models.RatingByCarType{CarType: v.CarType, LowestRating: d.Rating, HighestRating: d.Rating}
				groups[v.CarType] = g
			}
			g.DriverCount++
			sums[v.CarType] += d.Rating
			g.LowestRating = math.Min(g.LowestRating, d.Rating)
			g.HighestRating = math.Max(g.HighestRating, d.Rating)
		}
		for carType, g := range groups {
			g.AverageRating = round(sums[carType]/float64(g.DriverCount), 2)
			out = append(out, *g)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].AverageRating != out[j].AverageRating {
				return out[i].AverageRating > out[j].AverageRating
			}
			return out[i].CarType < out[j].CarType
		})
		return nil
	})
	return out, err
}

func (s *Store) AgeStats(_ context.Context, at time.Time) ([]models.AgeStat, error) {
	out := []models.AgeStat{}
	err := s.with(func(st *state) error {
		var driverAges, passengerAges []int
		for _, d := range st.drivers {
			driverAges = append(driverAges, models.AgeInYears(d.DateOfBirth, at))
		}
		for _, p := range st.passengers {
			passengerAges = append(passengerAges, models.AgeInYears(p.DateOfBirth, at))
		}
		if row, ok := ageStat(models.UserTypeDrivers, driverAges); ok {
			out = append(out, row)
		}
		if row, ok := ageStat(models.UserTypePassengers, passengerAges); ok {
			out = append(out, row)
		}
		return nil
	})
	return out, err
}

func ageStat(userType string, ages []int) (models.AgeStat, bool) {
	if len(ages) == 0 {
		return models.AgeStat{}, false
	}
	sum := 0
	for _, a := range ages {
		sum += a
	}
	return models.AgeStat{
		UserType:    userType,
		AverageAge:  round(float64(sum)/float64(len(ages)), 1),
		YoungestAge: slices.Min(ages),
		OldestAge:   slices.Max(ages),
	}, true
}

func (s *Store) PassengersByAgeGroup(_ context.Context, at time.Time) ([]models.AgeGroupCount, error) {
	out := []models.AgeGroupCount{}
	err := s.with(func(st *state) error {
		counts := map[string]int64{}
		for _, p := range st.passengers {
			counts[models.AgeGroupOf(models.AgeInYears(p.DateOfBirth, at))]++
		}
		for _, g := range models.AgeGroups {
			if n := counts[g]; n > 0 {
				out = append(out, models.AgeGroupCount{AgeGroup: g, PassengerCount: n})
			}
		}
		return nil
	})
	return out, err
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func sortedValues[V any](m map[uint]V) []V {
	keys := slices.Sorted(maps.Keys(m))
	out := make([]V, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
