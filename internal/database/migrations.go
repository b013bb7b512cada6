package database

import (
	"github.com/gowheels/gowheels-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.Passenger{},
		&models.Driver{},
		&models.Booking{},
		&models.Trip{},
		&models.Payment{},
	)
	if err != nil {
		return err
	}

	constraints := []struct{ table, name, def string }{
		{"users", "users_category_check", "CHECK (category IN ('driver', 'passenger'))"},
		{"drivers", "drivers_rating_check", "CHECK (rating >= 0 AND rating <= 5)"},
		{"drivers", "drivers_current_status_check", "CHECK (current_status IN ('Off Duty', 'Available', 'In Ride'))"},
		{"trips", "trips_status_check", "CHECK (status IN ('Pending', 'In Progress', 'Completed', 'Cancelled'))"},
		{"payments", "payments_amount_check", "CHECK (amount >= 0)"},
		{"passengers", "passengers_username_fkey", "FOREIGN KEY (username) REFERENCES users(username)"},
		{"drivers", "drivers_username_fkey", "FOREIGN KEY (username) REFERENCES users(username)"},
		{"bookings", "bookings_passenger_id_fkey", "FOREIGN KEY (passenger_id) REFERENCES passengers(passenger_id)"},
		{"trips", "trips_booking_fkey", "FOREIGN KEY (trip_id) REFERENCES bookings(booking_id)"},
		{"trips", "trips_passenger_id_fkey", "FOREIGN KEY (passenger_id) REFERENCES passengers(passenger_id)"},
		{"trips", "trips_driver_id_fkey", "FOREIGN KEY (driver_id) REFERENCES drivers(driver_id)"},
		{"payments", "payments_trip_id_fkey", "FOREIGN KEY (trip_id) REFERENCES trips(trip_id)"},
	}
	for _, c := range constraints {
		if err := db.Exec(`ALTER TABLE ` + c.table + ` DROP CONSTRAINT IF EXISTS ` + c.name).Error; err != nil {
			return err
		}
		if err := db.Exec(`ALTER TABLE ` + c.table + ` ADD CONSTRAINT ` + c.name + ` ` + c.def).Error; err != nil {
			return err
		}
	}

	// At most one settled payment per trip
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS payments_one_completed_per_trip
		ON payments (trip_id) WHERE status = 'Completed'`).Error
}
