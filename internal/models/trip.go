package models

import "time"

type TripStatus string

const (
	TripStatusPending    TripStatus = "Pending"
	TripStatusInProgress TripStatus = "In Progress"
	TripStatusCompleted  TripStatus = "Completed"
	TripStatusCancelled  TripStatus = "Cancelled"
)

func ParseTripStatus(s string) (TripStatus, bool) {
	switch TripStatus(s) {
	case TripStatusPending, TripStatusInProgress, TripStatusCompleted, TripStatusCancelled:
		return TripStatus(s), true
	}
	return "", false
}

// IsTerminal reports whether reaching s releases the driver.
func (s TripStatus) IsTerminal() bool {
	return s == TripStatusCompleted || s == TripStatusCancelled
}

// Trip is a booking matched to a driver. ID always equals the booking id.
type Trip struct {
	ID             uint       `gorm:"column:trip_id;primaryKey;autoIncrement:false" json:"trip_id"`
	Status         TripStatus `gorm:"column:status;size:16;not null;default:'Pending'" json:"status"`
	PassengerID    uint       `gorm:"column:passenger_id;not null;index" json:"passenger_id"`
	DriverID       uint       `gorm:"column:driver_id;not null;index" json:"driver_id"`
	PickupLocation string     `gorm:"column:pickup_location;not null" json:"pickup_location"`
	DropLocation   string     `gorm:"column:drop_location;not null" json:"drop_location"`
	Fare           int        `gorm:"column:fare;not null" json:"fare"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName specifies the table name
func (Trip) TableName() string {
	return "trips"
}

// TripDetail is a trip joined with the passenger, driver and vehicle it refers to.
type TripDetail struct {
	Trip              `gorm:"embedded"`
	PassengerName     string `gorm:"column:passenger_name" json:"passenger_name"`
	PassengerUsername string `gorm:"column:passenger_username" json:"passenger_username"`
	DriverName        string `gorm:"column:driver_name" json:"driver_name"`
	DriverUsername    string `gorm:"column:driver_username" json:"driver_username"`
	CarModel          string `gorm:"column:car_model" json:"car_model"`
	CarType           string `gorm:"column:car_type" json:"car_type"`
}
