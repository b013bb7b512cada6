package models

import "time"

type DriverStatus string

const (
	DriverStatusOffDuty   DriverStatus = "Off Duty"
	DriverStatusAvailable DriverStatus = "Available"
	DriverStatusInRide    DriverStatus = "In Ride"
)

// ParseDriverStatus accepts only the exact status spellings.
func ParseDriverStatus(s string) (DriverStatus, bool) {
	switch DriverStatus(s) {
	case DriverStatusOffDuty, DriverStatusAvailable, DriverStatusInRide:
		return DriverStatus(s), true
	}
	return "", false
}

// Driver is the profile of a driver account. CurrentStatus gates whether the
// driver may be picked for a new trip.
type Driver struct {
	ID            uint         `gorm:"column:driver_id;primaryKey" json:"driver_id"`
	Username      string       `gorm:"column:username;uniqueIndex;size:64;not null" json:"username"`
	Name          string       `gorm:"column:name;not null" json:"name"`
	Rating        float64      `gorm:"column:rating;not null;default:0" json:"rating"`
	CurrentStatus DriverStatus `gorm:"column:current_status;size:16;not null;default:'Off Duty';index" json:"current_status"`
	CabLocation   string       `gorm:"column:cab_location" json:"cab_location"`
	CarNo         string       `gorm:"column:car_no;size:32;index" json:"car_no"`
	Vehicle       *Vehicle     `gorm:"foreignKey:CarNo;references:CarNo" json:"vehicle,omitempty"`
	DateOfBirth   time.Time    `gorm:"column:date_of_birth;type:date" json:"date_of_birth"`
	FCMToken      string       `gorm:"column:fcm_token" json:"-"`
}

// TableName specifies the table name
func (Driver) TableName() string {
	return "drivers"
}

// Vehicle is reference data shared by drivers.
type Vehicle struct {
	CarNo    string `gorm:"column:car_no;primaryKey;size:32" json:"car_no"`
	CarModel string `gorm:"column:car_model;not null" json:"car_model"`
	CarType  string `gorm:"column:car_type;not null" json:"car_type"`
}

// TableName specifies the table name
func (Vehicle) TableName() string {
	return "vehicles"
}
