package models

import "time"

// Passenger is the rider profile of a passenger account.
type Passenger struct {
	ID             uint      `gorm:"column:passenger_id;primaryKey" json:"passenger_id"`
	Username       string    `gorm:"column:username;uniqueIndex;size:64;not null" json:"username"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	ContactNumber  string    `gorm:"column:contact_number" json:"contact_number"`
	PickupLocation string    `gorm:"column:pickup_location" json:"pickup_location"`
	DateOfBirth    time.Time `gorm:"column:date_of_birth;type:date" json:"date_of_birth"`
}

// TableName specifies the table name
func (Passenger) TableName() string {
	return "passengers"
}

// PassengerUpdate carries the editable profile fields.
type PassengerUpdate struct {
	Name           string `json:"name"`
	ContactNumber  string `json:"contact_number"`
	PickupLocation string `json:"pickup_location"`
}
