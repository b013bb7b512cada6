package models

import "time"

// Booking is a ride request between two locations, before a driver is chosen.
// The trip created from it reuses its id.
type Booking struct {
	ID             uint      `gorm:"column:booking_id;primaryKey" json:"booking_id"`
	PassengerID    uint      `gorm:"column:passenger_id;not null;index" json:"passenger_id"`
	PickupLocation string    `gorm:"column:pickup_location;not null" json:"pickup_location"`
	DropLocation   string    `gorm:"column:drop_location;not null" json:"drop_location"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Booking) TableName() string {
	return "bookings"
}

// BookingSummary is a booking joined with its passenger's name.
type BookingSummary struct {
	Booking       `gorm:"embedded"`
	PassengerName string `gorm:"column:passenger_name" json:"passenger_name"`
}
