package models

import "time"

// Dashboard rows.

type RatingByCarType struct {
	CarType       string  `gorm:"column:car_type" json:"car_type"`
	AverageRating float64 `gorm:"column:average_rating" json:"average_rating"`
	LowestRating  float64 `gorm:"column:lowest_rating" json:"lowest_rating"`
	HighestRating float64 `gorm:"column:highest_rating" json:"highest_rating"`
	DriverCount   int64   `gorm:"column:driver_count" json:"driver_count"`
}

type AgeStat struct {
	UserType    string  `gorm:"column:user_type" json:"user_type"`
	AverageAge  float64 `gorm:"column:average_age" json:"average_age"`
	YoungestAge int     `gorm:"column:youngest_age" json:"youngest_age"`
	OldestAge   int     `gorm:"column:oldest_age" json:"oldest_age"`
}

type AgeGroupCount struct {
	AgeGroup       string `gorm:"column:age_group" json:"age_group"`
	PassengerCount int64  `gorm:"column:passenger_count" json:"passenger_count"`
}

const (
	UserTypeDrivers    = "Drivers"
	UserTypePassengers = "Passengers"
)

// AgeGroups lists the passenger age buckets in display order.
var AgeGroups = []string{"Under 20", "20-25", "26-30", "31-40", "Over 40"}

// AgeInYears is the calendar-year difference, matching the dashboard's
// YEAR(now) - YEAR(date_of_birth) definition.
func AgeInYears(dob, now time.Time) int {
	return now.Year() - dob.Year()
}

func AgeGroupOf(age int) string {
	switch {
	case age < 20:
		return AgeGroups[0]
	case age <= 25:
		return AgeGroups[1]
	case age <= 30:
		return AgeGroups[2]
	case age <= 40:
		return AgeGroups[3]
	default:
		return AgeGroups[4]
	}
}
