package models

import "time"

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "Completed"
)

// MaxPaymentTypeLen matches the payment_type column width.
const MaxPaymentTypeLen = 32

// Payment settles a completed trip.
type Payment struct {
	ID          string        `gorm:"column:payment_id;primaryKey;size:36" json:"payment_id"`
	TripID      uint          `gorm:"column:trip_id;not null;index" json:"trip_id"`
	PaymentType string        `gorm:"column:payment_type;size:32;not null" json:"payment_type"`
	Amount      float64       `gorm:"column:amount;not null" json:"amount"`
	Status      PaymentStatus `gorm:"column:status;size:16;not null" json:"status"`
	ReceiptURL  string        `gorm:"column:receipt_url" json:"receipt_url,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// TableName specifies the table name
func (Payment) TableName() string {
	return "payments"
}
