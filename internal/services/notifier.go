package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gowheels/gowheels-backend/internal/models"
)

type EventType string

const (
	EventTripCreated         EventType = "trip_created"
	EventTripStatusChanged   EventType = "trip_status"
	EventPaymentRecorded     EventType = "payment_recorded"
	EventDriverStatusChanged EventType = "driver_status"
)

// Event is published after a lifecycle change has been committed.
type Event struct {
	Type        EventType `json:"type"`
	TripID      uint      `json:"trip_id,omitempty"`
	PassengerID uint      `json:"passenger_id,omitempty"`
	DriverID    uint      `json:"driver_id,omitempty"`
	Status      string    `json:"status,omitempty"`
	Fare        int       `json:"fare,omitempty"`
	PaymentID   string    `json:"payment_id,omitempty"`
	Amount      float64   `json:"amount,omitempty"`
	At          time.Time `json:"at"`
}

func tripEvent(typ EventType, t *models.Trip) Event {
	return Event{
		Type:        typ,
		TripID:      t.ID,
		PassengerID: t.PassengerID,
		DriverID:    t.DriverID,
		Status:      string(t.Status),
		Fare:        t.Fare,
		At:          time.Now().UTC(),
	}
}

// Notifier delivers lifecycle events to an outside channel.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// MultiNotifier delivers to every notifier and joins their errors.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, ev Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// notify is best effort: the change is already committed.
func notify(ctx context.Context, n Notifier, ev Event) {
	if n == nil {
		return
	}
	if err := n.Notify(ctx, ev); err != nil {
		logrus.WithError(err).
			WithFields(logrus.Fields{"event": ev.Type, "trip_id": ev.TripID, "driver_id": ev.DriverID}).
			Warn("lifecycle notification failed")
	}
}
