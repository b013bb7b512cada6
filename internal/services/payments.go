package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gowheels/gowheels-backend/internal/apperr"
	"github.com/gowheels/gowheels-backend/internal/models"
	"github.com/gowheels/gowheels-backend/internal/store"
)

// IDGenerator returns a fresh, unique payment id.
type IDGenerator func() string

type PaymentService struct {
	store    store.Store
	newID    IDGenerator
	receipts ReceiptStore
	notifier Notifier
}

type PaymentOption func(*PaymentService)

func WithIDGenerator(gen IDGenerator) PaymentOption {
	return func(s *PaymentService) { s.newID = gen }
}

func WithReceipts(r ReceiptStore) PaymentOption {
	return func(s *PaymentService) { s.receipts = r }
}

func NewPaymentService(st store.Store, n Notifier, opts ...PaymentOption) *PaymentService {
	s := &PaymentService{store: st, newID: uuid.NewString, notifier: n}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record settles a completed trip. A trip takes exactly one completed
// payment; a second one is a Conflict.
func (s *PaymentService) Record(ctx context.Context, tripID uint, paymentType string, amount float64) (*models.Payment, error) {
	paymentType = strings.TrimSpace(paymentType)
	if paymentType == "" {
		return nil, apperr.InvalidRequest("payment_type is required")
	}
	if len(paymentType) > models.MaxPaymentTypeLen {
		return nil, apperr.InvalidRequest("payment_type must be at most %d characters", models.MaxPaymentTypeLen)
	}
	if amount < 0 {
		return nil, apperr.InvalidRequest("payment amount cannot be negative")
	}

	var p *models.Payment
	err := s.store.Transact(ctx, func(tx store.Store) error {
		t, err := tx.GetTripForUpdate(ctx, tripID)
		if err != nil {
			return err
		}
		if t.Status != models.TripStatusCompleted {
			return apperr.InvalidState("payment can only be made for completed trips")
		}

		existing, err := tx.ListPaymentsByTrip(ctx, tripID)
		if err != nil {
			return err
		}
		for _, e := range existing {
			if e.Status == models.PaymentStatusCompleted {
				return apperr.Conflict("trip %d is already paid", tripID)
			}
		}

		p = &models.Payment{
			ID:          s.newID(),
			TripID:      tripID,
			PaymentType: paymentType,
			Amount:      amount,
			Status:      models.PaymentStatusCompleted,
		}
		return tx.CreatePayment(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	s.storeReceipt(ctx, p)
	notify(ctx, s.notifier, Event{
		Type:      EventPaymentRecorded,
		TripID:    tripID,
		PaymentID: p.ID,
		Amount:    p.Amount,
		Status:    string(p.Status),
		At:        time.Now().UTC(),
	})
	return p, nil
}

func (s *PaymentService) ListByTrip(ctx context.Context, tripID uint) ([]models.Payment, error) {
	if _, err := s.store.GetTrip(ctx, tripID); err != nil {
		return nil, err
	}
	return s.store.ListPaymentsByTrip(ctx, tripID)
}

// storeReceipt is best effort; the payment stands without a receipt.
func (s *PaymentService) storeReceipt(ctx context.Context, p *models.Payment) {
	if s.receipts == nil {
		return
	}
	log := logrus.WithFields(logrus.Fields{"payment_id": p.ID, "trip_id": p.TripID})

	body, err := json.Marshal(p)
	if err != nil {
		log.WithError(err).Warn("encode receipt")
		return
	}
	url, err := s.receipts.Put(ctx, fmt.Sprintf("receipts/%s.json", p.ID), body)
	if err != nil {
		log.WithError(err).Warn("store receipt")
		return
	}
	if err := s.store.SetPaymentReceipt(ctx, p.ID, url); err != nil {
		log.WithError(err).Warn("save receipt location")
		return
	}
	p.ReceiptURL = url
}
