package services

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/gowheels/gowheels-backend/internal/store"
)

// InitFirebase initializes the Firebase Cloud Messaging client from a
// service account file.
func InitFirebase(ctx context.Context, serviceAccountPath string) (*messaging.Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(serviceAccountPath))
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}

	logrus.Info("Firebase Cloud Messaging initialized")
	return client, nil
}

// MessageSender is the part of *messaging.Client used for pushes.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// PushNotifier alerts a driver's device when a trip is assigned to them.
// Drivers without a registered FCM token are skipped.
type PushNotifier struct {
	sender MessageSender
	store  store.Store
}

func NewPushNotifier(sender MessageSender, st store.Store) *PushNotifier {
	return &PushNotifier{sender: sender, store: st}
}

func (n *PushNotifier) Notify(ctx context.Context, ev Event) error {
	if ev.Type != EventTripCreated {
		return nil
	}
	d, err := n.store.GetDriver(ctx, ev.DriverID)
	if err != nil {
		return err
	}
	if d.FCMToken == "" {
		return nil
	}

	_, err = n.sender.Send(ctx, tripAssignedMessage(d.FCMToken, ev))
	if err != nil {
		return fmt.Errorf("error sending message: %w", err)
	}
	return nil
}

func tripAssignedMessage(token string, ev Event) *messaging.Message {
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: "New trip assigned",
			Body:  fmt.Sprintf("Trip #%d is waiting for you. Fare: %d", ev.TripID, ev.Fare),
		},
		Data: map[string]string{
			"type":           string(ev.Type),
			"tripId":         fmt.Sprintf("%d", ev.TripID),
			"fare":           fmt.Sprintf("%d", ev.Fare),
			"notificationId": fmt.Sprintf("trip_created_%d", ev.TripID),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID:    "gowheels_trips",
				Sound:        "default",
				DefaultSound: true,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default", ContentAvailable: true},
			},
		},
	}
}
