package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gowheels/gowheels-backend/internal/models"
	"github.com/gowheels/gowheels-backend/internal/store/memstore"
	"github.com/gowheels/gowheels-backend/pkg/utils"
)

type failingNotifier struct{ err error }

func (f failingNotifier) Notify(context.Context, Event) error { return f.err }

func TestMultiNotifier(t *testing.T) {
	rec := &recordingNotifier{}
	boom := errors.New("boom")
	multi := MultiNotifier{failingNotifier{boom}, rec}

	err := multi.Notify(context.Background(), Event{Type: EventTripCreated})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []EventType{EventTripCreated}, rec.types())
}

func TestFailingNotifierDoesNotFailTrip(t *testing.T) {
	st := memstore.New()
	p := seedPassenger(t, st, "amy", "Amy")
	d := seedDriver(t, st, "dan", 4, models.DriverStatusAvailable, "Sedan")
	trips := NewTripService(st, utils.FlatFare(60), failingNotifier{errors.New("down")})
	ctx := context.Background()

	b, err := NewBookingService(st).Create(ctx, p.ID, "A", "B")
	require.NoError(t, err)
	_, err = trips.Create(ctx, b.ID, d.ID)
	require.NoError(t, err)
}

func TestAvailabilityOf(t *testing.T) {
	cases := []struct {
		ev        Event
		available bool
		ok        bool
	}{
		{Event{Type: EventTripCreated, DriverID: 3}, false, true},
		{Event{Type: EventTripStatusChanged, DriverID: 3, Status: "Completed"}, true, true},
		{Event{Type: EventTripStatusChanged, DriverID: 3, Status: "In Progress"}, false, false},
		{Event{Type: EventDriverStatusChanged, DriverID: 3, Status: "Available"}, true, true},
		{Event{Type: EventDriverStatusChanged, DriverID: 3, Status: "Off Duty"}, false, true},
		{Event{Type: EventPaymentRecorded, TripID: 3}, false, false},
	}
	for _, tc := range cases {
		_, available, ok := availabilityOf(tc.ev)
		assert.Equal(t, tc.ok, ok, "%+v", tc.ev)
		assert.Equal(t, tc.available, available, "%+v", tc.ev)
	}
	assert.Equal(t, "driver:availability:3", availabilityKey(3))
	assert.Equal(t, "trip.payment_recorded", RoutingKey(Event{Type: EventPaymentRecorded}))
}

func TestHubNotifierRoutesToParticipants(t *testing.T) {
	st := memstore.New()
	p := seedPassenger(t, st, "amy", "Amy")
	d := seedDriver(t, st, "dan", 4, models.DriverStatusAvailable, "Sedan")
	seedPassenger(t, st, "zed", "Zed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	clients := map[string]*Client{}
	for _, u := range []string{"amy", "dan", "zed"} {
		c := &Client{Username: u, Send: make(chan []byte, 4), Hub: hub}
		hub.register <- c
		clients[u] = c
	}
	require.Eventually(t, func() bool { return hub.ConnectedClients() == 3 }, time.Second, 10*time.Millisecond)

	b, err := NewBookingService(st).Create(ctx, p.ID, "A", "B")
	require.NoError(t, err)
	trips := NewTripService(st, utils.FlatFare(70), NewHubNotifier(hub, st))
	_, err = trips.Create(ctx, b.ID, d.ID)
	require.NoError(t, err)

	for _, u := range []string{"amy", "dan"} {
		select {
		case raw := <-clients[u].Send:
			var msg struct {
				Type string `json:"type"`
				Data Event  `json:"data"`
			}
			require.NoError(t, json.Unmarshal(raw, &msg))
			assert.Equal(t, "trip_created", msg.Type)
			assert.Equal(t, b.ID, msg.Data.TripID)
			assert.Equal(t, 70, msg.Data.Fare)
		default:
			t.Fatalf("%s got no message", u)
		}
	}
	assert.Empty(t, clients["zed"].Send)
}

type fakeSender struct {
	sent []*messaging.Message
}

func (f *fakeSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	f.sent = append(f.sent, m)
	return "projects/x/messages/1", nil
}

func TestPushNotifier(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	without := seedDriver(t, st, "eve", 4, models.DriverStatusAvailable, "Sedan")
	withToken := &models.Driver{Username: "dan", Name: "Dan", CarNo: without.CarNo, FCMToken: "tok-dan"}
	require.NoError(t, st.CreateDriver(ctx, withToken))

	sender := &fakeSender{}
	push := NewPushNotifier(sender, st)

	require.NoError(t, push.Notify(ctx, Event{Type: EventTripCreated, TripID: 5, DriverID: withToken.ID, Fare: 80}))
	require.NoError(t, push.Notify(ctx, Event{Type: EventTripCreated, TripID: 6, DriverID: without.ID}))
	require.NoError(t, push.Notify(ctx, Event{Type: EventTripStatusChanged, TripID: 5, DriverID: withToken.ID}))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "tok-dan", sender.sent[0].Token)
	assert.Equal(t, "5", sender.sent[0].Data["tripId"])
	assert.Contains(t, sender.sent[0].Notification.Body, "80")
}
