package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gowheels/gowheels-backend/internal/models"
)

const (
	TripUpdatesChannel  = "trip:updates"
	availabilityTTL     = time.Hour
	availabilityKeyBase = "driver:availability:"
)

// InitRedis connects to the Redis server at url.
func InitRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisNotifier publishes lifecycle events on TripUpdatesChannel and
// mirrors each driver's availability under driver:availability:<id>.
type RedisNotifier struct {
	client redis.Cmdable
}

func NewRedisNotifier(client redis.Cmdable) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func (n *RedisNotifier) Notify(ctx context.Context, ev Event) error {
	if id, available, ok := availabilityOf(ev); ok {
		if err := n.SetDriverAvailability(ctx, id, available); err != nil {
			return err
		}
	}
	if ev.Type == EventDriverStatusChanged {
		return nil
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return n.client.Publish(ctx, TripUpdatesChannel, data).Err()
}

// SetDriverAvailability stores driver availability status
func (n *RedisNotifier) SetDriverAvailability(ctx context.Context, driverID uint, isAvailable bool) error {
	value := "false"
	if isAvailable {
		value = "true"
	}
	return n.client.Set(ctx, availabilityKey(driverID), value, availabilityTTL).Err()
}

func availabilityKey(driverID uint) string {
	return fmt.Sprintf("%s%d", availabilityKeyBase, driverID)
}

// availabilityOf derives the driver's availability implied by ev.
func availabilityOf(ev Event) (driverID uint, available, ok bool) {
	switch ev.Type {
	case EventTripCreated:
		return ev.DriverID, false, ev.DriverID != 0
	case EventTripStatusChanged:
		if models.TripStatus(ev.Status).IsTerminal() {
			return ev.DriverID, true, ev.DriverID != 0
		}
	case EventDriverStatusChanged:
		return ev.DriverID, ev.Status == string(models.DriverStatusAvailable), ev.DriverID != 0
	}
	return 0, false, false
}
