package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const TripExchange = "gowheels.trips"

// InitRabbitMQ dials the broker and declares the trip topic exchange.
func InitRabbitMQ(url string) (*amqp091.Connection, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		TripExchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", TripExchange, err)
	}

	logrus.WithField("exchange", TripExchange).Info("connected to RabbitMQ")
	return conn, nil
}

// RabbitNotifier publishes each event to TripExchange with routing key
// trip.<event type>.
type RabbitNotifier struct {
	conn *amqp091.Connection
}

func NewRabbitNotifier(conn *amqp091.Connection) *RabbitNotifier {
	return &RabbitNotifier{conn: conn}
}

func (n *RabbitNotifier) Notify(ctx context.Context, ev Event) error {
	ch, err := n.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = ch.PublishWithContext(ctx,
		TripExchange,
		RoutingKey(ev),
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
			DeliveryMode: amqp091.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", ev.Type, err)
	}
	return nil
}

func RoutingKey(ev Event) string {
	return "trip." + string(ev.Type)
}
