package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// ShortageAlert is published when a scan finds equipment short on some day.
type ShortageAlert struct {
	ID         string      `json:"id"`
	Start      string      `json:"start"`
	End        string      `json:"end"`
	Shortages  map[int]int `json:"shortages"`
	DetectedAt time.Time   `json:"detectedAt"`
}

type Publisher interface {
	PublishShortages(ctx context.Context, alert ShortageAlert) error
	Close()
}

// Nop drops every alert. Used when no broker is configured.
type Nop struct{}

func (Nop) PublishShortages(context.Context, ShortageAlert) error { return nil }
func (Nop) Close()                                                {}

type Rabbit struct {
	queue string
	conn  *amqp.Connection
	ch    *amqp.Channel
}

func NewRabbit(url, queue string) (*Rabbit, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	r := &Rabbit{queue: queue, conn: conn, ch: ch}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		r.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return r, nil
}

func (r *Rabbit) Close() {
	if r.ch != nil {
		_ = r.ch.Close()
	}
	if r.conn != nil {
		_ = r.conn.Close()
	}
}

func (r *Rabbit) PublishShortages(ctx context.Context, alert ShortageAlert) error {
	body, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	err = r.ch.PublishWithContext(ctx, "", r.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    alert.ID,
		Timestamp:    alert.DetectedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish shortage alert: %w", err)
	}
	log.Debug().Str("queue", r.queue).Int("equipment", len(alert.Shortages)).Msg("shortage alert published")
	return nil
}
