// Package rabbit mirrors finished plays to RabbitMQ as play.finished events.
package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"trivia-service/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PlayFinishedRoutingKey routes finished-play events on the exchange.
const PlayFinishedRoutingKey = "play.finished"

// Channel is the part of *amqp.Channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// PlayFinished is the event body.
type PlayFinished struct {
	Event  string            `json:"event"`
	Result domain.PlayResult `json:"result"`
}

type Publisher struct {
	conn     *amqp.Connection
	mu       sync.Mutex
	ch       Channel
	exchange string
}

// Dial connects to the broker and declares the durable topic exchange.
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbit: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open rabbit channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	p := NewPublisher(ch, exchange)
	p.conn = conn
	return p, nil
}

func NewPublisher(ch Channel, exchange string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange}
}

// AddPlay publishes one play.finished event.
func (p *Publisher) AddPlay(ctx context.Context, result domain.PlayResult) error {
	msg, err := playFinishedMessage(result)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.PublishWithContext(ctx, p.exchange, PlayFinishedRoutingKey, false, false, msg); err != nil {
		return fmt.Errorf("publish play %s: %w", result.ID, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func playFinishedMessage(result domain.PlayResult) (amqp.Publishing, error) {
	body, err := json.Marshal(PlayFinished{Event: PlayFinishedRoutingKey, Result: result})
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal play event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    result.ID,
		Timestamp:    result.EndedAt,
		Type:         PlayFinishedRoutingKey,
		Body:         body,
	}, nil
}
