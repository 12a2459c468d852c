package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/cinepass/purchase-service/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher emits purchase lifecycle events over a shared AMQP connection.
// Publishing is best-effort: failures are logged and swallowed so a broker
// outage can never fail a purchase operation.
type Publisher struct {
	url    string
	logger *slog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url string, logger *slog.Logger) *Publisher {
	return &Publisher{
		url:    url,
		logger: logger,
	}
}

func (p *Publisher) PurchaseCreated(ctx context.Context, purchase domain.Purchase) {
	p.publish(ctx, QueuePurchaseCreated, purchase)
}

func (p *Publisher) PurchaseCancelled(ctx context.Context, purchase domain.Purchase) {
	p.publish(ctx, QueuePurchaseCancelled, purchase)
}

func (p *Publisher) PurchaseExpired(ctx context.Context, purchase domain.Purchase) {
	p.publish(ctx, QueuePurchaseExpired, purchase)
}

func (p *Publisher) publish(ctx context.Context, queueName string, purchase domain.Purchase) {
	event := PurchaseEvent{
		PurchaseID:    purchase.ID.String(),
		ShowtimeID:    purchase.ShowtimeID,
		NumberTickets: purchase.NumberTickets,
		ChosenSeats:   purchase.ChosenSeats,
		Status:        string(purchase.Status),
		OccurredAt:    time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal purchase event", "queue", queueName, "error", err)
		return
	}

	ch, err := p.channel()
	if err != nil {
		p.logger.Error("failed to open amqp channel", "queue", queueName, "error", err)
		return
	}

	// Durable queue, idempotent declare.
	_, err = ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		p.logger.Error("failed to declare queue", "queue", queueName, "error", err)
		p.reset()
		return
	}

	err = ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Error("failed to publish purchase event", "queue", queueName, "error", err)
		p.reset()
	}
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	p.conn = conn
	p.ch = ch

	return ch, nil
}

// reset drops the cached connection so the next publish redials.
func (p *Publisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn != nil {
		p.conn.Close()
	}

	p.conn = nil
	p.ch = nil
}

func (p *Publisher) Close() {
	p.reset()
}

// NopPublisher discards all events. Used when no broker URL is configured and
// in tests.
type NopPublisher struct{}

func (NopPublisher) PurchaseCreated(context.Context, domain.Purchase)   {}
func (NopPublisher) PurchaseCancelled(context.Context, domain.Purchase) {}
func (NopPublisher) PurchaseExpired(context.Context, domain.Purchase)   {}
