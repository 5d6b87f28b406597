package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	DefaultTopic     = "orders-created"
	EventOrderCreate = "order.created"
	batchSize        = 100
)

// Outbox lists orders whose created event is still pending.
type Outbox interface {
	ListUnpublished(ctx context.Context, limit int) ([]domain.Order, error)
	MarkPublished(ctx context.Context, orderID string, at time.Time) error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderCreatedEvent is the payload published for every new order.
type OrderCreatedEvent struct {
	OrderID         string             `json:"order_id"`
	UserID          string             `json:"user_id"`
	Items           []domain.OrderItem `json:"items"`
	ShippingAddress domain.Address     `json:"shipping_address"`
	TotalPrice      float64            `json:"total_price"`
	Status          domain.OrderStatus `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
}

// OutboxPoller publishes order-created events for orders that have not been
// published yet. Orders are the outbox: an order is marked once its event
// reached the broker, so a crash between the two only causes a redelivery.
type OutboxPoller struct {
	timeout   time.Duration
	eventTick time.Duration
	repo      Outbox
	writer    messageWriter
	logger    *zap.Logger
}

func NewOutboxPoller(repo Outbox, logger *zap.Logger, topic string, brokers ...string) *OutboxPoller {
	if topic == "" {
		topic = DefaultTopic
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
	}
	return newOutboxPoller(repo, w, logger)
}

func newOutboxPoller(repo Outbox, w messageWriter, logger *zap.Logger) *OutboxPoller {
	return &OutboxPoller{
		timeout:   5 * time.Second,
		eventTick: time.Second,
		repo:      repo,
		writer:    w,
		logger:    logger,
	}
}

func (p *OutboxPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.eventTick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.processUnpublished(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *OutboxPoller) Close() error {
	return p.writer.Close()
}

func (p *OutboxPoller) processUnpublished(ctx context.Context) {
	orders, err := p.repo.ListUnpublished(ctx, batchSize)
	if err != nil {
		p.logger.Warn("failed to fetch unpublished orders", zap.Error(err))
		return
	}

	for _, order := range orders {
		if err := p.publish(ctx, order); err != nil {
			p.logger.Warn("failed to publish order event", zap.String("order_id", order.ID), zap.Error(err))
			continue
		}
		if err := p.repo.MarkPublished(ctx, order.ID, time.Now()); err != nil {
			p.logger.Warn("failed to mark order published", zap.String("order_id", order.ID), zap.Error(err))
		}
	}
}

func (p *OutboxPoller) publish(ctx context.Context, order domain.Order) error {
	payload, err := json.Marshal(OrderCreatedEvent{
		OrderID:         order.ID,
		UserID:          order.UserID,
		Items:           order.Items,
		ShippingAddress: order.ShippingAddress,
		TotalPrice:      order.TotalPrice,
		Status:          order.Status,
		CreatedAt:       order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal order event failed: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.UserID), // per-user ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventOrderCreate)},
		},
	}

	writeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.writer.WriteMessages(writeCtx, msg)
}
