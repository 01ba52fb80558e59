package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"pinmarket/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	TypeOrderPaid              = "order_paid"
	TypeOrderCancelled         = "order_cancelled"
	TypeOrderFailed            = "order_failed"
	TypeReconciliationRequired = "reconciliation_required"
	TypeStockLow               = "stock_low"
	TypeStockOut               = "stock_out"
)

// OrderEvent is published on order lifecycle transitions; downstream
// consumers handle receipts, notifications and reporting.
type OrderEvent struct {
	Type        string    `json:"type"`
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number,omitempty"`
	UserID      uuid.UUID `json:"user_id,omitempty"`
	TotalCents  int64     `json:"total_cents,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// StockEvent replaces the admin email/SMS alerts of the storefront: the
// sweeper publishes it when availability crosses a product's threshold.
type StockEvent struct {
	Type       string    `json:"type"`
	ProductID  uuid.UUID `json:"product_id"`
	Product    string    `json:"product"`
	Available  int64     `json:"available"`
	Threshold  int32     `json:"threshold"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishOrderEvent(ctx context.Context, evt OrderEvent)
	PublishStockEvent(ctx context.Context, evt StockEvent)
}

// KafkaPublisher writes events to the configured topics. Publishing is
// best-effort: a broker outage must never fail a checkout or confirmation.
type KafkaPublisher struct {
	orders *kafka.Writer
	stock  *kafka.Writer
	logger *slog.Logger
}

func NewKafkaPublisher(cfg config.KafkaConfig, logger *slog.Logger) *KafkaPublisher {
	newWriter := func(topic string) *kafka.Writer {
		return &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		}
	}
	return &KafkaPublisher{
		orders: newWriter(cfg.OrdersTopic),
		stock:  newWriter(cfg.StockTopic),
		logger: logger,
	}
}

func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, evt OrderEvent) {
	p.publish(ctx, p.orders, evt.OrderID[:], evt)
}

func (p *KafkaPublisher) PublishStockEvent(ctx context.Context, evt StockEvent) {
	p.publish(ctx, p.stock, evt.ProductID[:], evt)
}

func (p *KafkaPublisher) publish(ctx context.Context, w *kafka.Writer, key []byte, evt any) {
	payload, err := json.Marshal(evt)
	if err != nil {
		p.logger.Error("failed to marshal event", "error", err)
		return
	}

	msg := kafka.Message{
		Key:   key,
		Value: payload,
		Time:  time.Now(),
	}
	if err := w.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish event", "topic", w.Topic, "error", err)
	}
}

func (p *KafkaPublisher) Close() error {
	if err := p.orders.Close(); err != nil {
		return err
	}
	return p.stock.Close()
}
