// Package events publica en Kafka los cambios confirmados del libro de movimientos.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

var _ inventory.EventPublisher = (*KafkaPublisher)(nil)

// Sufijos de tópico; el nombre final es "<prefijo>.<sufijo>".
const (
	TopicMovementApplied = "stock.movement.applied"
	TopicProductDeleted  = "product.deleted"
)

// MovementAppliedEvent payload publicado tras confirmar un movimiento.
type MovementAppliedEvent struct {
	EventID       string          `json:"event_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	MovementID    int64           `json:"movement_id"`
	ProductID     int64           `json:"product_id"`
	ProductCode   string          `json:"product_code"`
	Kind          string          `json:"kind"`
	Quantity      int             `json:"quantity"`
	StockQuantity int             `json:"stock_quantity"`
	LowStock      bool            `json:"low_stock"`
	Price         decimal.Decimal `json:"price"`
}

// ProductDeletedEvent payload publicado tras eliminar un producto con su historial.
type ProductDeletedEvent struct {
	EventID          string    `json:"event_id"`
	OccurredAt       time.Time `json:"occurred_at"`
	ProductID        int64     `json:"product_id"`
	ProductCode      string    `json:"product_code"`
	RemovedMovements int64     `json:"removed_movements"`
}

// KafkaPublisher EventPublisher sobre un SyncProducer de sarama. Los errores se loguean y no se propagan.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	prefix   string
	log      *logger.Logger
}

// NewKafkaPublisher conecta un SyncProducer a los brokers dados.
func NewKafkaPublisher(brokers []string, topicPrefix string, log *logger.Logger) (*KafkaPublisher, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka: crear producer: %w", err)
	}
	return NewKafkaPublisherWithProducer(producer, topicPrefix, log), nil
}

// NewKafkaPublisherWithProducer usa un producer ya construido (p.ej. sarama/mocks en tests).
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topicPrefix string, log *logger.Logger) *KafkaPublisher {
	if log == nil {
		log = logger.Nop()
	}
	return &KafkaPublisher{producer: producer, prefix: topicPrefix, log: log.Component("events")}
}

// Topic nombre completo del tópico para el sufijo dado.
func (p *KafkaPublisher) Topic(suffix string) string {
	if p.prefix == "" {
		return suffix
	}
	return p.prefix + "." + suffix
}

// MovementApplied publica el movimiento con el estoque resultante; la clave es el id del producto.
func (p *KafkaPublisher) MovementApplied(ctx context.Context, product *entity.Product, movement *entity.Movement) {
	if product == nil || movement == nil {
		return
	}
	p.publish(ctx, TopicMovementApplied, product.ID, MovementAppliedEvent{
		EventID:       uuid.NewString(),
		OccurredAt:    movement.CreatedAt,
		MovementID:    movement.ID,
		ProductID:     product.ID,
		ProductCode:   product.Code,
		Kind:          string(movement.Kind),
		Quantity:      movement.Quantity,
		StockQuantity: product.StockQuantity,
		LowStock:      product.IsLowStock(),
		Price:         product.Price,
	})
}

// ProductDeleted publica la baja del producto.
func (p *KafkaPublisher) ProductDeleted(ctx context.Context, product *entity.Product, removedMovements int64) {
	if product == nil {
		return
	}
	p.publish(ctx, TopicProductDeleted, product.ID, ProductDeletedEvent{
		EventID:          uuid.NewString(),
		OccurredAt:       time.Now().UTC(),
		ProductID:        product.ID,
		ProductCode:      product.Code,
		RemovedMovements: removedMovements,
	})
}

// Close cierra el producer.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

func (p *KafkaPublisher) publish(_ context.Context, suffix string, productID int64, event any) {
	topic := p.Topic(suffix)
	data, err := json.Marshal(event)
	if err != nil {
		p.log.Error().Err(err).Str("topic", topic).Msg("serializar evento")
		return
	}
	msg := &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.StringEncoder(fmt.Sprintf("%d", productID)),
		Value:     sarama.ByteEncoder(data),
		Timestamp: time.Now().UTC(),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.log.Error().Err(err).Str("topic", topic).Int64("product_id", productID).Msg("publicar evento")
		return
	}
	p.log.Debug().Str("topic", topic).Int32("partition", partition).Int64("offset", offset).Msg("evento publicado")
}
