package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/BolivianProgrammer/RazorPedidos/internal/config"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/order"
	"github.com/BolivianProgrammer/RazorPedidos/internal/infrastructure/encoding/avro"
	"github.com/BolivianProgrammer/RazorPedidos/pkg/logger"
)

// OrderEventProducer publishes order events as Avro records.
type OrderEventProducer struct {
	client  *kgo.Client
	encoder *avro.Encoder
	topic   string
	logger  logger.Logger
}

func NewOrderEventProducer(cfg config.KafkaConfig, log logger.Logger) (*OrderEventProducer, error) {
	encoder, err := avro.NewEncoder(avro.OrderEventSchema)
	if err != nil {
		return nil, err
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.EventTopic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.DisableIdempotentWrite(),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	log.Info("Kafka producer created",
		logger.Any("brokers", cfg.Brokers),
		logger.String("topic", cfg.EventTopic),
	)

	return &OrderEventProducer{
		client:  client,
		encoder: encoder,
		topic:   cfg.EventTopic,
		logger:  log,
	}, nil
}

func (p *OrderEventProducer) PublishOrderEvent(ctx context.Context, ev order.Event) error {
	if ev.ID == "" {
		return fmt.Errorf("event id is empty")
	}

	payload, err := p.encoder.EncodeNative(avro.ToOrderEventNative(ev))
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}

	rec := &kgo.Record{
		Topic:     p.topic,
		Key:       []byte(uuid.NewString()),
		Value:     payload,
		Timestamp: time.Now().UTC(),
	}

	results := p.client.ProduceSync(ctx, rec)
	if err := results.FirstErr(); err != nil {
		p.logger.Error("Failed to publish order event",
			logger.String("topic", p.topic),
			logger.Int64("order_id", ev.OrderID),
			logger.Error(err),
		)
		return fmt.Errorf("publish to kafka topic %s: %w", p.topic, err)
	}

	p.logger.Debug("Published order event",
		logger.String("type", string(ev.Type)),
		logger.Int64("order_id", ev.OrderID),
	)
	return nil
}

func (p *OrderEventProducer) Close(ctx context.Context) error {
	p.logger.Info("Closing Kafka producer", logger.String("topic", p.topic))
	if p.client != nil {
		p.client.Close()
	}
	return nil
}
