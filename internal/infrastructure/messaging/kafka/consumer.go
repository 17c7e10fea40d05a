package kafka

import (
	"context"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/BolivianProgrammer/RazorPedidos/internal/config"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/repository"
	"github.com/BolivianProgrammer/RazorPedidos/internal/infrastructure/encoding/avro"
	"github.com/BolivianProgrammer/RazorPedidos/pkg/logger"
)

// AuditConsumer reads order events from Kafka and appends them to the
// audit trail.
type AuditConsumer struct {
	reader  *kafkago.Reader
	encoder *avro.Encoder
	audit   repository.AuditRepository
	logger  logger.Logger
}

func NewAuditConsumer(cfg config.KafkaConfig, audit repository.AuditRepository, log logger.Logger) (*AuditConsumer, error) {
	encoder, err := avro.NewEncoder(avro.OrderEventSchema)
	if err != nil {
		return nil, err
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.ConsumerGroup,
		Topic:    cfg.EventTopic,
		MinBytes: 1e3,
		MaxBytes: 1e6,
	})

	return &AuditConsumer{
		reader:  reader,
		encoder: encoder,
		audit:   audit,
		logger:  log,
	}, nil
}

// Start blocks, consuming until the context is cancelled or a read fails.
// Undecodable messages are logged and skipped so one bad record cannot
// wedge the group.
func (c *AuditConsumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		entry, err := c.decode(msg.Value)
		if err != nil {
			c.logger.Error("Skipping undecodable order event",
				logger.Int64("offset", msg.Offset),
				logger.Error(err),
			)
			continue
		}
		entry.RecordedAt = time.Now().UTC()

		if err := c.audit.Append(ctx, entry); err != nil {
			return fmt.Errorf("append audit entry: %w", err)
		}

		c.logger.Debug("Recorded order event",
			logger.String("event_id", entry.EventID),
			logger.String("type", entry.EventType),
			logger.Int64("order_id", entry.OrderID),
		)
	}
}

func (c *AuditConsumer) decode(payload []byte) (*repository.AuditEntry, error) {
	native, err := c.encoder.DecodeNative(payload)
	if err != nil {
		return nil, err
	}
	return avro.ToAuditEntry(native)
}

func (c *AuditConsumer) Close() {
	_ = c.reader.Close()
}
