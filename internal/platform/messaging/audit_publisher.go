package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	"github.com/panjf2000/ants/v2"
	"github.com/segmentio/kafka-go"
)

const writeTimeout = 10 * time.Second

// KafkaWriter wraps kafka.Writer methods for testing
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// AuditPublisher streams stored financial log rows to a Kafka topic.
// Writes run on a bounded worker pool so request handlers never wait on the broker.
type AuditPublisher struct {
	logger *slog.Logger
	writer KafkaWriter
	pool   *ants.Pool
	topic  string
}

// NewAuditPublisher creates a publisher writing to topic on brokers with
// at most workers concurrent writes.
func NewAuditPublisher(logger *slog.Logger, brokers []string, topic string, workers int) (*AuditPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are not configured")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka audit topic is not configured")
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           writeTimeout,
	}
	return newAuditPublisher(logger, writer, topic, workers)
}

func newAuditPublisher(logger *slog.Logger, writer KafkaWriter, topic string, workers int) (*AuditPublisher, error) {
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create audit worker pool: %w", err)
	}
	return &AuditPublisher{logger: logger, writer: writer, pool: pool, topic: topic}, nil
}

// Publish queues log for delivery. The message key is the tenant so one
// association's events share a partition. Concurrent workers do not preserve
// their order.
func (p *AuditPublisher) Publish(ctx context.Context, log domain.FinancialLog) error {
	value, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}
	msg := kafka.Message{Key: []byte(partitionKey(log)), Value: value}

	writeCtx := context.WithoutCancel(ctx)
	err = p.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
		defer cancel()
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			p.logger.Error("Failed to publish audit event",
				slog.String("topic", p.topic),
				slog.Int64("log_id", log.LogID),
				slog.String("error", err.Error()))
			return
		}
		p.logger.Debug("Published audit event", slog.String("topic", p.topic), slog.Int64("log_id", log.LogID))
	})
	if err != nil {
		return fmt.Errorf("failed to queue audit event %d: %w", log.LogID, err)
	}
	return nil
}

// Close waits up to timeout for queued events and closes the writer.
func (p *AuditPublisher) Close(timeout time.Duration) error {
	if err := p.pool.ReleaseTimeout(timeout); err != nil {
		p.logger.Warn("Audit worker pool did not drain in time", slog.String("error", err.Error()))
	}
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}

func partitionKey(log domain.FinancialLog) string {
	if log.TenantID == nil {
		return "global"
	}
	return strconv.FormatInt(*log.TenantID, 10)
}
