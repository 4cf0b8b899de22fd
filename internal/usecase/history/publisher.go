package history

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	historyv1 "github.com/swturbo14/lobSimulations/internal/domain/history/v1"
	"github.com/swturbo14/lobSimulations/pkg/config"
	"github.com/swturbo14/lobSimulations/pkg/errors"
	"github.com/swturbo14/lobSimulations/pkg/logger"
)

// KafkaPublisher streams recorded book snapshots to a Kafka topic for the
// offline-analysis pipeline.
type KafkaPublisher struct {
	kafkaWriter *kafka.Writer
	logger      *logger.Logger
}

// NewKafkaPublisher creates a publisher writing to the configured topic.
func NewKafkaPublisher(cfg config.HistoryConfig, log *logger.Logger) *KafkaPublisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
	})

	return &KafkaPublisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// Publish writes one entry as a JSON message.
func (p *KafkaPublisher) Publish(ctx context.Context, entry historyv1.Entry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return errors.NewTracer("history_entry_marshal_error").Wrap(err)
	}

	msg := kafka.Message{Value: value}
	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "action", Value: "publish_history_entry"},
			logger.Field{Key: "seq", Value: entry.Seq},
		)
		return errors.NewTracer("history_entry_publish_error").Wrap(err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.kafkaWriter.Close()
}
