// Package kafka publishes audit events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/stockpanel/admin-api/internal/core/domain"
)

const (
	connectAttempts = 5
	connectBackoff  = 3 * time.Second
)

// Config holds the broker connection settings.
type Config struct {
	Brokers []string
	Topic   string
}

// AuditPublisher sends audit events to Kafka, keyed by subject id so a
// subject's events land on the same partition.
type AuditPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducerConfig returns the sarama configuration used for audit publishing.
func NewProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	return cfg
}

// Connect dials the brokers, retrying a few times while they come up.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*AuditPublisher, error) {
	var (
		producer sarama.SyncProducer
		err      error
	)
	for i := 1; i <= connectAttempts; i++ {
		producer, err = sarama.NewSyncProducer(cfg.Brokers, NewProducerConfig())
		if err == nil {
			log.Info().Strs("brokers", cfg.Brokers).Str("topic", cfg.Topic).Msg("kafka producer connected")
			return NewAuditPublisher(producer, cfg.Topic), nil
		}
		log.Warn().Err(err).Int("attempt", i).Msg("kafka connect failed")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectBackoff):
		}
	}
	return nil, fmt.Errorf("connecting kafka producer: %w", err)
}

// NewAuditPublisher wraps an existing producer.
func NewAuditPublisher(producer sarama.SyncProducer, topic string) *AuditPublisher {
	return &AuditPublisher{producer: producer, topic: topic}
}

// Publish implements ports.AuditPublisher.
func (p *AuditPublisher) Publish(_ context.Context, event domain.AuditEvent) error {
	msg, err := p.message(event)
	if err != nil {
		return err
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("sending audit event: %w", err)
	}
	return nil
}

func (p *AuditPublisher) message(event domain.AuditEvent) (*sarama.ProducerMessage, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encoding audit event: %w", err)
	}
	return &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.SubjectID),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("action"), Value: []byte(event.Action)},
		},
	}, nil
}

// Close flushes and closes the underlying producer.
func (p *AuditPublisher) Close() error {
	return p.producer.Close()
}

// LogPublisher writes audit events to the log. Used when no brokers are configured.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, event domain.AuditEvent) error {
	p.log.Info().
		Str("action", string(event.Action)).
		Str("subject_id", event.SubjectID).
		Str("actor_id", event.ActorID).
		Time("at", event.At).
		Msg("audit")
	return nil
}
