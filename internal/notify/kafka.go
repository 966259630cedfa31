package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
)

// Kafka publishes events as JSON to a single topic through a sync producer.
type Kafka struct {
	producer sarama.SyncProducer
	topic    string
	logger   zerolog.Logger
}

func NewKafka(brokers []string, topic string, logger zerolog.Logger) (*Kafka, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second
	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}
	return &Kafka{producer: producer, topic: topic, logger: logger}, nil
}

func (k *Kafka) Publish(ctx context.Context, e Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	partition, offset, err := k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(e.Type),
		Value: sarama.ByteEncoder(b),
	})
	if err != nil {
		return err
	}
	k.logger.Debug().Str("type", e.Type).Int64("ticket_id", e.TicketID).
		Int32("partition", partition).Int64("offset", offset).Msg("event published")
	return nil
}

func (k *Kafka) Close() error {
	return k.producer.Close()
}
