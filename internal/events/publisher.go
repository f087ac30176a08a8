package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/medusa-studio/booking-api/pkg/logger"
)

// errNoBrokers список брокеров пуст
var errNoBrokers = errors.New("kafka brokers are not configured")

type kafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewKafkaPublisher подключается к брокерам и создает синхронного продюсера
func NewKafkaPublisher(brokers []string, topic string, cfg ProducerConfig, log *logger.Logger) (Publisher, error) {
	if len(brokers) == 0 {
		return nil, errNoBrokers
	}

	producer, err := sarama.NewSyncProducer(brokers, NewSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	log.Infow("Kafka producer initialized", "brokers", brokers, "topic", topic)
	return NewPublisher(producer, topic, log), nil
}

// NewPublisher издатель поверх готового продюсера
func NewPublisher(producer sarama.SyncProducer, topic string, log *logger.Logger) Publisher {
	return &kafkaPublisher{producer: producer, topic: topic, log: log}
}

// Publish отправляет событие; ключ сообщения это id бронирования или email
func (p *kafkaPublisher) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(e.Key),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("event_type"),
				Value: []byte(e.Type),
			},
		},
		Timestamp: e.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", e.Type, err)
	}

	p.log.Debugw("Published event", "type", e.Type, "topic", p.topic, "partition", partition, "offset", offset)
	return nil
}

// Close закрывает продюсера
func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}
