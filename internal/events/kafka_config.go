package events

import (
	"time"

	"github.com/IBM/sarama"
)

// ProducerConfig настройки продюсера
type ProducerConfig struct {
	MaxMessageBytes int
	Compression     sarama.CompressionCodec
	RequiredAcks    sarama.RequiredAcks
	Timeout         time.Duration
	ClientID        string
}

// DefaultProducerConfig настройки по умолчанию: событий мало, важнее не потерять их
func DefaultProducerConfig() ProducerConfig {
	return ProducerConfig{
		MaxMessageBytes: 1000000,
		Compression:     sarama.CompressionSnappy,
		RequiredAcks:    sarama.WaitForAll,
		Timeout:         5 * time.Second,
		ClientID:        "medusa-booking-api",
	}
}

// NewSaramaConfig конфигурация sarama для синхронного продюсера
func NewSaramaConfig(cfg ProducerConfig) *sarama.Config {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Version = sarama.V3_3_0_0
	saramaConfig.ClientID = cfg.ClientID

	saramaConfig.Producer.MaxMessageBytes = cfg.MaxMessageBytes
	saramaConfig.Producer.Compression = cfg.Compression
	saramaConfig.Producer.RequiredAcks = cfg.RequiredAcks
	saramaConfig.Producer.Timeout = cfg.Timeout
	saramaConfig.Producer.Retry.Max = 1
	// SyncProducer требует оба флага
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true

	saramaConfig.Net.DialTimeout = cfg.Timeout
	saramaConfig.Metadata.Retry.Max = 1

	return saramaConfig
}
