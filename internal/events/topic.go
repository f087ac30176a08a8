package events

import (
	"errors"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/medusa-studio/booking-api/pkg/logger"
)

// TopicSpec параметры топика событий
type TopicSpec struct {
	Name              string
	NumPartitions     int32
	ReplicationFactor int16
}

// EnsureTopic создает топик событий, если его еще нет
func EnsureTopic(brokers []string, spec TopicSpec, cfg ProducerConfig, log *logger.Logger) error {
	if len(brokers) == 0 {
		return errNoBrokers
	}

	admin, err := sarama.NewClusterAdmin(brokers, NewSaramaConfig(cfg))
	if err != nil {
		log.Errorw("Failed to connect to Kafka for topic creation", "brokers", brokers, "error", err)
		return fmt.Errorf("kafka connection failed: %w", err)
	}
	defer admin.Close()

	err = admin.CreateTopic(spec.Name, &sarama.TopicDetail{
		NumPartitions:     spec.NumPartitions,
		ReplicationFactor: spec.ReplicationFactor,
	}, false)
	if err != nil {
		var topicErr *sarama.TopicError
		if errors.As(err, &topicErr) && topicErr.Err == sarama.ErrTopicAlreadyExists {
			log.Debugw("Topic already exists", "topic", spec.Name)
			return nil
		}
		log.Errorw("Failed to create topic", "topic", spec.Name, "error", err)
		return fmt.Errorf("kafka create topic failed: %w", err)
	}

	log.Infow("Created Kafka topic", "topic", spec.Name, "partitions", spec.NumPartitions)
	return nil
}
