package config

import (
	"github.com/segmentio/kafka-go"
	"time"
)

// batchTimeout caps how long a synchronous write waits for its batch to fill.
const batchTimeout = 10 * time.Millisecond

// NewKafkaWriter returns a writer for topic, or nil when no brokers are configured.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	if len(brokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{}, // Balancer for selecting partition
		BatchTimeout:           batchTimeout,
		AllowAutoTopicCreation: true,
	}
}
