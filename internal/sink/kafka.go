package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaSink publishes each day's batch to <topicPrefix>.<dataset> in a
// single WriteMessages call. Pure-Go client (segmentio/kafka-go).
type KafkaSink struct {
	writer      kafkaMessageWriter
	topicPrefix string
}

// kafkaMessageWriter abstracts kafka.Writer for testability.
type kafkaMessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// NewKafkaSink creates a Kafka sink. bootstrap can be a comma-separated
// list of host:port.
func NewKafkaSink(bootstrap string, topicPrefix string) *KafkaSink {
	addrs := strings.Split(bootstrap, ",")
	var brokers []string
	for _, a := range addrs {
		a = strings.TrimSpace(a)
		if a != "" {
			brokers = append(brokers, a)
		}
	}
	return &KafkaSink{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}, topicPrefix: topicPrefix}
}

func (s *KafkaSink) Write(dataset string, day time.Time, records []Record) error {
	topic := s.topicPrefix + "." + dataset
	key := []byte(DayKey(day))
	msgs := make([]kafka.Message, 0, len(records))
	for _, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		msgs = append(msgs, kafka.Message{Topic: topic, Key: key, Value: b})
	}
	if err := s.writer.WriteMessages(context.Background(), msgs...); err != nil {
		return fmt.Errorf("write kafka: %w", err)
	}
	return nil
}

// NewKafkaSinkWith is only for tests to inject a fake writer.
func NewKafkaSinkWith(w kafkaMessageWriter, topicPrefix string) *KafkaSink {
	return &KafkaSink{writer: w, topicPrefix: topicPrefix}
}
