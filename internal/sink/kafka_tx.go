package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	ck "github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// TxKafkaSink publishes a day's batch inside one Kafka transaction, so a
// read_committed consumer sees either the whole day or nothing.
type TxKafkaSink struct {
	p           *ck.Producer
	topicPrefix string
}

func NewTxKafkaSink(bootstrap string, topicPrefix string, txID string) (*TxKafkaSink, error) {
	p, err := ck.NewProducer(&ck.ConfigMap{
		"bootstrap.servers":  bootstrap,
		"enable.idempotence": true,
		"acks":               "all",
		"transactional.id":   txID,
	})
	if err != nil {
		return nil, fmt.Errorf("producer: %w", err)
	}
	if err := p.InitTransactions(context.TODO()); err != nil {
		p.Close()
		return nil, fmt.Errorf("init tx: %w", err)
	}
	return &TxKafkaSink{p: p, topicPrefix: topicPrefix}, nil
}

func (s *TxKafkaSink) Write(dataset string, day time.Time, records []Record) error {
	topic := s.topicPrefix + "." + dataset
	key := []byte(DayKey(day))
	if err := s.p.BeginTransaction(); err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	for _, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			_ = s.p.AbortTransaction(context.TODO())
			return fmt.Errorf("marshal: %w", err)
		}
		msg := &ck.Message{
			TopicPartition: ck.TopicPartition{Topic: &topic, Partition: ck.PartitionAny},
			Key:            key,
			Value:          b,
		}
		if err := s.p.Produce(msg, nil); err != nil {
			_ = s.p.AbortTransaction(context.TODO())
			return fmt.Errorf("produce: %w", err)
		}
	}
	if err := s.p.CommitTransaction(context.TODO()); err != nil {
		_ = s.p.AbortTransaction(context.TODO())
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *TxKafkaSink) Close() { s.p.Close() }
