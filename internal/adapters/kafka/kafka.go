package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"friend-service/internal/models"

	"github.com/IBM/sarama"
)

func InitKafkaProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	// events for one request always land on the same partition
	config.Producer.Partitioner = sarama.NewHashPartitioner
	config.Version = sarama.V2_0_0_0
	config.ClientID = "friend-service"

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return producer, nil
}

// EventPublisher writes friend request events to a topic, keyed by request id.
type EventPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewEventPublisher(producer sarama.SyncProducer, topic string) *EventPublisher {
	return &EventPublisher{producer: producer, topic: topic}
}

func (p *EventPublisher) Publish(ctx context.Context, event models.FriendRequestEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(uint64(event.RequestID), 10)),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send event to kafka: %w", err)
	}

	slog.Debug("Event published to kafka", "topic", p.topic, "type", event.Type, "partition", partition, "offset", offset)
	return nil
}

func (p *EventPublisher) Close() error {
	return p.producer.Close()
}
