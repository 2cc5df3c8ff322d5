package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// DefaultProfileTopic receives one message per successful profile update
const DefaultProfileTopic = "profile.updated"

// ProfileUpdated is the payload published after a profile update
type ProfileUpdated struct {
	ID        uuid.UUID `json:"id"`
	Fields    []string  `json:"fields"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes domain events to Kafka
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	log    logger.Logger
}

// NewKafkaPublisher creates an asynchronous writer for topic. Delivery failures
// are reported to log and never returned to callers.
func NewKafkaPublisher(brokers []string, topic string, log logger.Logger) *KafkaPublisher {
	if topic == "" {
		topic = DefaultProfileTopic
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error("Failed to deliver events", err,
					zap.String("topic", topic),
					zap.Int("count", len(messages)),
				)
			}
		},
	}
	return newKafkaPublisher(w, topic, log)
}

func newKafkaPublisher(w messageWriter, topic string, log logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topic: topic, log: log}
}

// PublishProfileUpdated keys the message by user id so updates for one user stay ordered
func (p *KafkaPublisher) PublishProfileUpdated(ctx context.Context, event ProfileUpdated) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ID.String()),
		Value: value,
		Time:  event.UpdatedAt,
	})
}

// Close flushes pending messages and closes the writer
func (p *KafkaPublisher) Close() error {
	p.log.Info("Closing Kafka publisher", zap.String("topic", p.topic))
	return p.writer.Close()
}

// Publisher is an event sink that owns a connection
type Publisher interface {
	PublishProfileUpdated(ctx context.Context, event ProfileUpdated) error
	Close() error
}

var (
	_ Publisher = (*KafkaPublisher)(nil)
	_ Publisher = NopPublisher{}
)

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishProfileUpdated(context.Context, ProfileUpdated) error { return nil }

func (NopPublisher) Close() error { return nil }
