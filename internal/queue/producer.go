package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer writes order-created events to Kafka.
type Producer struct {
	w *kafka.Writer
}

// NewProducer configures the writer for reliability over throughput:
// hash balancing by key keeps one order on one partition, RequireAll waits
// for ISR acks, and the attempt/timeout caps bound a slow broker.
func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			MaxAttempts:  5,
			WriteTimeout: 5 * time.Second,
			ReadTimeout:  5 * time.Second,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func (p *Producer) Close() error { return p.w.Close() }

// Send publishes one event, keyed by order id.
func (p *Producer) Send(ctx context.Context, evt OrderCreated) error {
	b, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.OrderID),
		Value: b,
	})
}
