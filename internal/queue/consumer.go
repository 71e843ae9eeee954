package queue

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

var consumerLog = zerolog.New(os.Stdout).With().Timestamp().Str("component", "notifier").Logger()

// Consumer reads order-created events and surfaces them to the shop
// operator's log. It is the landing spot for future notification channels.
type Consumer struct {
	r *kafka.Reader
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	return &Consumer{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1e3,
			MaxBytes: 1e6,
		}),
	}
}

func (c *Consumer) Close() error { return c.r.Close() }

// Run loops until the context is cancelled or the reader closes.
func (c *Consumer) Run(ctx context.Context) {
	for {
		m, err := c.r.ReadMessage(ctx)
		if err != nil {
			return // ctx cancelled or reader closed
		}

		var evt OrderCreated
		if err := json.Unmarshal(m.Value, &evt); err != nil {
			consumerLog.Warn().Err(err).Msg("skip malformed event")
			continue
		}
		if err := evt.Validate(); err != nil {
			consumerLog.Warn().Err(err).Msg("skip invalid event")
			continue
		}

		consumerLog.Info().
			Str("order_number", evt.OrderNumber).
			Str("customer", evt.CustomerName).
			Str("phone", evt.CustomerPhone).
			Strs("items", evt.Lines).
			Str("total", evt.Total).
			Msg("new order")
	}
}
