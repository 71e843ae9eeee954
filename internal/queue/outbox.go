package queue

import (
	"context"
	"encoding/json"
	"fmt"

	rd "github.com/redis/go-redis/v9"
)

// Outbox appends order-created events to a Redis Stream. The stream decouples
// the request path from Kafka: the HTTP handler only talks to Redis, the
// relay ships entries to the broker in the background.
type Outbox struct {
	rdb    *rd.Client
	stream string
}

func NewOutbox(rdb *rd.Client, stream string) *Outbox {
	return &Outbox{rdb: rdb, stream: stream}
}

// Publish appends one event to the stream. Lines are JSON-encoded into a
// single field; everything else is a flat string field.
func (o *Outbox) Publish(ctx context.Context, evt OrderCreated) error {
	if err := evt.Validate(); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}
	linesJSON, err := json.Marshal(evt.Lines)
	if err != nil {
		return err
	}
	return o.rdb.XAdd(ctx, &rd.XAddArgs{
		Stream: o.stream,
		Values: map[string]interface{}{
			"order_id":       evt.OrderID,
			"order_number":   evt.OrderNumber,
			"customer_name":  evt.CustomerName,
			"customer_phone": evt.CustomerPhone,
			"lines":          string(linesJSON),
			"total":          evt.Total,
		},
	}).Err()
}
