package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	rd "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var relayLog = zerolog.New(os.Stdout).With().Timestamp().Str("component", "relay").Logger()

// Relay forwards outbox entries from the Redis Stream to Kafka. An entry is
// acked only after Kafka confirms the write; on failure it stays pending and
// is retried.
type Relay struct {
	rdb      *rd.Client
	producer *Producer

	stream   string
	group    string
	consumer string
}

func NewRelay(rdb *rd.Client, producer *Producer, stream, group, consumer string) *Relay {
	return &Relay{
		rdb:      rdb,
		producer: producer,
		stream:   stream,
		group:    group,
		consumer: consumer,
	}
}

// Run loops until the context is cancelled. Pending entries left over from a
// previous run are drained before new ones are read.
func (r *Relay) Run(ctx context.Context) {
	if err := r.ensureGroup(ctx); err != nil {
		relayLog.Error().Err(err).Msg("ensure stream group")
		return
	}

	for {
		if ctx.Err() != nil {
			return
		}

		msgs, err := r.readGroup(ctx, "0", 0)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			relayLog.Error().Err(err).Msg("read pending entries")
			time.Sleep(300 * time.Millisecond)
			continue
		}
		if len(msgs) == 0 {
			msgs, err = r.readGroup(ctx, ">", 2*time.Second)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, context.Canceled) {
					return
				}
				relayLog.Error().Err(err).Msg("read new entries")
				time.Sleep(300 * time.Millisecond)
				continue
			}
		}

		for _, xm := range msgs {
			if err := r.shipOne(ctx, xm); err != nil {
				// Not acked: the entry stays pending for the next pass.
				relayLog.Error().Err(err).Str("entry", xm.ID).Msg("ship entry")
				time.Sleep(200 * time.Millisecond)
				break
			}
		}
	}
}

func (r *Relay) ensureGroup(ctx context.Context) error {
	err := r.rdb.XGroupCreateMkStream(ctx, r.stream, r.group, "0").Err()
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "BUSYGROUP") {
		return nil
	}
	return err
}

func (r *Relay) readGroup(ctx context.Context, streamID string, block time.Duration) ([]rd.XMessage, error) {
	streams, err := r.rdb.XReadGroup(ctx, &rd.XReadGroupArgs{
		Group:    r.group,
		Consumer: r.consumer,
		Streams:  []string{r.stream, streamID},
		Count:    16,
		Block:    block,
		NoAck:    false,
	}).Result()
	if err != nil {
		if errors.Is(err, rd.Nil) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]rd.XMessage, 0, 16)
	for _, s := range streams {
		out = append(out, s.Messages...)
	}
	return out, nil
}

func (r *Relay) shipOne(ctx context.Context, xm rd.XMessage) error {
	evt, err := parseOrderEvent(xm.Values)
	if err != nil {
		// Malformed entries are acked away so they cannot wedge the stream.
		if ackErr := r.ackAndDelete(ctx, xm.ID); ackErr != nil {
			return fmt.Errorf("parse failed: %v, ack failed: %w", err, ackErr)
		}
		relayLog.Warn().Err(err).Str("entry", xm.ID).Msg("dropped malformed entry")
		return nil
	}

	sendCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := r.producer.Send(sendCtx, evt); err != nil {
		return err
	}
	return r.ackAndDelete(ctx, xm.ID)
}

func (r *Relay) ackAndDelete(ctx context.Context, id string) error {
	pipe := r.rdb.TxPipeline()
	pipe.XAck(ctx, r.stream, r.group, id)
	pipe.XDel(ctx, r.stream, id)
	_, err := pipe.Exec(ctx)
	return err
}

// parseOrderEvent rebuilds an OrderCreated from stream fields.
func parseOrderEvent(values map[string]interface{}) (OrderCreated, error) {
	evt := OrderCreated{}
	var err error
	if evt.OrderID, err = streamField(values, "order_id"); err != nil {
		return OrderCreated{}, err
	}
	if evt.OrderNumber, err = streamField(values, "order_number"); err != nil {
		return OrderCreated{}, err
	}
	if evt.CustomerName, err = streamField(values, "customer_name"); err != nil {
		return OrderCreated{}, err
	}
	if evt.CustomerPhone, err = streamField(values, "customer_phone"); err != nil {
		return OrderCreated{}, err
	}
	if evt.Total, err = streamField(values, "total"); err != nil {
		return OrderCreated{}, err
	}

	linesJSON, err := streamField(values, "lines")
	if err != nil {
		return OrderCreated{}, err
	}
	if err := json.Unmarshal([]byte(linesJSON), &evt.Lines); err != nil {
		return OrderCreated{}, fmt.Errorf("invalid lines field: %w", err)
	}

	if err := evt.Validate(); err != nil {
		return OrderCreated{}, err
	}
	return evt, nil
}

func streamField(values map[string]interface{}, key string) (string, error) {
	v, ok := values[key]
	if !ok {
		return "", fmt.Errorf("missing field %s", key)
	}
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	default:
		return "", fmt.Errorf("unsupported field type %s: %T", key, v)
	}
}
