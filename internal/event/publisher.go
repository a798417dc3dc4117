package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/tuanvumaihuynh/items-api/internal/storage/mq"
	"github.com/tuanvumaihuynh/items-api/pkg/eventheader"
)

// Publisher publishes item change events.
type Publisher interface {
	Publish(ctx context.Context, ev ItemEvent) error
}

var (
	_ Publisher = (*MQPublisher)(nil)
	_ Publisher = NopPublisher{}
)

// MQPublisher publishes events through a message queue producer, keyed by item id.
// Each publish gives up after timeout.
type MQPublisher struct {
	producer mq.Producer
	timeout  time.Duration
}

func NewMQPublisher(producer mq.Producer, timeout time.Duration) *MQPublisher {
	return &MQPublisher{producer: producer, timeout: timeout}
}

func (p *MQPublisher) Publish(ctx context.Context, ev ItemEvent) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	key := strconv.FormatInt(ev.ItemID, 10)
	if err := p.producer.Produce(ctx, mq.ProduceMsg{
		Topic:        ev.Topic,
		Headers:      eventheader.BuildHeaders(ctx),
		Payload:      payload,
		PartitionKey: &key,
	}); err != nil {
		return fmt.Errorf("produce %s: %w", ev.Topic, err)
	}

	return nil
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ItemEvent) error { return nil }
