package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// LocalBus is an in-process Publisher used when no NATS url is
// configured (local development, tests).
type LocalBus struct {
	pubSub *gochannel.GoChannel
}

func NewLocalBus() *LocalBus {
	return &LocalBus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 64,
		}, watermill.NopLogger{}),
	}
}

func (b *LocalBus) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event.Payload())
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", event.EventType())

	return b.pubSub.Publish(topicFor(event.EventType()), msg)
}

// Subscribe returns a channel of messages for the given event type.
// Used by in-process consumers and tests.
func (b *LocalBus) Subscribe(ctx context.Context, eventType string) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, topicFor(eventType))
}

func (b *LocalBus) Close() {
	_ = b.pubSub.Close()
}

func topicFor(eventType string) string {
	return "billing." + eventType
}
