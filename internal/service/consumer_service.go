package service

import (
	"context"
	"encoding/json"

	"careerhub-billing/internal/pkg/logger"
	"careerhub-billing/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// IConsumerService drains billing events off the local bus and writes
// them to the audit log. Only used when events stay in-process; with
// NATS configured, downstream services consume the stream directly.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	bus    *events.LocalBus
	logger logger.ILogger
}

func NewConsumerService(bus *events.LocalBus, log logger.ILogger) IConsumerService {
	return &consumerService{bus: bus, logger: log}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	eventTypes := []string{
		events.TypeCreditsConsumed,
		events.TypeCreditsPurchased,
		events.TypeSubscriptionActivated,
		events.TypeSubscriptionCancelled,
		events.TypeStreakCreditAwarded,
	}

	for _, eventType := range eventTypes {
		messages, err := cs.bus.Subscribe(ctx, eventType)
		if err != nil {
			return err
		}

		go func(eventType string, messages <-chan *message.Message) {
			for msg := range messages {
				cs.processMessage(eventType, msg)
			}
		}(eventType, messages)
	}

	return nil
}

func (cs *consumerService) processMessage(eventType string, msg *message.Message) {
	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Warn("consumer", "failed to unmarshal event payload", map[string]interface{}{
			"event_type": eventType, "error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("consumer", "billing event", map[string]interface{}{
		"event_type": eventType,
		"payload":    payload,
	})
	msg.Ack()
}
