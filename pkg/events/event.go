package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CREDITS_CONSUMED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Billing event codes.
const (
	TypeCreditsConsumed       = "CREDITS_CONSUMED"
	TypeCreditsPurchased      = "CREDITS_PURCHASED"
	TypeSubscriptionActivated = "SUBSCRIPTION_ACTIVATED"
	TypeSubscriptionCancelled = "SUBSCRIPTION_CANCELLED"
	TypeStreakCreditAwarded   = "STREAK_CREDIT_AWARDED"
)

func NewCreditsConsumedEvent(userId, creditType string, remaining int) Event {
	return BaseEvent{
		Type: TypeCreditsConsumed,
		Data: map[string]interface{}{
			"user_id":     userId,
			"credit_type": creditType,
			"remaining":   remaining,
		},
		OccurredAt: time.Now(),
	}
}

func NewCreditsPurchasedEvent(userId, creditType string, quantity int, amountPaise int64) Event {
	return BaseEvent{
		Type: TypeCreditsPurchased,
		Data: map[string]interface{}{
			"user_id":      userId,
			"credit_type":  creditType,
			"quantity":     quantity,
			"amount_paise": amountPaise,
		},
		OccurredAt: time.Now(),
	}
}

func NewSubscriptionActivatedEvent(userId, planName string) Event {
	return BaseEvent{
		Type: TypeSubscriptionActivated,
		Data: map[string]interface{}{
			"user_id":   userId,
			"plan_name": planName,
		},
		OccurredAt: time.Now(),
	}
}

func NewSubscriptionCancelledEvent(userId, planName string, atPeriodEnd bool) Event {
	return BaseEvent{
		Type: TypeSubscriptionCancelled,
		Data: map[string]interface{}{
			"user_id":       userId,
			"plan_name":     planName,
			"at_period_end": atPeriodEnd,
		},
		OccurredAt: time.Now(),
	}
}

func NewStreakCreditAwardedEvent(userId string, streakCount int) Event {
	return BaseEvent{
		Type: TypeStreakCreditAwarded,
		Data: map[string]interface{}{
			"user_id":      userId,
			"streak_count": streakCount,
		},
		OccurredAt: time.Now(),
	}
}
