package events

import "context"

// Publisher is implemented by the NATS JetStream publisher and the
// in-process fallback bus. Callers must tolerate publish failures:
// billing state is already committed by the time an event goes out.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close()
}
