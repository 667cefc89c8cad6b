package event

import (
	"fmt"
	"log"

	messagebus "github.com/vardius/message-bus"

	"github.com/ytget/cat-gallery/internal/model"
)

// DefaultQueueSize is the per-subscriber queue length
const DefaultQueueSize = 32

// Broker delivers fetch lifecycle events to subscribers. Each subscriber
// receives its events on its own goroutine in publish order.
type Broker struct {
	bus messagebus.MessageBus
}

// NewBroker creates a broker; non-positive queueSize uses DefaultQueueSize
func NewBroker(queueSize int) *Broker {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Broker{bus: messagebus.New(queueSize)}
}

// SubscribeTask registers fn for every task published on topic
func (b *Broker) SubscribeTask(topic Topic, fn func(*model.FetchTask)) error {
	if fn == nil {
		return fmt.Errorf("nil handler for topic %s", topic)
	}
	if err := b.bus.Subscribe(topic.String(), fn); err != nil {
		return fmt.Errorf("subscribe to %s: %w", topic, err)
	}
	return nil
}

// UnsubscribeTask removes a handler registered with SubscribeTask
func (b *Broker) UnsubscribeTask(topic Topic, fn func(*model.FetchTask)) error {
	if err := b.bus.Unsubscribe(topic.String(), fn); err != nil {
		return fmt.Errorf("unsubscribe from %s: %w", topic, err)
	}
	return nil
}

// PublishTask sends a detached copy of task to topic subscribers
func (b *Broker) PublishTask(topic Topic, task *model.FetchTask) {
	if task == nil {
		return
	}
	log.Printf("Publishing %s for task %s (status=%s)", topic, task.ID, task.Status)
	b.bus.Publish(topic.String(), task.Copy())
}

// Close stops delivery on every fetch topic
func (b *Broker) Close() {
	for _, topic := range []Topic{FetchStarted, FetchCompleted, FetchFailed} {
		b.bus.Close(topic.String())
	}
}
