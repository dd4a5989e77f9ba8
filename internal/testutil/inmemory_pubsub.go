package testutil

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/hotelhub/hotelhub/internal/pubsub"
)

var _ pubsub.PubSub = (*InMemoryPubSub)(nil)

// InMemoryPubSub records published messages and fans them out to subscribers
type InMemoryPubSub struct {
	mu          sync.RWMutex
	messages    map[string][]*message.Message
	subscribers map[string][]chan *message.Message
	closed      bool
}

func NewInMemoryPubSub() *InMemoryPubSub {
	return &InMemoryPubSub{
		messages:    make(map[string][]*message.Message),
		subscribers: make(map[string][]chan *message.Message),
	}
}

func (p *InMemoryPubSub) Publish(ctx context.Context, topic string, msg *message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	msg.SetContext(ctx)
	p.messages[topic] = append(p.messages[topic], msg)
	for _, ch := range p.subscribers[topic] {
		select {
		case ch <- msg:
		default:
		}
	}
	return nil
}

func (p *InMemoryPubSub) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan *message.Message, 100)
	p.subscribers[topic] = append(p.subscribers[topic], ch)
	return ch, nil
}

func (p *InMemoryPubSub) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	for _, subs := range p.subscribers {
		for _, ch := range subs {
			close(ch)
		}
	}
	p.subscribers = make(map[string][]chan *message.Message)
	return nil
}

// GetMessages returns what was published to topic, oldest first
func (p *InMemoryPubSub) GetMessages(topic string) []*message.Message {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]*message.Message, len(p.messages[topic]))
	copy(out, p.messages[topic])
	return out
}

func (p *InMemoryPubSub) ClearMessages() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = make(map[string][]*message.Message)
}
