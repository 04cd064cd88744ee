package messaging

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Outbox collects links for a client that opens them itself.
type Outbox struct {
	mu    sync.Mutex
	links []string
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Open(ctx context.Context, link string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.links = append(o.links, link)
	return nil
}

// Drain returns the pending links and empties the outbox.
func (o *Outbox) Drain() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	links := o.links
	o.links = nil
	return links
}

// ClientDispatcher dispatches into an outbox the client drains and opens.
type ClientDispatcher struct {
	*DeepLinkDispatcher
	outbox *Outbox
}

func NewClientDispatcher(base string, logger *zap.Logger) *ClientDispatcher {
	outbox := NewOutbox()
	return &ClientDispatcher{
		DeepLinkDispatcher: NewDeepLinkDispatcher(base, outbox, logger),
		outbox:             outbox,
	}
}

func (c *ClientDispatcher) Drain() []string {
	return c.outbox.Drain()
}
