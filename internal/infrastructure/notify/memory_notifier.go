package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
)

// InMemoryRunChangeNotifier implements RunChangeNotifier for single-instance
// deployments and tests. Messages only reach subscribers in the same process.
type InMemoryRunChangeNotifier struct {
	logger      *zap.Logger
	mu          sync.Mutex
	subscribers map[int]chan dispatch.RunChangeMessage
	nextID      int
	closed      bool
}

// NewInMemoryRunChangeNotifier creates an in-process run-change notifier
func NewInMemoryRunChangeNotifier(logger *zap.Logger) *InMemoryRunChangeNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryRunChangeNotifier{
		logger:      logger,
		subscribers: make(map[int]chan dispatch.RunChangeMessage),
	}
}

// Publish delivers the message to every current subscriber. A subscriber that
// cannot keep up has the message dropped rather than blocking the publisher.
func (n *InMemoryRunChangeNotifier) Publish(_ context.Context, msg dispatch.RunChangeMessage) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return fmt.Errorf("notifier is closed")
	}

	for id, ch := range n.subscribers {
		select {
		case ch <- msg:
		default:
			n.logger.Warn("Dropped run change message for slow subscriber",
				zap.Int("subscriber_id", id),
				zap.String("action", string(msg.Action)))
		}
	}
	return nil
}

// Subscribe invokes callback for every published message until ctx is
// cancelled or the notifier is closed. It blocks.
func (n *InMemoryRunChangeNotifier) Subscribe(ctx context.Context, callback func(msg dispatch.RunChangeMessage)) error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return fmt.Errorf("notifier is closed")
	}
	id := n.nextID
	n.nextID++
	ch := make(chan dispatch.RunChangeMessage, 16)
	n.subscribers[id] = ch
	n.mu.Unlock()

	defer func() {
		n.mu.Lock()
		delete(n.subscribers, id)
		n.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			callback(msg)
		}
	}
}

// Close disconnects all subscribers
func (n *InMemoryRunChangeNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil
	}
	n.closed = true
	for id, ch := range n.subscribers {
		close(ch)
		delete(n.subscribers, id)
	}
	return nil
}

// Ensure InMemoryRunChangeNotifier implements RunChangeNotifier
var _ dispatch.RunChangeNotifier = (*InMemoryRunChangeNotifier)(nil)
