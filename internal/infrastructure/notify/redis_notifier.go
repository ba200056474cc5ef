package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
	"github.com/jaymarand/ovgi-dispatch/internal/infrastructure/config"
)

const (
	// DefaultChannel is the Pub/Sub channel run-change messages travel on
	DefaultChannel = "dispatch:run_changes"

	defaultCloseTimeout = 5 * time.Second
)

// RedisRunChangeNotifier implements RunChangeNotifier using Redis Pub/Sub.
// Every process that serves dashboard streams subscribes to the same channel,
// so a run mutation on one instance reaches clients connected to any other.
type RedisRunChangeNotifier struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	channel    string
	logger     *zap.Logger
	cancelFn   context.CancelFunc
	doneCh     chan struct{}
	doneOnce   sync.Once
	mu         sync.Mutex
	isRunning  bool
}

// RedisRunChangeNotifierOption is a functional option for configuring the notifier
type RedisRunChangeNotifierOption func(*RedisRunChangeNotifier)

// WithNotifierChannel sets the Pub/Sub channel name
func WithNotifierChannel(channel string) RedisRunChangeNotifierOption {
	return func(n *RedisRunChangeNotifier) {
		if channel != "" {
			n.channel = channel
		}
	}
}

// WithNotifierLogger sets the logger for the notifier
func WithNotifierLogger(logger *zap.Logger) RedisRunChangeNotifierOption {
	return func(n *RedisRunChangeNotifier) {
		n.logger = logger
	}
}

// NewRedisRunChangeNotifier creates a new Redis Pub/Sub run-change notifier
func NewRedisRunChangeNotifier(cfg config.RedisConfig, opts ...RedisRunChangeNotifierOption) (*RedisRunChangeNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	notifier := &RedisRunChangeNotifier{
		client:     client,
		ownsClient: true,
		channel:    DefaultChannel,
		logger:     zap.NewNop(),
		doneCh:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(notifier)
	}

	return notifier, nil
}

// NewRedisRunChangeNotifierWithClient creates a notifier with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisRunChangeNotifierWithClient(client *redis.Client, opts ...RedisRunChangeNotifierOption) *RedisRunChangeNotifier {
	notifier := &RedisRunChangeNotifier{
		client:     client,
		ownsClient: false,
		channel:    DefaultChannel,
		logger:     zap.NewNop(),
		doneCh:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(notifier)
	}

	return notifier
}

// Publish sends a run-change notification to all subscribers
func (n *RedisRunChangeNotifier) Publish(ctx context.Context, msg dispatch.RunChangeMessage) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		n.logger.Error("Failed to marshal run change message",
			zap.String("action", string(msg.Action)),
			zap.Error(err))
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := n.client.Publish(ctx, n.channel, data).Err(); err != nil {
		n.logger.Error("Failed to publish run change message",
			zap.String("channel", n.channel),
			zap.Error(err))
		return fmt.Errorf("failed to publish message: %w", err)
	}

	n.logger.Debug("Published run change message",
		zap.String("action", string(msg.Action)),
		zap.String("run_id", msg.RunID.String()),
		zap.String("channel", n.channel))

	return nil
}

// Subscribe starts listening for run-change notifications.
// The callback function is invoked for each received message.
// This method should be called in a goroutine as it blocks.
func (n *RedisRunChangeNotifier) Subscribe(ctx context.Context, callback func(msg dispatch.RunChangeMessage)) error {
	n.mu.Lock()
	if n.isRunning {
		n.mu.Unlock()
		return fmt.Errorf("subscription already running")
	}
	n.isRunning = true
	n.mu.Unlock()

	subCtx, cancel := context.WithCancel(ctx)
	n.mu.Lock()
	n.cancelFn = cancel
	n.mu.Unlock()

	pubsub := n.client.Subscribe(subCtx, n.channel)
	defer pubsub.Close()

	// Wait for subscription confirmation
	if _, err := pubsub.Receive(subCtx); err != nil {
		n.mu.Lock()
		n.isRunning = false
		n.mu.Unlock()
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	n.logger.Info("Subscribed to run change channel",
		zap.String("channel", n.channel))

	ch := pubsub.Channel()

	for {
		select {
		case <-subCtx.Done():
			n.logger.Info("Run change subscription stopped")
			n.mu.Lock()
			n.isRunning = false
			n.mu.Unlock()
			n.markDone()
			return subCtx.Err()
		case msg, ok := <-ch:
			if !ok {
				n.logger.Warn("Run change channel closed")
				n.mu.Lock()
				n.isRunning = false
				n.mu.Unlock()
				n.markDone()
				return nil
			}

			var changeMsg dispatch.RunChangeMessage
			if err := json.Unmarshal([]byte(msg.Payload), &changeMsg); err != nil {
				n.logger.Error("Failed to unmarshal run change message",
					zap.String("payload", msg.Payload),
					zap.Error(err))
				continue
			}

			n.logger.Debug("Received run change message",
				zap.String("action", string(changeMsg.Action)),
				zap.String("run_id", changeMsg.RunID.String()))

			// Call the callback in a separate goroutine to prevent blocking
			go func(m dispatch.RunChangeMessage) {
				defer func() {
					if r := recover(); r != nil {
						n.logger.Error("Panic in run change callback",
							zap.Any("panic", r))
					}
				}()
				callback(m)
			}(changeMsg)
		}
	}
}

// markDone safely marks the notifier as done
func (n *RedisRunChangeNotifier) markDone() {
	n.doneOnce.Do(func() {
		close(n.doneCh)
	})
}

// Close releases any resources held by the notifier
func (n *RedisRunChangeNotifier) Close() error {
	n.mu.Lock()
	cancelFn := n.cancelFn
	n.mu.Unlock()

	if cancelFn != nil {
		cancelFn()
		select {
		case <-n.doneCh:
		case <-time.After(defaultCloseTimeout):
			n.logger.Warn("Timeout waiting for subscription to stop")
		}
	}

	if n.ownsClient {
		return n.client.Close()
	}
	return nil
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (n *RedisRunChangeNotifier) GetClient() *redis.Client {
	return n.client
}

// Ensure RedisRunChangeNotifier implements RunChangeNotifier
var _ dispatch.RunChangeNotifier = (*RedisRunChangeNotifier)(nil)
