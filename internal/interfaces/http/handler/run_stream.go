package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
)

// SSEClient represents a connected SSE client
type SSEClient struct {
	ID   string
	Chan chan SSEMessage
	Done chan struct{}
}

// SSEMessage represents a message to be sent to SSE clients
type SSEMessage struct {
	Event string `json:"event"`
	Data  string `json:"data"`
	ID    string `json:"id,omitempty"`
}

// RunStreamHandler handles SSE connections for run-registry change
// notifications. Clients receive thin run_changed events and re-issue
// their reads in full; the stream never carries row data.
type RunStreamHandler struct {
	BaseHandler
	notifier   domain.RunChangeNotifier
	logger     *zap.Logger
	clients    sync.Map // map[string]*SSEClient
	ctx        context.Context
	cancel     context.CancelFunc
	heartbeat  time.Duration
	bufferSize int
	maxClients int
	started    bool
	startMu    sync.Mutex
}

// RunStreamOption is a functional option for configuring the handler
type RunStreamOption func(*RunStreamHandler)

// WithStreamLogger sets the logger for the handler
func WithStreamLogger(logger *zap.Logger) RunStreamOption {
	return func(h *RunStreamHandler) {
		h.logger = logger
	}
}

// WithStreamHeartbeat sets the heartbeat interval
func WithStreamHeartbeat(interval time.Duration) RunStreamOption {
	return func(h *RunStreamHandler) {
		if interval > 0 {
			h.heartbeat = interval
		}
	}
}

// WithStreamClientBuffer sets the per-client message buffer size
func WithStreamClientBuffer(size int) RunStreamOption {
	return func(h *RunStreamHandler) {
		if size > 0 {
			h.bufferSize = size
		}
	}
}

// WithStreamMaxClients sets the maximum number of concurrent SSE clients
func WithStreamMaxClients(max int) RunStreamOption {
	return func(h *RunStreamHandler) {
		h.maxClients = max
	}
}

// NewRunStreamHandler creates a new SSE handler for run-registry changes
func NewRunStreamHandler(notifier domain.RunChangeNotifier, opts ...RunStreamOption) *RunStreamHandler {
	ctx, cancel := context.WithCancel(context.Background())
	h := &RunStreamHandler{
		notifier:   notifier,
		logger:     zap.NewNop(),
		ctx:        ctx,
		cancel:     cancel,
		heartbeat:  30 * time.Second,
		bufferSize: 16,
		maxClients: 0,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Start begins listening for run changes and broadcasting to clients
func (h *RunStreamHandler) Start() error {
	h.startMu.Lock()
	defer h.startMu.Unlock()

	if h.started {
		return fmt.Errorf("run stream handler already started")
	}

	go h.sendHeartbeats()

	go func() {
		err := h.notifier.Subscribe(h.ctx, h.handleRunChange)
		if err != nil && h.ctx.Err() == nil {
			h.logger.Error("run stream subscription error", zap.Error(err))
		}
	}()

	h.started = true
	h.logger.Info("run stream handler started")
	return nil
}

// Stop stops the SSE handler
func (h *RunStreamHandler) Stop() {
	h.cancel()

	h.clients.Range(func(key, value any) bool {
		if client, ok := value.(*SSEClient); ok {
			close(client.Done)
		}
		return true
	})

	h.logger.Info("run stream handler stopped")
}

// handleRunChange converts a change notification to an SSE message and
// broadcasts it to all connected clients
func (h *RunStreamHandler) handleRunChange(msg domain.RunChangeMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to marshal run change event", zap.Error(err))
		return
	}

	sseMsg := SSEMessage{
		Event: "run_changed",
		Data:  string(data),
		ID:    fmt.Sprintf("%d", msg.Timestamp.UnixNano()),
	}

	h.broadcast(sseMsg)
}

// broadcast sends a message to all connected clients
func (h *RunStreamHandler) broadcast(msg SSEMessage) {
	h.clients.Range(func(key, value any) bool {
		client, ok := value.(*SSEClient)
		if !ok {
			return true
		}

		select {
		case client.Chan <- msg:
		default:
			// Channel full, client might be slow. Dropping is safe:
			// subscribers refresh in full on the next event.
			h.logger.Warn("client channel full, dropping message",
				zap.String("client_id", client.ID))
		}
		return true
	})
}

// sendHeartbeats periodically sends heartbeat messages to keep connections alive
func (h *RunStreamHandler) sendHeartbeats() {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			h.broadcast(SSEMessage{
				Event: "heartbeat",
				Data:  fmt.Sprintf(`{"timestamp":%d}`, time.Now().Unix()),
			})
		}
	}
}

// Stream godoc
// @ID           streamRunChanges
// @Summary      Subscribe to run-registry changes via SSE
// @Description  Establishes a Server-Sent Events connection. Each run_changed event names the table, action and run ID; clients re-read the board on receipt.
// @Tags         runs
// @Produce      text/event-stream
// @Success      200 {string} string "SSE stream"
// @Failure      503 {object} ErrorResponse
// @Router       /dispatch/runs/stream [get]
func (h *RunStreamHandler) Stream(c *gin.Context) {
	if h.maxClients > 0 && h.GetClientCount() >= h.maxClients {
		c.JSON(503, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MAX_CONNECTIONS_REACHED",
				"message": "Maximum number of SSE connections reached",
			},
		})
		return
	}

	// Set SSE headers
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	client := &SSEClient{
		ID:   uuid.New().String(),
		Chan: make(chan SSEMessage, h.bufferSize),
		Done: make(chan struct{}),
	}

	h.clients.Store(client.ID, client)
	defer func() {
		// Remove the client from the map only; broadcast may be sending
		// concurrently, so the channel must stay open. Unreferenced
		// channels are collected once the fan-out no longer sees them.
		h.clients.Delete(client.ID)
	}()

	h.logger.Info("SSE client connected", zap.String("client_id", client.ID))

	// Send initial connection event
	h.sendEvent(c.Writer, SSEMessage{
		Event: "connected",
		Data:  fmt.Sprintf(`{"client_id":"%s","timestamp":%d}`, client.ID, time.Now().Unix()),
	})
	c.Writer.Flush()

	reqCtx := c.Request.Context()

	for {
		select {
		case <-reqCtx.Done():
			h.logger.Info("SSE client disconnected",
				zap.String("client_id", client.ID))
			return
		case <-client.Done:
			h.logger.Info("SSE client disconnected (done signal)",
				zap.String("client_id", client.ID))
			return
		case <-h.ctx.Done():
			h.logger.Info("run stream handler stopped, disconnecting client",
				zap.String("client_id", client.ID))
			return
		case msg := <-client.Chan:
			h.sendEvent(c.Writer, msg)
			c.Writer.Flush()
		}
	}
}

// sendEvent writes an SSE event to the response writer
func (h *RunStreamHandler) sendEvent(w io.Writer, msg SSEMessage) {
	if msg.Event != "" {
		fmt.Fprintf(w, "event: %s\n", msg.Event)
	}
	if msg.ID != "" {
		fmt.Fprintf(w, "id: %s\n", msg.ID)
	}
	fmt.Fprintf(w, "data: %s\n\n", msg.Data)
}

// GetClientCount returns the number of connected SSE clients
func (h *RunStreamHandler) GetClientCount() int {
	count := 0
	h.clients.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}
