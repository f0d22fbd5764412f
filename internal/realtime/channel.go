package realtime

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Lifecycle notifications delivered to handlers alongside domain events.
// They carry no payload and exist for diagnostic logging.
const (
	EventConnect    = "connect"
	EventDisconnect = "disconnect"
)

// envelope is the wire frame for both directions: a named event plus an
// arbitrary JSON payload.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Handler consumes the raw payload of one inbound event. Handlers run on
// the channel's read goroutine, one at a time, in arrival order.
type Handler func(data json.RawMessage)

// Channel is one long-lived push connection. The backend emits domain
// events through it; the client emits room-scoping and echo events back.
type Channel struct {
	conn   *websocket.Conn
	logger *zap.Logger

	handlerMu sync.RWMutex
	handlers  map[string][]Handler

	writeMu   sync.Mutex
	done      chan struct{}
	closeOnce sync.Once
}

func newChannel(conn *websocket.Conn, logger *zap.Logger) *Channel {
	channel := &Channel{
		conn:     conn,
		logger:   logger,
		handlers: make(map[string][]Handler),
		done:     make(chan struct{}),
	}
	go channel.readLoop()
	return channel
}

// On subscribes a handler to an inbound event name. Multiple handlers per
// event are delivered in subscription order.
func (c *Channel) On(event string, handler Handler) {
	if handler == nil {
		return
	}
	c.handlerMu.Lock()
	c.handlers[event] = append(c.handlers[event], handler)
	c.handlerMu.Unlock()
}

// Emit sends an event to the backend.
func (c *Channel) Emit(event string, payload any) error {
	frame := envelope{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("realtime: encode %s payload: %w", event, err)
		}
		frame.Data = data
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	select {
	case <-c.done:
		return fmt.Errorf("realtime: channel closed")
	default:
	}
	if err := c.conn.WriteJSON(frame); err != nil {
		return fmt.Errorf("realtime: emit %s: %w", event, err)
	}
	return nil
}

// Close tears the connection down. Further reads stop and Done is closed.
func (c *Channel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

// Done is closed when the connection ends, whether by Close or by the peer.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

func (c *Channel) readLoop() {
	c.dispatch(EventConnect, nil)
	c.logger.Info("realtime channel connected")

	for {
		var frame envelope
		if err := c.conn.ReadJSON(&frame); err != nil {
			select {
			case <-c.done:
			default:
				c.logger.Warn("realtime channel disconnected", zap.Error(err))
			}
			c.dispatch(EventDisconnect, nil)
			c.closeOnce.Do(func() {
				close(c.done)
				_ = c.conn.Close()
			})
			return
		}
		if frame.Event == "" {
			// Malformed frames are ignored, never fatal.
			continue
		}
		c.dispatch(frame.Event, frame.Data)
	}
}

func (c *Channel) dispatch(event string, data json.RawMessage) {
	c.handlerMu.RLock()
	handlers := make([]Handler, len(c.handlers[event]))
	copy(handlers, c.handlers[event])
	c.handlerMu.RUnlock()

	for _, handler := range handlers {
		handler(data)
	}
}
