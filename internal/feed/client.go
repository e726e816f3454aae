package feed

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"pewmap/internal/radar"
)

const (
	initialReconnectDelay = 5 * time.Second
	maxReconnectDelay     = 5 * time.Minute
	reconnectBackoff      = 2.0
	pingInterval          = 30 * time.Second
	connectionTimeout     = 60 * time.Second
	writeTimeout          = 10 * time.Second
)

// Client is a WebSocket client for an attack alert stream with automatic
// reconnection. Parsed events land on the Events channel; the channel is
// never blocked on, a full buffer drops events.
type Client struct {
	url    string
	events chan radar.AttackEvent
	done   chan struct{}
	wg     sync.WaitGroup

	// Stats
	messagesReceived uint64
	eventsParsed     uint64
	errors           uint64
	reconnects       uint64

	running   atomic.Bool
	connected atomic.Bool
}

// NewClient creates a client for the given feed URL with the given event
// buffer size.
func NewClient(url string, bufferSize int) *Client {
	return &Client{
		url:    url,
		events: make(chan radar.AttackEvent, bufferSize),
		done:   make(chan struct{}),
	}
}

// Events returns the channel of parsed attack events.
func (c *Client) Events() <-chan radar.AttackEvent {
	return c.events
}

// Start begins the WebSocket connection in a goroutine.
func (c *Client) Start() {
	if c.running.Swap(true) {
		log.Printf("feed: client already running")
		return
	}
	c.wg.Add(1)
	go c.runLoop()
	log.Printf("feed: client started for %s", c.url)
}

// Stop gracefully shuts down the client and closes the event channel.
func (c *Client) Stop() {
	if !c.running.Swap(false) {
		return
	}
	close(c.done)
	c.wg.Wait()
	close(c.events)
	log.Printf("feed: client stopped")
}

// Stats returns current counters.
func (c *Client) Stats() map[string]interface{} {
	return map[string]interface{}{
		"url":               c.url,
		"connected":         c.connected.Load(),
		"messages_received": atomic.LoadUint64(&c.messagesReceived),
		"events_parsed":     atomic.LoadUint64(&c.eventsParsed),
		"errors":            atomic.LoadUint64(&c.errors),
		"reconnects":        atomic.LoadUint64(&c.reconnects),
	}
}

func (c *Client) runLoop() {
	defer c.wg.Done()

	reconnectDelay := initialReconnectDelay

	for c.running.Load() {
		err := c.connectAndStream()
		if err != nil {
			atomic.AddUint64(&c.errors, 1)
			atomic.AddUint64(&c.reconnects, 1)
			log.Printf("feed: connection error: %v, reconnecting in %v", err, reconnectDelay)
		}

		select {
		case <-c.done:
			return
		case <-time.After(reconnectDelay):
			reconnectDelay = time.Duration(float64(reconnectDelay) * reconnectBackoff)
			if reconnectDelay > maxReconnectDelay {
				reconnectDelay = maxReconnectDelay
			}
		}
	}
}

func (c *Client) connectAndStream() error {
	dialer := websocket.Dialer{
		HandshakeTimeout: connectionTimeout,
	}

	log.Printf("feed: connecting to %s", c.url)
	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}
	defer conn.Close()

	c.connected.Store(true)
	log.Printf("feed: connected")

	conn.SetPongHandler(func(string) error {
		return nil
	})

	pingDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-pingDone:
				return
			case <-c.done:
				// Close the connection to unblock ReadMessage.
				conn.Close()
				return
			}
		}
	}()
	defer close(pingDone)

	for c.running.Load() {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.connected.Store(false)
				return nil
			}
			c.connected.Store(false)
			return fmt.Errorf("read failed: %w", err)
		}
		if messageType != websocket.TextMessage {
			continue
		}

		atomic.AddUint64(&c.messagesReceived, 1)

		ev, err := ParseMessage(message)
		if err != nil {
			if atomic.LoadUint64(&c.messagesReceived) <= 10 {
				log.Printf("feed: parse error: %v", err)
			}
			continue
		}
		if ev != nil {
			atomic.AddUint64(&c.eventsParsed, 1)
			select {
			case c.events <- *ev:
			default:
				if atomic.LoadUint64(&c.eventsParsed)%1000 == 0 {
					log.Printf("feed: event channel full, dropping")
				}
			}
		}
	}

	c.connected.Store(false)
	return nil
}
