package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"immomarket/pkg/logger"
)

// Client represents one WebSocket connection. A user may hold several
// subscriptions on a single connection; each is tracked by its cancel func.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	subscriptions map[string]context.CancelFunc
	subMutex      sync.Mutex

	// sendMutex orders deliveries against the close of Send. Watcher
	// goroutines keep delivering after the manager drops a client; without
	// the guard a late frame would hit a closed channel and panic.
	sendMutex  sync.Mutex
	sendClosed bool
}

func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		UserID:        userID,
		Conn:          conn,
		Send:          make(chan []byte, 64),
		subscriptions: make(map[string]context.CancelFunc),
	}
}

// AddSubscription registers a cancel func under a topic key, cancelling any
// previous watcher on the same key.
func (c *Client) AddSubscription(key string, cancel context.CancelFunc) {
	c.subMutex.Lock()
	defer c.subMutex.Unlock()

	if prev, ok := c.subscriptions[key]; ok {
		prev()
	}
	c.subscriptions[key] = cancel
}

func (c *Client) RemoveSubscription(key string) {
	c.subMutex.Lock()
	defer c.subMutex.Unlock()

	if cancel, ok := c.subscriptions[key]; ok {
		cancel()
		delete(c.subscriptions, key)
	}
}

func (c *Client) cancelAll() {
	c.subMutex.Lock()
	defer c.subMutex.Unlock()

	for key, cancel := range c.subscriptions {
		cancel()
		delete(c.subscriptions, key)
	}
}

// deliver queues a frame for the connection, dropping it when the client is
// gone or its buffer is full rather than blocking or panicking.
func (c *Client) deliver(message []byte) {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	if c.sendClosed {
		return
	}

	select {
	case c.Send <- message:
	default:
		logger.Warn("Dropping frame for slow client: %s", c.UserID)
	}
}

func (c *Client) closeSend() {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	if c.sendClosed {
		return
	}
	c.sendClosed = true
	close(c.Send)
}

// Manager tracks active connections keyed by user ID.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				if prev, ok := m.clients[client.UserID]; ok {
					// One live connection per user; the newer one wins.
					prev.cancelAll()
					prev.closeSend()
				}
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Info("WebSocket client connected: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if current, ok := m.clients[client.UserID]; ok && current == client {
					delete(m.clients, client.UserID)
					client.cancelAll()
					client.closeSend()
				}
				m.mutex.Unlock()
				logger.Info("WebSocket client disconnected: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// SendToUser delivers a frame to a connected user, dropping it if the user's
// send buffer is full rather than blocking the caller.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if !ok {
		return
	}

	client.deliver(message)
}

// IsConnected reports whether a user currently holds a connection.
func (m *Manager) IsConnected(userID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	_, ok := m.clients[userID]
	return ok
}

// ReadPump reads frames from the connection and hands them to the handler
// until the connection drops.
func (c *Client) ReadPump(m *Manager, handler MessageHandler) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error for %s: %v", c.UserID, err)
			}
			break
		}

		handler.Handle(c, message)
	}
}

// WritePump drains the send channel into the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("WebSocket write error for %s: %v", c.UserID, err)
			return
		}
	}
}
