package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"carebridge/internal/infrastructure/subscription"
	"carebridge/pkg/logger"
)

// Client represents one authenticated WebSocket connection. Subs holds every
// store listener (message watches, presence watches) opened on behalf of this
// connection; unregistering closes them all.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
	Subs   *subscription.Registry

	// ctx outlives the upgrade request: net/http cancels the request context
	// as soon as the handler returns, which would kill every store call made
	// from the pumps. Cancelled on shutdown.
	ctx    context.Context
	cancel context.CancelFunc

	sendMu     sync.Mutex
	sendClosed bool
}

// NewClient builds a connection with its own lifecycle context, detached from
// the upgrade request.
func NewClient(userID string, conn *websocket.Conn) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		Subs:   subscription.NewRegistry(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context returns the connection-scoped context. It stays live until the
// client is unregistered or replaced by a newer connection.
func (c *Client) Context() context.Context { return c.ctx }

// trySend queues a frame without blocking; returns false when the connection
// is shutting down or the buffer is full.
func (c *Client) trySend(message []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.sendClosed {
		return false
	}
	select {
	case c.Send <- message:
		return true
	default:
		return false
	}
}

func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.sendClosed {
		c.sendClosed = true
		close(c.Send)
	}
}

// shutdown cancels the connection context, releases the store listeners and
// closes the send channel. Safe to call more than once.
func (c *Client) shutdown() {
	if c.cancel != nil {
		c.cancel()
	}
	c.Subs.Close()
	c.closeSend()
}

// EventHandler receives raw client frames and lifecycle events. Implemented
// by the chat use case; injected after construction to avoid an import cycle.
type EventHandler interface {
	HandleClientMessage(ctx context.Context, client *Client, raw []byte)
	HandleConnect(ctx context.Context, client *Client)
	HandleDisconnect(ctx context.Context, client *Client)
}

// Manager tracks active connections and chat-room membership.
type Manager struct {
	clients    map[string]*Client
	rooms      map[string]map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	handler    EventHandler
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// SetHandler wires the event handler. Must be called before Start.
func (m *Manager) SetHandler(h EventHandler) {
	m.handler = h
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				if old, ok := m.clients[client.UserID]; ok {
					// Replace a stale connection for the same user.
					old.shutdown()
					m.removeFromRoomsLocked(old)
				}
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Info("WebSocket client registered: %s", client.UserID)
				if m.handler != nil {
					m.handler.HandleConnect(ctx, client)
				}

			case client := <-m.Unregister:
				m.mutex.Lock()
				if current, ok := m.clients[client.UserID]; ok && current == client {
					delete(m.clients, client.UserID)
					m.removeFromRoomsLocked(client)
				}
				m.mutex.Unlock()
				client.shutdown()
				logger.Info("WebSocket client unregistered: %s", client.UserID)
				if m.handler != nil {
					m.handler.HandleDisconnect(ctx, client)
				}

			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Manager) removeFromRoomsLocked(client *Client) {
	for roomID, members := range m.rooms {
		if members[client.UserID] == client {
			delete(members, client.UserID)
			if len(members) == 0 {
				delete(m.rooms, roomID)
			}
		}
	}
}

// JoinRoom adds the client to a chat room's fan-out set.
func (m *Manager) JoinRoom(roomID string, client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.rooms[roomID] == nil {
		m.rooms[roomID] = make(map[string]*Client)
	}
	m.rooms[roomID][client.UserID] = client
}

// LeaveRoom removes the client from a chat room's fan-out set.
func (m *Manager) LeaveRoom(roomID string, client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if members, ok := m.rooms[roomID]; ok {
		delete(members, client.UserID)
		if len(members) == 0 {
			delete(m.rooms, roomID)
		}
	}
}

// SendToUser delivers a frame to one connected user; silently dropped when
// the user is offline or the send buffer is full.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if !ok {
		return
	}

	if !client.trySend(message) {
		logger.Warn("WebSocket frame dropped for user %s", userID)
	}
}

// SendToRoom broadcasts a frame to every member of a room except excludeUserID.
func (m *Manager) SendToRoom(roomID string, message []byte, excludeUserID string) {
	m.mutex.RLock()
	members := make([]*Client, 0, len(m.rooms[roomID]))
	for _, client := range m.rooms[roomID] {
		if client.UserID != excludeUserID {
			members = append(members, client)
		}
	}
	m.mutex.RUnlock()

	for _, client := range members {
		if !client.trySend(message) {
			logger.Warn("WebSocket frame dropped for user %s", client.UserID)
		}
	}
}

// IsOnline reports whether the user currently holds a connection.
func (m *Manager) IsOnline(userID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	_, ok := m.clients[userID]
	return ok
}

// ReadPump reads frames from the connection and forwards them to the handler
// under the connection-scoped context.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error for user %s: %v", c.UserID, err)
			}
			break
		}

		if m.handler != nil {
			m.handler.HandleClientMessage(c.ctx, c, message)
		}
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
			logger.Warn("WebSocket write error for user %s: %v", c.UserID, err)
			return
		}
	}
}
