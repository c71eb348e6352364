package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 25 * time.Second
	sendBuffer   = 32
)

// WSClient is one websocket of a session. Writes happen only on the client's
// own goroutine, started by Register.
type WSClient struct {
	SessionID string
	Conn      *websocket.Conn

	send     chan []byte
	done     chan struct{}
	stopOnce sync.Once
}

func NewWSClient(sessionID string, conn *websocket.Conn) *WSClient {
	return &WSClient{
		SessionID: sessionID,
		Conn:      conn,
		send:      make(chan []byte, sendBuffer),
		done:      make(chan struct{}),
	}
}

func (c *WSClient) stop() {
	c.stopOnce.Do(func() {
		close(c.done)
		_ = c.Conn.Close()
	})
}

func (c *WSClient) write(msgType int, data []byte) error {
	if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.Conn.WriteMessage(msgType, data)
}

// writePump drains the queue and keeps the socket alive with pings. A failed
// or timed-out write drops the client.
func (h *RealtimeHub) writePump(c *WSClient) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			if err := c.write(websocket.TextMessage, msg); err != nil {
				h.Unregister(c)
				return
			}
		case <-t.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				h.Unregister(c)
				return
			}
		}
	}
}

// RealtimeHub tracks open websockets per session.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.SessionID] == nil {
		h.clients[c.SessionID] = make(map[*WSClient]struct{})
	}
	h.clients[c.SessionID][c] = struct{}{}
	h.mu.Unlock()

	go h.writePump(c)
}

// Unregister is idempotent; the connection is closed either way.
func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.SessionID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.SessionID)
		}
	}
	h.mu.Unlock()
	c.stop()
}

func (h *RealtimeHub) Count(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// Broadcast queues payload for every socket of the session without waiting
// on the network. A client whose queue is full is dropped.
func (h *RealtimeHub) Broadcast(sessionID string, payload any) error {
	msg, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	h.mu.RLock()
	targets := make([]*WSClient, 0, len(h.clients[sessionID]))
	for c := range h.clients[sessionID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		select {
		case c.send <- msg:
		default:
			h.Unregister(c)
		}
	}
	return nil
}

// Close drops every connection, e.g. on shutdown.
func (h *RealtimeHub) Close() {
	h.mu.Lock()
	all := h.clients
	h.clients = make(map[string]map[*WSClient]struct{})
	h.mu.Unlock()

	for _, set := range all {
		for c := range set {
			c.stop()
		}
	}
}
