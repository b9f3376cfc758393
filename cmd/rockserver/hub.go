package main

import (
	"encoding/json"
	"sync"
)

// Hub fans analysis progress and status updates out to every connected
// WebSocket client: a map of clients guarded by a mutex, fed by buffered
// broadcast channels drained by a single Run goroutine.
type Hub struct {
	mu                sync.Mutex
	clients           map[*Client]struct{}
	broadcastStatus   chan statusResponse
	broadcastProgress chan progressPayload
}

type Client struct {
	hub  *Hub
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		clients:           make(map[*Client]struct{}),
		broadcastStatus:   make(chan statusResponse, 32),
		broadcastProgress: make(chan progressPayload, 32),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcastStatus:
			h.fanOut(wsMessage{Type: "status", Payload: mustMarshal(payload)})
		case payload := <-h.broadcastProgress:
			h.fanOut(wsMessage{Type: "progress", Payload: mustMarshal(payload)})
		}
	}
}

func (h *Hub) fanOut(msg wsMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.sendJSON(msg)
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
