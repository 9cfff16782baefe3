// Package ws 聊天事件的 websocket 推送
package ws

import (
	"context"
	"encoding/json"
	"learnhub/biz/infrastructure/util"
	"sync"
	"time"

	"nhooyr.io/websocket"
)

const (
	sendBuffer   = 64
	writeTimeout = 10 * time.Second
	pingInterval = 25 * time.Second
	pingTimeout  = 5 * time.Second
)

// Conn websocket 连接中 hub 用到的部分
type Conn interface {
	Write(ctx context.Context, typ websocket.MessageType, p []byte) error
	Ping(ctx context.Context) error
	Close(code websocket.StatusCode, reason string) error
}

type Client struct {
	UserID   string
	Channels []string
	Conn     Conn
	Send     chan string

	ctx    context.Context
	cancel context.CancelFunc
}

// Hub 按频道维护在线连接
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: map[string]map[*Client]struct{}{},
	}
}

func (h *Hub) AddClient(userID string, channels []string, conn Conn) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Client{
		UserID:   userID,
		Channels: channels,
		Conn:     conn,
		Send:     make(chan string, sendBuffer),
		ctx:      ctx,
		cancel:   cancel,
	}

	h.mu.Lock()
	for _, ch := range channels {
		if h.clients[ch] == nil {
			h.clients[ch] = map[*Client]struct{}{}
		}
		h.clients[ch][c] = struct{}{}
	}
	h.mu.Unlock()

	util.SendStreamMessage(c.Send, &util.StreamMessage{Type: util.STInit, Data: channels})

	go c.writeLoop()
	go c.keepAliveLoop()

	return c
}

func (h *Hub) RemoveClient(c *Client) {
	c.cancel()

	h.mu.Lock()
	for _, ch := range c.Channels {
		if set, ok := h.clients[ch]; ok {
			delete(set, c)
			if len(set) == 0 {
				delete(h.clients, ch)
			}
		}
	}
	h.mu.Unlock()

	_ = c.Conn.Close(websocket.StatusNormalClosure, "bye")
}

// Dispatch 推送给订阅了 channel 的所有连接，慢连接直接丢弃
func (h *Hub) Dispatch(channel, event string, data []byte) {
	msg := &util.StreamMessage{
		Type:    util.STEvent,
		Channel: channel,
		Message: event,
		Data:    json.RawMessage(data),
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[channel] {
		util.SendStreamMessage(c.Send, msg)
	}
}

// Online 频道当前连接数
func (h *Hub) Online(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[channel])
}

func (c *Client) writeLoop() {
	for {
		select {
		case <-c.ctx.Done():
			return
		case msg := <-c.Send:
			writeCtx, cancel := context.WithTimeout(c.ctx, writeTimeout)
			_ = c.Conn.Write(writeCtx, websocket.MessageText, []byte(msg))
			cancel()
		}
	}
}

func (c *Client) keepAliveLoop() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(c.ctx, pingTimeout)
			_ = c.Conn.Ping(pingCtx)
			cancel()
		}
	}
}
