package ws

import (
	"context"
	"sync"
	"testing"
	"time"

	"learnhub/biz/infrastructure/config"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
)

type fakeConn struct {
	mu     sync.Mutex
	frames []string
	closed bool
}

func (c *fakeConn) Write(_ context.Context, _ websocket.MessageType, p []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, string(p))
	return nil
}

func (c *fakeConn) Ping(context.Context) error { return nil }

func (c *fakeConn) Close(websocket.StatusCode, string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.frames...)
}

func TestHubDispatch(t *testing.T) {
	h := NewHub()
	inRoom := &fakeConn{}
	outside := &fakeConn{}
	a := h.AddClient("u1", []string{"room-1", "unread"}, inRoom)
	b := h.AddClient("u2", []string{"unread"}, outside)
	defer h.RemoveClient(a)
	defer h.RemoveClient(b)

	assert.Equal(t, 1, h.Online("room-1"))
	assert.Equal(t, 2, h.Online("unread"))

	h.Dispatch("room-1", "upcoming-message", []byte(`{"content":"hi"}`))

	// init 帧 + 事件帧
	require.Eventually(t, func() bool { return len(inRoom.snapshot()) == 2 }, time.Second, 10*time.Millisecond)
	var frame map[string]any
	require.NoError(t, sonic.UnmarshalString(inRoom.snapshot()[1], &frame))
	assert.Equal(t, "event", frame["type"])
	assert.Equal(t, "room-1", frame["channel"])
	assert.Equal(t, "upcoming-message", frame["message"])

	time.Sleep(50 * time.Millisecond)
	assert.Len(t, outside.snapshot(), 1)
}

func TestHubRemoveClient(t *testing.T) {
	h := NewHub()
	conn := &fakeConn{}
	c := h.AddClient("u1", []string{"room-1"}, conn)
	h.RemoveClient(c)

	assert.Equal(t, 0, h.Online("room-1"))
	conn.mu.Lock()
	assert.True(t, conn.closed)
	conn.mu.Unlock()

	// 已移除的连接不再收到事件
	h.Dispatch("room-1", "upcoming-message", []byte(`{}`))
}

type fakeAuth struct{ allowed map[string]bool }

func (a fakeAuth) Authenticate(context.Context, string) (string, error) { return "u1", nil }

func (a fakeAuth) CanSubscribe(_ context.Context, _ string, ch string) bool { return a.allowed[ch] }

func TestGatewayChannels(t *testing.T) {
	g := &Gateway{
		hub:    NewHub(),
		auth:   fakeAuth{allowed: map[string]bool{"room-1": true}},
		pubsub: config.PubSubConfig{UnreadChannel: "unread"},
	}

	got := g.channels(context.Background(), "u1", "room-1,room-2,,room-1,unread,unread:u2")
	assert.Equal(t, []string{"room-1", "unread:u1"}, got)
}

func TestUnreadEventsReachOnlyTheirUser(t *testing.T) {
	g := &Gateway{
		hub:    NewHub(),
		auth:   fakeAuth{allowed: map[string]bool{"room-1": true}},
		pubsub: config.PubSubConfig{UnreadChannel: "unread"},
	}
	member, stranger := &fakeConn{}, &fakeConn{}
	a := g.hub.AddClient("u1", g.channels(context.Background(), "u1", ""), member)
	b := g.hub.AddClient("u2", g.channels(context.Background(), "u2", "unread:u1"), stranger)
	defer g.hub.RemoveClient(a)
	defer g.hub.RemoveClient(b)

	g.hub.Dispatch(g.pubsub.UnreadChannelOf("u1"), "unread-messages", []byte(`{"roomId":"room-1"}`))

	require.Eventually(t, func() bool { return len(member.snapshot()) == 2 }, time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	// 只有 init 帧
	assert.Len(t, stranger.snapshot(), 1)
}
