package apigateway

import (
	"context"
	"learnhub/biz/infrastructure/util/log"
	"learnhub/provider"
	"net/http"
	"sync"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/protocol/sse"
	"nhooyr.io/websocket"
)

const pingEvent = "ping"

// sseConn 把 SSE 写端适配成 hub 的连接，写失败即视为客户端断开
type sseConn struct {
	mu   sync.Mutex
	w    *sse.Writer
	done chan struct{}
	once sync.Once
}

func newSSEConn(w *sse.Writer) *sseConn {
	return &sseConn{w: w, done: make(chan struct{})}
}

func (s *sseConn) Write(_ context.Context, _ websocket.MessageType, p []byte) error {
	return s.write("", p)
}

func (s *sseConn) Ping(_ context.Context) error {
	return s.write(pingEvent, nil)
}

func (s *sseConn) Close(_ websocket.StatusCode, _ string) error {
	s.once.Do(func() { close(s.done) })
	return nil
}

func (s *sseConn) write(event string, p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.done:
		return context.Canceled
	default:
	}
	if err := s.w.WriteEvent("", event, p); err != nil {
		log.Error("发送SSE事件失败: %v", err)
		s.once.Do(func() { close(s.done) })
		return err
	}
	return nil
}

// ChatStream 不支持 websocket 的客户端通过 SSE 接收聊天事件
// @router /chat/stream [GET]
func ChatStream(ctx context.Context, c *app.RequestContext) {
	token := c.Query("token")
	if token == "" {
		token = string(c.GetHeader("Authorization"))
	}

	p := provider.Get()
	userID, channels, err := p.Gateway.Admit(ctx, token, c.Query("channels"))
	if err != nil {
		log.CtxInfo(ctx, "[chat-stream] 认证失败: %v", err)
		c.String(consts.StatusUnauthorized, "invalid token")
		return
	}
	log.CtxInfo(ctx, "[chat-stream] userId=%s, channels=%v", userID, channels)

	c.SetStatusCode(http.StatusOK)
	conn := newSSEConn(sse.NewWriter(c))
	hub := p.Gateway.Hub()
	client := hub.AddClient(userID, channels, conn)
	defer hub.RemoveClient(client)

	<-conn.done
	log.CtxInfo(ctx, "[chat-stream] 连接关闭, userId=%s", userID)
}
