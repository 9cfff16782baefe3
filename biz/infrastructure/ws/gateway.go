package ws

import (
	"context"
	"errors"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/util/log"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"nhooyr.io/websocket"
)

// Authorizer 校验连接身份与频道订阅权限
type Authorizer interface {
	// Authenticate 返回内部用户ID
	Authenticate(ctx context.Context, token string) (string, error)
	CanSubscribe(ctx context.Context, userID, channel string) bool
}

// Gateway 浏览器无法设置 Authorization 头，token 通过 query 传入
type Gateway struct {
	hub    *Hub
	auth   Authorizer
	pubsub config.PubSubConfig
}

func NewGateway(config *config.Config, hub *Hub, auth Authorizer) *Gateway {
	return &Gateway{
		hub:    hub,
		auth:   auth,
		pubsub: config.PubSub,
	}
}

var ErrMissingToken = errors.New("missing token")

// Admit 校验 token 并返回可订阅的频道
func (g *Gateway) Admit(ctx context.Context, token, rawChannels string) (string, []string, error) {
	if token == "" {
		return "", nil, ErrMissingToken
	}
	userID, err := g.auth.Authenticate(ctx, token)
	if err != nil {
		return "", nil, err
	}
	return userID, g.channels(ctx, userID, rawChannels), nil
}

// Hub SSE 等其他长连接复用同一个 hub
func (g *Gateway) Hub() *Hub {
	return g.hub
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, channels, err := g.Admit(ctx, r.URL.Query().Get("token"), r.URL.Query().Get("channels"))
	if err != nil {
		log.CtxInfo(ctx, "ws authenticate fail, err=%v", err)
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		return
	}
	// 只推不收，仍需读取以处理控制帧
	done := conn.CloseRead(context.Background())

	client := g.hub.AddClient(userID, channels, conn)
	defer g.hub.RemoveClient(client)

	<-done.Done()
}

// channels 过滤掉无权订阅的频道，只能订阅自己的未读频道
func (g *Gateway) channels(ctx context.Context, userID, raw string) []string {
	unread := g.pubsub.UnreadChannel
	requested := lo.Compact(lo.Uniq(strings.Split(raw, ",")))
	allowed := lo.Filter(requested, func(ch string, _ int) bool {
		if ch == unread || strings.HasPrefix(ch, unread+":") {
			return false
		}
		return g.auth.CanSubscribe(ctx, userID, ch)
	})
	return append(allowed, g.pubsub.UnreadChannelOf(userID))
}

// NewServer websocket 网关运行在独立端口
func NewServer(config *config.Config, gateway *Gateway) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/ws", gateway)
	return &http.Server{
		Addr:              config.WSListenOn,
		Handler:           otelhttp.NewHandler(mux, "ws-gateway"),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
