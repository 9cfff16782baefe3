// Package pubsub 聊天事件的发布与订阅
package pubsub

import (
	"context"
	"encoding/json"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/redis"
	"learnhub/biz/infrastructure/util/log"
	"strings"

	"github.com/bytedance/sonic"
	goredis "github.com/redis/go-redis/v9"
)

// Envelope 频道中传输的事件
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type IPublisher interface {
	Publish(ctx context.Context, channel, event string, data any) error
}

// Sink 接收订阅到的事件，通常是 websocket hub
type Sink interface {
	Dispatch(channel, event string, data []byte)
}

func encode(event string, data any) ([]byte, error) {
	raw, err := sonic.Marshal(data)
	if err != nil {
		return nil, err
	}
	return sonic.Marshal(&Envelope{Event: event, Data: raw})
}

type RedisPublisher struct {
	cli    *goredis.Client
	prefix string
}

func NewRedisPublisher(config *config.Config) *RedisPublisher {
	return &RedisPublisher{
		cli:    redis.GetPubSubClient(config),
		prefix: config.PubSub.Prefix,
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel, event string, data any) error {
	payload, err := encode(event, data)
	if err != nil {
		return err
	}
	return p.cli.Publish(ctx, p.prefix+":"+channel, payload).Err()
}

// RedisSubscriber 订阅前缀下的全部频道并转交给 Sink，多实例部署时每个实例各自订阅
type RedisSubscriber struct {
	cli    *goredis.Client
	prefix string
	sink   Sink
}

func NewRedisSubscriber(config *config.Config, sink Sink) *RedisSubscriber {
	return &RedisSubscriber{
		cli:    redis.GetPubSubClient(config),
		prefix: config.PubSub.Prefix,
		sink:   sink,
	}
}

// Run 阻塞直到 ctx 结束
func (s *RedisSubscriber) Run(ctx context.Context) error {
	ps := s.cli.PSubscribe(ctx, s.prefix+":*")
	defer ps.Close()
	if _, err := ps.Receive(ctx); err != nil {
		return err
	}
	log.Info("subscribed to %s:*", s.prefix)

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var env Envelope
			if err := sonic.UnmarshalString(msg.Payload, &env); err != nil {
				log.Error("decode pubsub payload failed, channel=%s, err=%v", msg.Channel, err)
				continue
			}
			s.sink.Dispatch(strings.TrimPrefix(msg.Channel, s.prefix+":"), env.Event, env.Data)
		}
	}
}

// LocalPublisher 单进程模式下直接投递给 Sink
type LocalPublisher struct {
	sink Sink
}

func NewLocalPublisher(sink Sink) *LocalPublisher {
	return &LocalPublisher{sink: sink}
}

func (p *LocalPublisher) Publish(_ context.Context, channel, event string, data any) error {
	raw, err := sonic.Marshal(data)
	if err != nil {
		return err
	}
	p.sink.Dispatch(channel, event, raw)
	return nil
}
