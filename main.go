package main

import (
	"context"
	"errors"
	"learnhub/biz/infrastructure/util/log"
	"learnhub/biz/infrastructure/ws"
	"learnhub/provider"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app/server"
	prometheus "github.com/hertz-contrib/monitor-prometheus"
	"github.com/hertz-contrib/obs-opentelemetry/tracing"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

func main() {
	provider.Init()
	p := provider.Get()
	c := p.Config

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(b3.New(), propagation.Baggage{}, propagation.TraceContext{}))

	tracer, cfg := tracing.NewServerTracer()
	h := server.New(
		server.WithHostPorts(c.ListenOn),
		server.WithTracer(prometheus.NewServerTracer(":9091", "/server/metrics")),
		tracer,
	)
	h.Use(tracing.ServerMiddleware(cfg))
	register(h)

	// websocket 网关
	wsServer := ws.NewServer(c, p.Gateway)
	go func() {
		log.Info("ws gateway listen on %s", c.WSListenOn)
		if err := wsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("ws gateway stopped: %v", err)
		}
	}()

	// 多实例时经 redis 转发到各实例的 hub
	subCtx, cancelSub := context.WithCancel(context.Background())
	if p.Subscriber != nil {
		go func() {
			if err := p.Subscriber.Run(subCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("pubsub subscriber stopped: %v", err)
			}
		}()
	}

	p.Scheduler.Start()

	h.OnShutdown = append(h.OnShutdown, func(ctx context.Context) {
		cancelSub()
		p.Scheduler.Stop()
		if err := wsServer.Shutdown(ctx); err != nil {
			log.Error("ws gateway shutdown: %v", err)
		}
	})

	h.Spin()
}

func register(r *server.Hertz) {
	customizedRegister(r)
}
