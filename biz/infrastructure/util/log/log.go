package log

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"
	"go.opentelemetry.io/otel/trace"
)

func Info(format string, v ...any) {
	logx.Infof(format, v...)
}

func Error(format string, v ...any) {
	logx.Errorf(format, v...)
}

func CtxInfo(ctx context.Context, format string, v ...any) {
	withTrace(ctx).Infof(format, v...)
}

func CtxError(ctx context.Context, format string, v ...any) {
	withTrace(ctx).Errorf(format, v...)
}

// withTrace 带上 otel 的 trace_id 便于和链路关联
func withTrace(ctx context.Context) logx.Logger {
	l := logx.WithContext(ctx)
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		l = l.WithFields(logx.Field("trace_id", sc.TraceID().String()))
	}
	return l
}
