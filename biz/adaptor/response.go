package adaptor

import (
	"context"
	"errors"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/util"
	"learnhub/biz/infrastructure/util/log"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/codes"
)

// PostProcess 统一处理响应与错误日志
func PostProcess(ctx context.Context, c *app.RequestContext, req, resp any, err error) {
	path := string(c.Path())
	if !lo.Contains(config.GetConfig().Log.NoLogPaths, path) {
		log.CtxInfo(ctx, "[%s] req=%s, resp=%s, err=%v", path, util.JSONF(req), util.JSONF(resp), err)
	}

	if err == nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	var en *consts.Errno
	if errors.As(err, &en) {
		c.JSON(httpStatus(en.Code()), map[string]any{
			"code": en.Code(),
			"msg":  en.Error(),
		})
		return
	}

	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	log.CtxError(ctx, "internal error, err=%s", err.Error())
	c.JSON(http.StatusInternalServerError, map[string]any{
		"code": codes.Internal,
		"msg":  "internal error",
	})
}

func httpStatus(code codes.Code) int {
	switch code {
	case codes.Unauthenticated, consts.ErrNotAuthentication.Code():
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.FailedPrecondition, codes.AlreadyExists, codes.Aborted:
		return http.StatusConflict
	case codes.Unavailable, codes.DeadlineExceeded:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
