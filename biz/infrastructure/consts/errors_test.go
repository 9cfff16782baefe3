package consts

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "owner", err: ErrNotCourseOwner, want: KindUnauthorized},
		{name: "authentication", err: ErrNotAuthentication, want: KindUnauthorized},
		{name: "not found", err: ErrNotFound, want: KindNotFound},
		{name: "wrapped not found", err: fmt.Errorf("load course: %w", ErrNotFound), want: KindNotFound},
		{name: "delete guard", err: ErrCourseHasStudents, want: KindBusinessRule},
		{name: "upstream", err: Upstream(errors.New("connection reset")), want: KindUpstream},
		{name: "plain", err: errors.New("boom"), want: KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(Upstream(errors.New("timeout"))))
	assert.True(t, IsRetryable(ErrStatusTransition))
	assert.False(t, IsRetryable(ErrCourseHasStudents))
	assert.False(t, IsRetryable(errors.New("boom")))
}

func TestUpstreamKeepsErrno(t *testing.T) {
	assert.Nil(t, Upstream(nil))
	assert.Same(t, ErrNotFound, Upstream(ErrNotFound))
}

func TestGRPCStatus(t *testing.T) {
	s, ok := status.FromError(ErrNotAllowedComment)
	assert.True(t, ok)
	assert.Equal(t, codes.PermissionDenied, s.Code())
	assert.Equal(t, "You are not allowed to comment on this course", s.Message())
}
