package consts

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Errno struct {
	err  error
	code codes.Code
}

// GRPCStatus 实现 GRPCStatus 方法
func (en *Errno) GRPCStatus() *status.Status {
	return status.New(en.code, en.err.Error())
}

// 实现 Error 方法
func (en *Errno) Error() string {
	return en.err.Error()
}

func (en *Errno) Unwrap() error {
	return en.err
}

func (en *Errno) Code() codes.Code {
	return en.code
}

// NewErrno 创建自定义错误
func NewErrno(code codes.Code, err error) *Errno {
	return &Errno{
		err:  err,
		code: code,
	}
}

// Kind 错误分类，调用方据此区分可重试与不可重试
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthorized
	KindNotFound
	KindInvalidArgument
	KindBusinessRule
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "Unauthorized"
	case KindNotFound:
		return "NotFound"
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindBusinessRule:
		return "BusinessRuleViolation"
	case KindUpstream:
		return "UpstreamServiceFailure"
	default:
		return "Unknown"
	}
}

// KindOf 根据错误码得到分类
func KindOf(err error) Kind {
	var en *Errno
	if !errors.As(err, &en) {
		return KindUnknown
	}
	switch en.code {
	case codes.PermissionDenied, codes.Unauthenticated, ErrNotAuthentication.code:
		return KindUnauthorized
	case codes.NotFound:
		return KindNotFound
	case codes.InvalidArgument:
		return KindInvalidArgument
	case codes.FailedPrecondition, codes.AlreadyExists:
		return KindBusinessRule
	case codes.Unavailable, codes.Aborted, codes.DeadlineExceeded:
		return KindUpstream
	default:
		return KindUnknown
	}
}

// IsRetryable 仅上游故障可以重试
func IsRetryable(err error) bool {
	return KindOf(err) == KindUpstream
}

// Upstream 包装存储、推送等外部依赖的错误
func Upstream(err error) error {
	if err == nil {
		return nil
	}
	var en *Errno
	if errors.As(err, &en) {
		return err
	}
	return NewErrno(codes.Unavailable, fmt.Errorf("upstream service failure: %w", err))
}

// 定义常量错误
var (
	ErrForbidden         = NewErrno(codes.PermissionDenied, errors.New("forbidden"))
	ErrNotAuthentication = NewErrno(codes.Code(1000), errors.New("not authentication"))
	ErrNotCourseOwner    = NewErrno(codes.PermissionDenied, errors.New("Unauthorized, this course does not belong to you"))
	ErrNotAllowedComment = NewErrno(codes.PermissionDenied, errors.New("You are not allowed to comment on this course"))
	ErrNotRoomMember     = NewErrno(codes.PermissionDenied, errors.New("you are not a member of this chat room"))
	ErrNotAuthor         = NewErrno(codes.PermissionDenied, errors.New("you are not the author of this content"))
	ErrNotEnrolled       = NewErrno(codes.PermissionDenied, errors.New("you are not enrolled in this course"))
	ErrNotAdmin          = NewErrno(codes.PermissionDenied, errors.New("admin permission required"))
)

// 业务规则错误
var (
	ErrCourseHasStudents = NewErrno(codes.FailedPrecondition, errors.New("course with enrolled students cannot be deleted"))
	ErrPurchaseOwnCourse = NewErrno(codes.FailedPrecondition, errors.New("you cannot purchase your own course"))
	ErrCourseNotApproved = NewErrno(codes.FailedPrecondition, errors.New("course must be approved before publishing"))
	ErrCourseStatus      = NewErrno(codes.FailedPrecondition, errors.New("course status does not allow this operation"))
	ErrRepeatFeedback    = NewErrno(codes.AlreadyExists, errors.New("you have already rated this course"))
	ErrStatusTransition  = NewErrno(codes.Aborted, errors.New("purchase status changed concurrently"))
)

// ErrInvalidParams 调用时错误
var (
	ErrInvalidParams = NewErrno(codes.InvalidArgument, errors.New("invalid params"))
	ErrInvalidRating = NewErrno(codes.InvalidArgument, errors.New("rating must be between 0 and 5"))
	ErrInvalidType   = NewErrno(codes.InvalidArgument, errors.New("unknown course type"))
	ErrCall          = NewErrno(codes.Unknown, errors.New("call failed, please retry"))
)

// 数据库相关错误
var (
	ErrNotFound        = NewErrno(codes.NotFound, errors.New("not found"))
	ErrInvalidObjectId = NewErrno(codes.InvalidArgument, errors.New("invalid id"))
	ErrUpdate          = NewErrno(codes.Code(2001), errors.New("update failed"))
	ErrDuplicate       = NewErrno(codes.AlreadyExists, errors.New("duplicate key"))
)
