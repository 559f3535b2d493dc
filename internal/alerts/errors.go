package alerts

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
)

// Error is the domain failure type. The gRPC code set covers every failure
// kind the service distinguishes: InvalidArgument, NotFound,
// PermissionDenied, Unavailable, DeadlineExceeded and Internal.
type Error struct {
	Code    codes.Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func InvalidArgument(format string, args ...interface{}) *Error {
	return &Error{Code: codes.InvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Code: codes.NotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Code: codes.PermissionDenied, Message: fmt.Sprintf(format, args...)}
}

func Unavailable(format string, args ...interface{}) *Error {
	return &Error{Code: codes.Unavailable, Message: fmt.Sprintf(format, args...)}
}

func Timeout(format string, args ...interface{}) *Error {
	return &Error{Code: codes.DeadlineExceeded, Message: fmt.Sprintf(format, args...)}
}

func Internal(format string, args ...interface{}) *Error {
	return &Error{Code: codes.Internal, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(code codes.Code, err error, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Code extracts the failure kind from any error. Bare context deadline
// errors count as DeadlineExceeded; everything else unexpected is Internal.
func Code(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return codes.DeadlineExceeded
	}
	return codes.Internal
}
