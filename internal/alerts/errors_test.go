package alerts_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"

	"stockwatch-system/internal/alerts"
)

func TestCode(t *testing.T) {
	assert.Equal(t, codes.OK, alerts.Code(nil))
	assert.Equal(t, codes.InvalidArgument, alerts.Code(alerts.InvalidArgument("bad input")))
	assert.Equal(t, codes.NotFound, alerts.Code(alerts.NotFound("company %d not found", 7)))
	assert.Equal(t, codes.PermissionDenied, alerts.Code(alerts.Forbidden("no access")))
	assert.Equal(t, codes.Unavailable, alerts.Code(alerts.Unavailable("store down")))
	assert.Equal(t, codes.DeadlineExceeded, alerts.Code(alerts.Timeout("too slow")))
	assert.Equal(t, codes.Internal, alerts.Code(alerts.Internal("boom")))

	// plain errors are Internal, bare deadline errors are DeadlineExceeded
	assert.Equal(t, codes.Internal, alerts.Code(errors.New("anything")))
	assert.Equal(t, codes.DeadlineExceeded, alerts.Code(context.DeadlineExceeded))
}

func TestCode_Wrapped(t *testing.T) {
	inner := alerts.NotFound("gone")
	wrapped := fmt.Errorf("while assembling: %w", inner)
	assert.Equal(t, codes.NotFound, alerts.Code(wrapped))
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := alerts.Wrap(codes.Unavailable, cause, "inventory store read failed")

	assert.Equal(t, codes.Unavailable, alerts.Code(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "inventory store read failed")
	assert.Contains(t, err.Error(), "connection refused")
}
