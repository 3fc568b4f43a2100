package core

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPErrorMessage(t *testing.T) {
	err := NewHTTPError(401, []byte("Invalid email or password"))
	assert.Equal(t, "Invalid email or password", err.Error())

	empty := NewHTTPError(502, nil)
	assert.Equal(t, "HTTP error: status 502", empty.Error())
}

func TestIsHTTPErrorUnwrapsChains(t *testing.T) {
	base := NewHTTPError(404, []byte("no such product"))
	wrapped := fmt.Errorf("fetch product: %w", base)

	httpErr, ok := IsHTTPError(wrapped)
	require.True(t, ok)
	assert.Equal(t, 404, httpErr.StatusCode)

	_, ok = IsHTTPError(errors.New("plain"))
	assert.False(t, ok)
	_, ok = IsHTTPError(nil)
	assert.False(t, ok)
}

func TestIsTransportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("something"), false},
		{"http rejection", NewHTTPError(500, []byte("boom")), false},
		{"wrapped http rejection", fmt.Errorf("call: %w", NewHTTPError(401, nil)), false},
		{"connection sentinel", fmt.Errorf("dial: %w", ErrConnectionFailed), true},
		{"timeout sentinel", ErrTimeout, true},
		{"context deadline", context.DeadlineExceeded, true},
		{"context canceled", fmt.Errorf("req: %w", context.Canceled), true},
		{"url error", &url.Error{Op: "Get", URL: "http://x", Err: errors.New("refused")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransportError(tt.err))
		})
	}
}

func TestErrorClassifiers(t *testing.T) {
	assert.True(t, IsNotFound(ErrNotFound))
	assert.True(t, IsNotFound(NewHTTPError(404, nil)))
	assert.False(t, IsNotFound(NewHTTPError(500, nil)))

	assert.True(t, IsUnauthorized(ErrNotAuthenticated))
	assert.True(t, IsUnauthorized(fmt.Errorf("profile: %w", NewHTTPError(401, []byte("expired")))))
	assert.False(t, IsUnauthorized(NewHTTPError(403, nil)))
}
