package slogging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequestContext struct {
	values  map[string]any
	headers map[string]string
	set     map[string]string
}

func (f *fakeRequestContext) Get(key any) (any, bool) {
	k, ok := key.(string)
	if !ok {
		return nil, false
	}
	v, ok := f.values[k]
	return v, ok
}

func (f *fakeRequestContext) GetHeader(key string) string {
	return f.headers[key]
}

func (f *fakeRequestContext) ClientIP() string {
	return "192.0.2.10"
}

func (f *fakeRequestContext) Header(key, value string) {
	if f.set == nil {
		f.set = map[string]string{}
	}
	f.set[key] = value
}

func newTestLogger(t *testing.T) *Logger {
	t.Helper()
	logger, err := NewLogger(Config{
		Level:  LogLevelError,
		LogDir: t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })
	return logger
}

func TestWithContext_UsesIncomingRequestID(t *testing.T) {
	logger := newTestLogger(t)
	c := &fakeRequestContext{headers: map[string]string{"X-Request-ID": "req-123"}}

	cl := logger.WithContext(c)
	assert.Equal(t, "req-123", cl.RequestID())
	assert.Empty(t, c.set, "existing request id must not be rewritten")
}

func TestWithContext_GeneratesRequestID(t *testing.T) {
	logger := newTestLogger(t)
	c := &fakeRequestContext{}

	cl := logger.WithContext(c)
	assert.NotEmpty(t, cl.RequestID())
	assert.Equal(t, cl.RequestID(), c.set["X-Request-ID"], "generated id is echoed to the response")

	other := logger.WithContext(&fakeRequestContext{})
	assert.NotEqual(t, cl.RequestID(), other.RequestID())
}

func TestGetContextLogger(t *testing.T) {
	logger := newTestLogger(t)
	cl := logger.WithContext(&fakeRequestContext{})

	t.Run("returns stored logger", func(t *testing.T) {
		c := &fakeRequestContext{values: map[string]any{"logger": cl}}
		assert.Equal(t, SimpleLogger(cl), GetContextLogger(c))
	})

	t.Run("falls back to global logger", func(t *testing.T) {
		got := GetContextLogger(&fakeRequestContext{})
		assert.NotNil(t, got)
	})
}
