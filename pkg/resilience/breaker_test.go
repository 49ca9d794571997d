package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings(name string) Settings {
	return BuildSettings(name, 60, 30, 3, 1)
}

func TestBreakerPassesThroughSuccess(t *testing.T) {
	b := New(testSettings("test-success"), nil)

	result, err := b.Execute(context.Background(), func() (interface{}, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
}

func TestBreakerPropagatesErrors(t *testing.T) {
	b := New(testSettings("test-errors"), nil)
	boom := errors.New("boom")

	_, err := b.Execute(context.Background(), func() (interface{}, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	b := New(testSettings("test-opens"), nil)
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		_, err := b.Execute(context.Background(), func() (interface{}, error) {
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)
	}

	_, err := b.Execute(context.Background(), func() (interface{}, error) {
		return "should not run", nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestBreakerOpenStateUsesFallback(t *testing.T) {
	b := New(testSettings("test-fallback"), StaticFallback([]string{}))
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		b.Execute(context.Background(), func() (interface{}, error) {
			return nil, boom
		})
	}

	result, err := b.Execute(context.Background(), func() (interface{}, error) {
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{}, result)
}

func TestBuildSettingsDefaults(t *testing.T) {
	s := BuildSettings("", 0, 0, 0, 0)

	assert.Equal(t, time.Minute, s.Interval)
	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.Equal(t, uint32(5), s.FailureThreshold)
	assert.Equal(t, uint32(1), s.SuccessThreshold)
}
