package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	verrors "github.com/p-blackswan/arkide-viewer/internal/errors"
)

func fastConfig(attempts int) Config {
	return Config{MaxAttempts: attempts, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func TestDo_DefaultIsSingleAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), DefaultConfig(), func(ctx context.Context) error {
		calls++
		return verrors.NewAPIError("arkide", 503, "down")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_NonRetryableError(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(3), func(ctx context.Context) error {
		calls++
		return verrors.NewAPIError("arkide", 404, "missing")
	})
	assert.ErrorIs(t, err, verrors.ErrNotFound)
	assert.Equal(t, 1, calls)
}

func TestDo_RetryableError_EventualSuccess(t *testing.T) {
	calls := 0
	var retried []int
	cfg := fastConfig(3)
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		retried = append(retried, attempt)
	}
	err := Do(context.Background(), cfg, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return &verrors.TransportError{Err: errors.New("connection reset")}
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestDo_RetryableError_AllFail(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(2), func(ctx context.Context) error {
		calls++
		return verrors.NewAPIError("arkide", 502, "bad gateway")
	})
	assert.ErrorIs(t, err, verrors.ErrUnavailable)
	assert.Equal(t, 2, calls)
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{MaxAttempts: 5, BaseDelay: time.Second, MaxDelay: time.Second}
	err := Do(ctx, cfg, func(ctx context.Context) error {
		return verrors.ErrUnavailable
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithAttempts(t *testing.T) {
	assert.Equal(t, 1, DefaultConfig().WithAttempts(0).MaxAttempts)
	assert.Equal(t, 4, DefaultConfig().WithAttempts(4).MaxAttempts)
}
