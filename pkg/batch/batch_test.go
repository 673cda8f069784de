package batch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	zzkerrors "github.com/zzk-cli/zzk/pkg/errors"
)

var errOdd = errors.New("odd")

func values[T any](outcomes []Outcome[T]) []T {
	vals := make([]T, len(outcomes))
	for i, o := range outcomes {
		vals[i] = o.Value
	}
	return vals
}

func double(_ context.Context, n int) (int, error) {
	if n%2 == 1 {
		return 0, fmt.Errorf("item %d: %w", n, errOdd)
	}
	return n * 2, nil
}

func TestRun_PreservesOrder(t *testing.T) {
	items := []int{8, 6, 4, 2, 0}

	for _, concurrency := range []int{0, 1, 3, 16} {
		t.Run(fmt.Sprintf("concurrency=%d", concurrency), func(t *testing.T) {
			out, err := Run(context.Background(), items, Options{Concurrency: concurrency}, func(_ context.Context, n int) (int, error) {
				// Later items finish first.
				time.Sleep(time.Duration(n) * time.Millisecond)
				return n * 2, nil
			})
			require.NoError(t, err)
			assert.Equal(t, []int{16, 12, 8, 4, 0}, values(out))
		})
	}
}

func TestRun_Abort(t *testing.T) {
	var calls atomic.Int32
	out, err := Run(context.Background(), []int{2, 3, 4, 6}, Options{Policy: PolicyAbort}, func(ctx context.Context, n int) (int, error) {
		calls.Add(1)
		return double(ctx, n)
	})

	require.ErrorIs(t, err, errOdd)
	assert.Nil(t, out)
	// Sequential by default: nothing after the failing item runs.
	assert.Equal(t, int32(2), calls.Load())
}

func TestRun_Skip(t *testing.T) {
	out, err := Run(context.Background(), []int{1, 2, 3, 4}, Options{Policy: PolicySkip, Concurrency: 2}, double)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].Index)
	assert.Equal(t, 3, out[1].Index)
	assert.Equal(t, []int{4, 8}, values(out))
}

func TestRun_Collect(t *testing.T) {
	out, err := Run(context.Background(), []int{1, 2, 3}, Options{Policy: PolicyCollect}, double)

	require.Error(t, err)
	assert.ErrorIs(t, err, errOdd)
	require.Len(t, out, 3)
	assert.Error(t, out[0].Err)
	assert.NoError(t, out[1].Err)
	assert.Equal(t, 4, out[1].Value)
	assert.Error(t, out[2].Err)
	assert.Equal(t, "item 1: odd; item 3: odd", err.Error())
}

func TestRun_CollectAllSucceed(t *testing.T) {
	out, err := Run(context.Background(), []int{2, 4}, Options{Policy: PolicyCollect}, double)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 8}, values(out))
}

func TestRun_UnknownPolicy(t *testing.T) {
	_, err := Run(context.Background(), []int{1}, Options{Policy: "retry"}, double)
	require.Error(t, err)
	assert.True(t, zzkerrors.IsCode(err, zzkerrors.ErrCodeInvalidRequest))
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, p := range []Policy{PolicyAbort, PolicySkip} {
		t.Run(string(p), func(t *testing.T) {
			_, err := Run(ctx, []int{2, 4}, Options{Policy: p}, double)
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestRun_Limiter(t *testing.T) {
	limiter := rate.NewLimiter(rate.Every(10*time.Millisecond), 1)
	start := time.Now()

	out, err := Run(context.Background(), []int{2, 4, 6, 8}, Options{Limiter: limiter, Concurrency: 4}, double)

	require.NoError(t, err)
	assert.Len(t, out, 4)
	// One token up front, three more at 10ms intervals.
	assert.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)
}

func TestPolicy_IsUnknown(t *testing.T) {
	tests := []struct {
		policy Policy
		want   bool
	}{
		{PolicyAbort, false},
		{PolicySkip, false},
		{PolicyCollect, false},
		{Policy(""), true},
		{Policy("ignore"), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.IsUnknown())
		})
	}
}

func TestSupportedPolicies(t *testing.T) {
	assert.Equal(t, []string{"abort", "skip", "collect"}, SupportedPolicies())
}
