package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type completerFunc func(ctx context.Context, now time.Time) (int64, error)

func (f completerFunc) CompletePastBookings(ctx context.Context, now time.Time) (int64, error) {
	return f(ctx, now)
}

func TestScheduler_CompletesOnStartAndStops(t *testing.T) {
	calls := make(chan time.Time, 1)
	completer := completerFunc(func(_ context.Context, now time.Time) (int64, error) {
		select {
		case calls <- now:
		default:
		}
		return 2, nil
	})

	core, logs := observer.New(zapcore.InfoLevel)
	s := NewScheduler(completer, time.Hour, zap.New(core))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	select {
	case now := <-calls:
		assert.WithinDuration(t, time.Now(), now, time.Minute)
	case <-time.After(2 * time.Second):
		t.Fatal("first run did not happen on start")
	}

	s.Stop()

	require.Eventually(t, func() bool {
		return logs.FilterMessage("Booking completion task stopped").Len() == 1
	}, 2*time.Second, 10*time.Millisecond)

	completed := logs.FilterMessage("Past bookings completed").All()
	require.Len(t, completed, 1)
	assert.Equal(t, int64(2), completed[0].ContextMap()["count"])
}

func TestScheduler_LogsFailures(t *testing.T) {
	completer := completerFunc(func(context.Context, time.Time) (int64, error) {
		return 0, errors.New("db is down")
	})

	core, logs := observer.New(zapcore.InfoLevel)
	s := NewScheduler(completer, 0, zap.New(core))
	assert.Equal(t, time.Hour, s.interval, "non-positive interval falls back to an hour")

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	require.Eventually(t, func() bool {
		return logs.FilterMessage("Failed to complete past bookings").Len() == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.Eventually(t, func() bool {
		return logs.FilterMessage("Booking completion task cancelled").Len() == 1
	}, 2*time.Second, 10*time.Millisecond)
}
