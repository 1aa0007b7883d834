package loop

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_RunsSequentially(t *testing.T) {
	l := New(0, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx) }()

	// Unsynchronized counter: only safe because every job runs on the loop goroutine.
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, l.Do(ctx, func() { counter++ }))
		}()
	}
	wg.Wait()

	var got int
	require.NoError(t, l.Do(ctx, func() { got = counter }))
	require.Equal(t, 50, got)
}

func TestRun_Ticks(t *testing.T) {
	var ticks atomic.Int32
	l := New(5*time.Millisecond, func() { ticks.Add(1) })
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx) }()

	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestRestartTick_DelaysNextTick(t *testing.T) {
	var ticks atomic.Int32
	l := New(300*time.Millisecond, func() { ticks.Add(1) })
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx) }()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, l.Do(ctx, l.RestartTick))

	// past the original 300ms deadline, but only ~200ms into the new interval
	time.Sleep(200 * time.Millisecond)
	require.Zero(t, ticks.Load())

	require.Eventually(t, func() bool { return ticks.Load() == 1 }, time.Second, 10*time.Millisecond)
}

func TestDo_AfterStop(t *testing.T) {
	l := New(0, nil)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()
	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)

	err := l.Do(context.Background(), func() {})
	require.ErrorIs(t, err, ErrStopped)
}
