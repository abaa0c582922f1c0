package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/talgya/ghost-cookies/internal/projection"
	"github.com/talgya/ghost-cookies/internal/render"
	"github.com/talgya/ghost-cookies/internal/shop"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startLoop(t *testing.T, fps int) (*Loop, context.CancelFunc, <-chan error) {
	t.Helper()
	l := NewLoop(fps)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()
	return l, cancel, errc
}

func stopLoop(t *testing.T, cancel context.CancelFunc, errc <-chan error) {
	t.Helper()
	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestNewLoopInterval(t *testing.T) {
	assert.Equal(t, time.Second/60, NewLoop(0).Interval)
	assert.Equal(t, time.Second/30, NewLoop(30).Interval)
}

func TestLoopDo(t *testing.T) {
	l, cancel, errc := startLoop(t, 100)
	defer stopLoop(t, cancel, errc)

	ran := false
	require.NoError(t, l.Do(context.Background(), func() { ran = true }))
	assert.True(t, ran)
}

func TestLoopRunsScheduledFrame(t *testing.T) {
	l, cancel, errc := startLoop(t, 200)
	defer stopLoop(t, cancel, errc)

	fired := make(chan struct{})
	require.NoError(t, l.Do(context.Background(), func() {
		l.Schedule(func() { close(fired) })
	}))

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled frame never ran")
	}
}

func TestLoopCancel(t *testing.T) {
	l := NewLoop(60)
	n := 0
	l.Schedule(func() { n++ })
	l.Cancel()
	l.step()
	assert.Zero(t, n)
	assert.Zero(t, l.Tick)

	l.Schedule(func() { n++ })
	l.step()
	l.step()
	assert.Equal(t, 1, n, "a frame runs once")
	assert.Equal(t, uint64(1), l.Tick)
}

func TestLoopDoAfterStop(t *testing.T) {
	l, cancel, errc := startLoop(t, 60)
	stopLoop(t, cancel, errc)

	err := l.Do(context.Background(), func() {})
	assert.ErrorIs(t, err, ErrLoopStopped)
}

func TestLoopDoContextCancelled(t *testing.T) {
	l := NewLoop(60) // never run
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.Do(ctx, func() {}), context.Canceled)
}

func TestLoopDrivesDriver(t *testing.T) {
	l, cancel, errc := startLoop(t, 500)
	defer stopLoop(t, cancel, errc)

	frames := make(chan struct{}, 64)
	d := NewDriver(newTestSession(t, shop.ArchEfficient), l, signalPresenter(frames))
	require.NoError(t, l.Do(context.Background(), d.Start))

	for i := 0; i < 3; i++ {
		select {
		case <-frames:
		case <-time.After(2 * time.Second):
			t.Fatal("driver stalled")
		}
	}

	var state State
	require.NoError(t, l.Do(context.Background(), func() { state = d.Toggle() }))
	assert.Equal(t, Paused, state)
}

// signalPresenter reports each frame without blocking the loop.
type signalPresenter chan struct{}

func (p signalPresenter) Present(*render.Scene, projection.ViewState) {
	select {
	case p <- struct{}{}:
	default:
	}
}
