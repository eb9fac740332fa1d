package eventloop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startLoop(t *testing.T) *Loop {
	t.Helper()
	l := NewLoop(nil)
	go func() { _ = l.Run(context.Background()) }()
	t.Cleanup(l.Stop)
	return l
}

func TestLoop_Do(t *testing.T) {
	l := startLoop(t)

	done := make(chan int, 1)
	require.True(t, l.Do(func() { done <- 42 }))

	select {
	case v := <-done:
		assert.Equal(t, 42, v)
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}
}

func TestLoop_AfterFunc(t *testing.T) {
	l := startLoop(t)

	fired := make(chan struct{})
	l.Do(func() {
		l.AfterFunc(5, func() { close(fired) })
	})

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestLoop_TimerStop(t *testing.T) {
	l := startLoop(t)

	result := make(chan bool, 1)
	fired := make(chan struct{}, 1)
	l.Do(func() {
		timer := l.AfterFunc(20, func() { fired <- struct{}{} })
		result <- timer.Stop() && !timer.Active()
	})

	assert.True(t, <-result)
	select {
	case <-fired:
		t.Fatal("stopped timer fired")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestLoop_ContextCancel(t *testing.T) {
	l := NewLoop(nil)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	// Leave a pending timer behind; Run must cancel it.
	started := make(chan struct{})
	l.Do(func() {
		l.AfterFunc(int(time.Hour/time.Millisecond), func() {})
		close(started)
	})
	<-started
	cancel()

	assert.ErrorIs(t, <-errCh, context.Canceled)
	assert.False(t, l.Do(func() {}), "Do after shutdown is rejected")
}
