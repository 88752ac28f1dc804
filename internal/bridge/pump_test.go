package bridge

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tg-sender/internal/logger"
)

type countingTicker struct {
	ticks atomic.Int32
}

func (c *countingTicker) Tick() int {
	c.ticks.Add(1)
	return 0
}

func TestNewPump_Validates(t *testing.T) {
	_, err := NewPump(nil, time.Millisecond, nil, logger.NoOpLogger{})
	assert.Error(t, err)

	_, err = NewPump(&countingTicker{}, 0, nil, logger.NoOpLogger{})
	assert.Error(t, err)
}

func TestPump_DrivesTicker(t *testing.T) {
	ticker := &countingTicker{}
	var dispatched atomic.Int32
	dispatch := func(fn func()) {
		dispatched.Add(1)
		fn()
	}

	p, err := NewPump(ticker, 5*time.Millisecond, dispatch, logger.NoOpLogger{})
	require.NoError(t, err)

	assert.True(t, p.Start())
	assert.False(t, p.Start(), "second start is a no-op")

	assert.Eventually(t, func() bool {
		return ticker.ticks.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	assert.True(t, p.Stop())
	assert.False(t, p.Stop())

	stopped := ticker.ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, ticker.ticks.Load())
	assert.Equal(t, dispatched.Load(), stopped)
}

func TestPump_SkipsWhileTickInFlight(t *testing.T) {
	ticker := &countingTicker{}
	var held atomic.Pointer[func()]
	dispatch := func(fn func()) {
		held.CompareAndSwap(nil, &fn)
	}

	p, err := NewPump(ticker, 2*time.Millisecond, dispatch, logger.NoOpLogger{})
	require.NoError(t, err)
	p.Start()
	defer p.Stop()

	require.Eventually(t, func() bool { return held.Load() != nil }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), ticker.ticks.Load(), "no tick dispatched while the first is pending")

	(*held.Load())()
	assert.Equal(t, int32(1), ticker.ticks.Load())
}

func TestPump_WithScheduler(t *testing.T) {
	s := NewScheduler(logger.NoOpLogger{})
	defer s.Close()

	p, err := NewPump(s, 2*time.Millisecond, nil, logger.NoOpLogger{})
	require.NoError(t, err)
	p.Start()
	defer p.Stop()

	delivered := make(chan error, 1)
	s.Submit("ping", func(ctx context.Context) error { return nil }, func(err error) { delivered <- err })

	select {
	case err := <-delivered:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("continuation not delivered by pump")
	}
}
