package shutdown

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tg-sender/internal/logger"
)

type recorder struct {
	mu    sync.Mutex
	order []string
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, name)
}

type component struct {
	name  string
	rec   *recorder
	block chan struct{}
	boom  bool
}

func (c *component) Shutdown() {
	if c.block != nil {
		<-c.block
	}
	if c.boom {
		panic("shutdown failed")
	}
	c.rec.add(c.name)
}

func TestManager_ReverseOrderOnce(t *testing.T) {
	rec := &recorder{}
	m := NewManager(logger.NoOpLogger{}, time.Second)
	m.Register("pump", &component{name: "pump", rec: rec})
	m.Register("scheduler", &component{name: "scheduler", rec: rec})
	m.Register("session", &component{name: "session", rec: rec})

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, []string{"session", "scheduler", "pump"}, rec.order)

	select {
	case <-m.done:
	default:
		t.Fatal("done not closed")
	}
}

func TestManager_ShutdownReleasesListener(t *testing.T) {
	m := NewManager(logger.NoOpLogger{}, time.Second)

	called := make(chan struct{}, 1)
	m.Listen(func() { called <- struct{}{} })
	m.Shutdown()

	select {
	case <-called:
		t.Fatal("signal callback ran without a signal")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestManager_TimeoutAndPanicDoNotStopSequence(t *testing.T) {
	rec := &recorder{}
	block := make(chan struct{})
	defer close(block)

	m := NewManager(logger.NoOpLogger{}, 20*time.Millisecond)
	m.Register("first", &component{name: "first", rec: rec})
	m.Register("stuck", &component{name: "stuck", rec: rec, block: block})
	m.Register("broken", &component{name: "broken", rec: rec, boom: true})

	m.Shutdown()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []string{"first"}, rec.order)
}

func TestNewManager_DefaultTimeout(t *testing.T) {
	m := NewManager(logger.NoOpLogger{}, 0)
	assert.Equal(t, DefaultComponentTimeout, m.timeout)
}
