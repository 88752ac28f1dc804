package bridge

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-faster/errors"

	"tg-sender/internal/logger"
)

// Ticker is what the pump drives
type Ticker interface {
	Tick() int
}

// Dispatcher runs fn on the host's UI thread, e.g. fyne.Do.
type Dispatcher func(fn func())

// Pump calls Tick through the dispatcher at a fixed interval. A tick is not
// re-armed until the previous one has run, so a slow host skips intervals
// instead of piling them up.
type Pump struct {
	ticker   Ticker
	interval time.Duration
	dispatch Dispatcher
	logger   logger.Logger
	inflight atomic.Bool

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewPump(ticker Ticker, interval time.Duration, dispatch Dispatcher, log logger.Logger) (*Pump, error) {
	if ticker == nil {
		return nil, errors.New("ticker must not be nil")
	}
	if interval <= 0 {
		return nil, errors.New("interval must be > 0")
	}
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}

	return &Pump{
		ticker:   ticker,
		interval: interval,
		dispatch: dispatch,
		logger:   log,
	}, nil
}

func (p *Pump) Start() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true

	go p.loop(ctx, p.done)

	p.logger.Info("Pump", "started", map[string]interface{}{
		"interval": p.interval.String(),
	})
	return true
}

func (p *Pump) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.inflight.CompareAndSwap(false, true) {
				continue
			}
			p.dispatch(func() {
				defer p.inflight.Store(false)
				p.ticker.Tick()
			})
		}
	}
}

func (p *Pump) Stop() bool {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return false
	}
	p.running = false
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	cancel()
	<-done

	p.logger.Info("Pump", "stopped", nil)
	return true
}

func (p *Pump) Shutdown() {
	p.Stop()
}
