package bridge

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"

	"tg-sender/internal/logger"
)

var ErrClosed = errors.New("scheduler closed")

// Work is a blocking unit of work. It runs off the GUI thread and must not
// touch widgets.
type Work func(ctx context.Context) error

// Continuation receives the result of Work on the thread that calls Tick.
type Continuation func(err error)

type job struct {
	future *Future
	work   Work
	onDone Continuation
	err    error
	took   time.Duration
}

// Scheduler queues work submitted from GUI handlers and lets the host loop
// drive it through Tick. Jobs start in submission order; completions are
// delivered in the order they finish, which may differ.
type Scheduler struct {
	logger logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	queued   []*job
	finished []*job
	running  int
	nextID   uint64
	startSeq uint64
	closed   bool
}

func NewScheduler(log logger.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		logger: log,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Submit enqueues work for the next tick. onDone may be nil.
func (s *Scheduler) Submit(name string, work Work, onDone Continuation) *Future {
	s.mu.Lock()
	s.nextID++
	future := newFuture(s.nextID, name)

	if s.closed {
		s.mu.Unlock()
		future.resolve(ErrClosed)
		s.logger.Warning("Scheduler", "submit after close", map[string]interface{}{
			"task": name,
		})
		return future
	}

	s.queued = append(s.queued, &job{future: future, work: work, onDone: onDone})
	pending := len(s.queued)
	s.mu.Unlock()

	s.logger.Debug("Scheduler", "task submitted", map[string]interface{}{
		"task":    name,
		"id":      future.id,
		"pending": pending,
	})
	return future
}

// Tick starts every queued job and runs the continuations of jobs that
// finished since the previous tick. It returns the number of jobs started
// plus continuations run; zero means the tick did nothing.
func (s *Scheduler) Tick() int {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0
	}
	start := s.queued
	finished := s.finished
	s.queued = nil
	s.finished = nil
	s.running += len(start)
	s.wg.Add(len(start))
	s.mu.Unlock()

	for _, j := range start {
		started := make(chan struct{})
		go s.run(j, started)
		<-started
	}

	for _, j := range finished {
		s.complete(j)
	}

	return len(start) + len(finished)
}

func (s *Scheduler) run(j *job, started chan<- struct{}) {
	defer s.wg.Done()

	s.mu.Lock()
	s.startSeq++
	j.future.startSeq = s.startSeq
	s.mu.Unlock()
	close(started)

	began := time.Now()
	j.err = s.execute(j)
	j.took = time.Since(began)

	s.mu.Lock()
	s.running--
	if !s.closed {
		s.finished = append(s.finished, j)
	}
	s.mu.Unlock()

	j.future.resolve(j.err)
}

func (s *Scheduler) execute(j *job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("task panicked: %v", r)
		}
	}()
	return j.work(s.ctx)
}

func (s *Scheduler) complete(j *job) {
	fields := map[string]interface{}{
		"task":        j.future.name,
		"id":          j.future.id,
		"duration_ms": j.took.Milliseconds(),
	}
	if j.err != nil {
		fields["op"] = j.future.name
		s.logger.Error("Scheduler", j.err, fields)
	} else {
		s.logger.Debug("Scheduler", "task completed", fields)
	}

	if j.onDone == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Scheduler", errors.Errorf("continuation panicked: %v", r), map[string]interface{}{
				"op":   "continuation",
				"task": j.future.name,
			})
		}
	}()
	j.onDone(j.err)
}

// Pending is the number of jobs waiting for the next tick
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queued)
}

// Running is the number of jobs whose work has not returned yet
func (s *Scheduler) Running() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Close cancels the context of running work and waits for it. Jobs that
// never started resolve with ErrClosed; no continuation runs after Close.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	dropped := s.queued
	s.queued = nil
	s.finished = nil
	s.mu.Unlock()

	s.cancel()
	for _, j := range dropped {
		j.future.resolve(ErrClosed)
	}
	s.wg.Wait()

	s.logger.Info("Scheduler", "closed", map[string]interface{}{
		"dropped": len(dropped),
	})
}

func (s *Scheduler) Shutdown() {
	s.Close()
}
