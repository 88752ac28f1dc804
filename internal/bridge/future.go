package bridge

import "context"

// Future is the handle returned by Submit. Done closes when the work
// returns; the continuation runs later, on the next tick.
type Future struct {
	id       uint64
	name     string
	startSeq uint64
	done     chan struct{}
	err      error
}

func newFuture(id uint64, name string) *Future {
	return &Future{
		id:   id,
		name: name,
		done: make(chan struct{}),
	}
}

func (f *Future) ID() uint64 {
	return f.id
}

func (f *Future) Name() string {
	return f.name
}

// StartSeq is the position in which the scheduler started the work, from 1.
// Zero means it never started. Only meaningful after Done is closed.
func (f *Future) StartSeq() uint64 {
	return f.startSeq
}

func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Err is only meaningful after Done is closed
func (f *Future) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}

// Wait blocks until the work has returned or ctx ends
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Future) resolve(err error) {
	f.err = err
	close(f.done)
}
