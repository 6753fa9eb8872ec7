package navigator

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// ErrClosed is returned by Invoke after the dispatcher was closed.
var ErrClosed = errors.New("navigator: dispatcher closed")

type call struct {
	fn   func() error
	done chan error
}

// Dispatcher owns a dedicated goroutine, locked to its OS thread, that runs
// submitted functions one at a time in submission order. State owned by
// that goroutine needs no locking as long as it is only touched through
// Invoke.
type Dispatcher struct {
	calls   chan call
	closeCh chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// NewDispatcher starts the dispatcher goroutine.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		calls:   make(chan call),
		closeCh: make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(d.stopped)

	for {
		select {
		case c := <-d.calls:
			c.done <- d.safeCall(c.fn)
		case <-d.closeCh:
			return
		}
	}
}

func (d *Dispatcher) safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("navigator: dispatched call panicked: %v", r)
		}
	}()
	return fn()
}

// Invoke runs fn on the dispatcher goroutine and waits for its result.
// It returns ctx.Err() if ctx ends before fn is started; once started, fn
// always runs to completion and its error is returned. Invoke must not be
// called from inside a dispatched function.
func (d *Dispatcher) Invoke(ctx context.Context, fn func() error) error {
	c := call{fn: fn, done: make(chan error, 1)}
	select {
	case d.calls <- c:
	case <-d.closeCh:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-c.done
}

// Close stops the dispatcher goroutine after the running call, if any,
// completes. Later Invoke calls return ErrClosed.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.closeCh)
	})
	<-d.stopped
}
