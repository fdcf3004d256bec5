// Package lifecycle runs an instance's Step function in its own goroutine until it is
// closed or a step fails.
package lifecycle

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/ugparu/a2dp/utils/logger"
)

// Instance is driven by an AsyncManager.
type Instance interface {
	// Step does one unit of work. It returns a BreakError once stopCh is closed.
	Step(stopCh <-chan struct{}) error
	// Close_ releases the instance after its loop has exited.
	Close_()
	String() string
}

// BreakError ends the loop without being reported as a failure.
type BreakError struct{}

func (*BreakError) Error() string {
	return "break"
}

// StartedAlreadyError is returned by a second Start call.
type StartedAlreadyError struct{}

func (*StartedAlreadyError) Error() string {
	return "started already"
}

// StartedAfterCloseError is returned by Start after Close.
type StartedAfterCloseError struct{}

func (*StartedAfterCloseError) Error() string {
	return "start after close"
}

// Option configures an AsyncManager.
type Option func(*options)

type options struct {
	failSafe bool
}

// FailSafe keeps the loop running after a step returns an error or panics. Only a
// BreakError stops it.
func FailSafe() Option {
	return func(o *options) {
		o.failSafe = true
	}
}

// AsyncManager owns the goroutine running an instance.
type AsyncManager[T Instance] struct {
	instance             T
	opts                 options
	stopChan, doneChan   chan struct{}
	startOnce, closeOnce *sync.Once

	mu  sync.Mutex
	err error
}

func NewAsyncManager[T Instance](instance T, opts ...Option) *AsyncManager[T] {
	m := &AsyncManager[T]{
		instance:  instance,
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
		startOnce: &sync.Once{},
		closeOnce: &sync.Once{},
	}
	for _, opt := range opts {
		opt(&m.opts)
	}
	return m
}

// Start runs startFunc and, if it succeeds, starts the loop.
func (m *AsyncManager[T]) Start(startFunc func(T) error) (err error) {
	select {
	case <-m.stopChan:
		return &StartedAfterCloseError{}
	default:
		err = &StartedAlreadyError{}
	}
	m.startOnce.Do(func() {
		logger.Debugf(m.instance, "Starting async")
		if err = startFunc(m.instance); err != nil {
			m.setErr(err)
			close(m.doneChan)
			return
		}
		go m.process()
	})
	return err
}

func (m *AsyncManager[T]) process() {
	logger.Debug(m.instance, "Entering main loop")
	defer close(m.doneChan)

	for {
		err := m.step()
		switch {
		case err == nil:
		case errors.As(err, new(*BreakError)):
			return
		case m.opts.failSafe:
			logger.Warningf(m.instance, "Detected error: %s", err.Error())
		default:
			logger.Warningf(m.instance, "Stopping on error: %s", err.Error())
			m.setErr(err)
			return
		}
	}
}

func (m *AsyncManager[T]) step() (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(m.instance, "Panic detected! Recovering from: %v", r)
			logger.Errorf(m.instance, "%s", debug.Stack())
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return m.instance.Step(m.stopChan)
}

func (m *AsyncManager[T]) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Err returns the error that stopped the loop, or nil.
func (m *AsyncManager[T]) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Close stops the loop, waits for it to exit and closes the instance.
func (m *AsyncManager[T]) Close() {
	m.closeOnce.Do(func() {
		close(m.stopChan)
		m.startOnce.Do(func() {
			close(m.doneChan)
		})
		<-m.doneChan
		m.instance.Close_()
	})
}

// Done is closed once the loop has exited.
func (m *AsyncManager[T]) Done() <-chan struct{} {
	return m.doneChan
}
