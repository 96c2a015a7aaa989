// This file is part of VMusic.
//
// VMusic is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// VMusic is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with VMusic.  If not, see <https://www.gnu.org/licenses/>.

package worker

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vmusic/vmusic/logger"
)

// Sentinel errors returned by the worker.
var (
	ErrShuttingDown = errors.New("worker: wake while shutting down")
	ErrJoinTimeout  = errors.New("worker: join timed out")
)

// Timeouts used by Wake() and Stop().
const (
	ReapTimeout = 100 * time.Millisecond
	JoinTimeout = 30 * time.Second
)

// Body is the function run by the worker's goroutine. The function should
// return promptly once ShutdownRequested() is true.
type Body func() error

type handle struct {
	generation uint64
	done       chan struct{}
}

// Worker manages the lifecycle of a single background goroutine. There is at
// most one goroutine per worker at any one time.
type Worker struct {
	env  logger.Permission
	name string
	body Body

	// Interrupt is called by Stop() after the shutdown flag has been set. It
	// allows a goroutine that is blocked (in a poll for example) to notice the
	// request. Can be nil
	Interrupt func()

	// crit protects the handle and the generation count. it is never held by
	// the goroutine
	crit       sync.Mutex
	handle     *handle
	generation uint64

	shutdown atomic.Bool
	stopped  atomic.Bool

	// host time of the most recent call to Wake(). in nanoseconds since the
	// unix epoch
	lastWrite atomic.Int64

	errCrit sync.Mutex
	err     error
}

// NewWorker is the preferred method of initialisation for the Worker type. The
// name is used as the tag for log entries.
func NewWorker(env logger.Permission, name string, body Body) *Worker {
	return &Worker{
		env:  env,
		name: name,
		body: body,
	}
}

// Wake makes sure the goroutine is running. It records the time of the call,
// which is used by the goroutine to decide if it has been idle for too long.
//
// If the goroutine has exited on its own it is reaped and a new goroutine is
// started. A wake while a requested shutdown is still in progress is an error.
func (w *Worker) Wake() error {
	w.lastWrite.Store(time.Now().UnixNano())

	w.crit.Lock()
	defer w.crit.Unlock()

	if w.handle != nil {
		if w.stopped.Load() {
			if err := w.reap(ReapTimeout); err != nil {
				return err
			}
		} else if w.shutdown.Load() {
			logger.Logf(w.env, w.name, "%v", ErrShuttingDown)
			return ErrShuttingDown
		}
	}

	if w.handle == nil {
		w.start()
	}

	return nil
}

// start a new goroutine. must be called with crit held and with no handle
func (w *Worker) start() {
	w.shutdown.Store(false)
	w.stopped.Store(false)

	w.generation++
	h := &handle{
		generation: w.generation,
		done:       make(chan struct{}),
	}
	w.handle = h

	go func() {
		err := w.body()

		w.errCrit.Lock()
		w.err = err
		w.errCrit.Unlock()

		w.stopped.Store(true)
		close(h.done)
	}()
}

// Stop requests that the goroutine exits. If wait is true then Stop() will
// wait for the goroutine to exit, up to JoinTimeout. Stopping a worker with no
// goroutine does nothing.
func (w *Worker) Stop(wait bool) error {
	w.crit.Lock()
	defer w.crit.Unlock()

	if w.handle == nil {
		return nil
	}

	w.shutdown.Store(true)
	if w.Interrupt != nil {
		w.Interrupt()
	}

	if wait {
		return w.reap(JoinTimeout)
	}

	return nil
}

// Reap waits for an exiting goroutine to finish, up to the timeout. The
// handle is cleared if the goroutine has finished.
func (w *Worker) Reap(timeout time.Duration) error {
	w.crit.Lock()
	defer w.crit.Unlock()
	return w.reap(timeout)
}

// must be called with crit held
func (w *Worker) reap(timeout time.Duration) error {
	if w.handle == nil {
		return nil
	}

	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case <-w.handle.done:
		w.handle = nil
		return nil
	case <-t.C:
		logger.Logf(w.env, w.name, "%v (generation %d)", ErrJoinTimeout, w.handle.generation)
		return ErrJoinTimeout
	}
}

// ShutdownRequested returns true if Stop() has been called since the
// goroutine was started. Safe to call from the goroutine.
func (w *Worker) ShutdownRequested() bool {
	return w.shutdown.Load()
}

// Stopped returns true if the goroutine has exited and not yet been reaped.
func (w *Worker) Stopped() bool {
	return w.stopped.Load()
}

// LastWrite returns the time of the most recent call to Wake(). Safe to call
// from the goroutine.
func (w *Worker) LastWrite() time.Time {
	return time.Unix(0, w.lastWrite.Load())
}

// Touch records the current time as the last write time without starting the
// goroutine.
func (w *Worker) Touch() {
	w.lastWrite.Store(time.Now().UnixNano())
}

// Idle returns true if no call to Wake() has happened in the timeout period.
func (w *Worker) Idle(timeout time.Duration) bool {
	return time.Since(w.LastWrite()) > timeout
}

// Running returns true if there is a goroutine that has not yet exited.
func (w *Worker) Running() bool {
	w.crit.Lock()
	defer w.crit.Unlock()
	return w.handle != nil && !w.stopped.Load()
}

// Generation identifies the most recently started goroutine. A value of zero
// means that a goroutine has never been started.
func (w *Worker) Generation() uint64 {
	w.crit.Lock()
	defer w.crit.Unlock()
	return w.generation
}

// Err returns the error returned by the most recently finished goroutine.
func (w *Worker) Err() error {
	w.errCrit.Lock()
	defer w.errCrit.Unlock()
	return w.err
}
