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

package midi

import (
	"sync/atomic"
	"time"
)

// Readiness implements Poll() and PollInterrupt() for transports that are not
// backed by a file descriptor. The transport calls Signal() whenever its
// readiness might have changed.
type Readiness struct {
	signal      chan struct{}
	interrupted atomic.Bool
}

// NewReadiness is the preferred method of initialisation for the Readiness
// type.
func NewReadiness() *Readiness {
	return &Readiness{
		signal: make(chan struct{}, 1),
	}
}

// Signal any goroutine waiting in Wait() to check the readiness of the
// transport again.
func (r *Readiness) Signal() {
	select {
	case r.signal <- struct{}{}:
	default:
	}
}

// Interrupt the current or next call to Wait().
func (r *Readiness) Interrupt() {
	r.interrupted.Store(true)
	r.Signal()
}

// Clear any pending interrupt.
func (r *Readiness) Clear() {
	r.interrupted.Store(false)
}

// Wait until the ready function returns any of the events, or until the
// timeout expires. Follows the rules of Transport.Poll().
func (r *Readiness) Wait(ready func() Events, events Events, timeout time.Duration) (Events, error) {
	// a nil channel blocks forever
	var expired <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		expired = t.C
	}

	for {
		if r.interrupted.Swap(false) {
			return 0, ErrInterrupted
		}

		if ev := ready() & events; ev != 0 {
			return ev, nil
		}

		if timeout == 0 {
			return 0, nil
		}

		select {
		case <-r.signal:
		case <-expired:
			return ready() & events, nil
		}
	}
}
