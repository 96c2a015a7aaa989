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
	"fmt"
	"sync"
	"time"
)

// LoopbackSize is the capacity of the loopback transport created by the
// "loopback" backend.
const LoopbackSize = 4096

// Loopback is a transport that returns every byte written to it. Bytes can
// also be injected as if they had arrived from an external device.
type Loopback struct {
	ready *Readiness

	crit sync.Mutex
	buf  []byte
	size int
	open bool
}

// NewLoopback is the preferred method of initialisation for the Loopback type.
// The size is the number of bytes the transport can hold before writes are
// refused.
func NewLoopback(size int) *Loopback {
	return &Loopback{
		ready: NewReadiness(),
		size:  size,
	}
}

func (lb *Loopback) String() string {
	lb.crit.Lock()
	defer lb.crit.Unlock()
	return fmt.Sprintf("loopback (%d/%d)", len(lb.buf), lb.size)
}

// Open implements the Transport interface. The device string is ignored.
func (lb *Loopback) Open(_ string) error {
	lb.crit.Lock()
	defer lb.crit.Unlock()
	if lb.size <= 0 {
		return fmt.Errorf("loopback: invalid size (%d)", lb.size)
	}
	lb.buf = lb.buf[:0]
	lb.open = true
	return nil
}

// Close implements the Transport interface.
func (lb *Loopback) Close() error {
	lb.crit.Lock()
	lb.open = false
	lb.buf = nil
	lb.crit.Unlock()
	lb.ready.Signal()
	return nil
}

// Reset implements the Transport interface.
func (lb *Loopback) Reset() error {
	lb.crit.Lock()
	lb.buf = lb.buf[:0]
	lb.crit.Unlock()
	lb.ready.Signal()
	return nil
}

func (lb *Loopback) readiness() Events {
	lb.crit.Lock()
	defer lb.crit.Unlock()

	var ev Events
	if len(lb.buf) > 0 {
		ev |= In
	}
	if len(lb.buf) < lb.size {
		ev |= Out
	}
	return ev
}

// Poll implements the Transport interface.
func (lb *Loopback) Poll(events Events, timeout time.Duration) (Events, error) {
	lb.crit.Lock()
	open := lb.open
	lb.crit.Unlock()
	if !open {
		return 0, fmt.Errorf("loopback: poll: not open")
	}
	return lb.ready.Wait(lb.readiness, events, timeout)
}

// PollInterrupt implements the Transport interface.
func (lb *Loopback) PollInterrupt() error {
	lb.ready.Interrupt()
	return nil
}

// Write implements the Transport interface.
func (lb *Loopback) Write(p []byte) (int, error) {
	return lb.Inject(p)
}

// Inject bytes into the transport as if they had arrived from an external
// device. Returns the number of bytes accepted.
func (lb *Loopback) Inject(p []byte) (int, error) {
	lb.crit.Lock()
	if !lb.open {
		lb.crit.Unlock()
		return 0, fmt.Errorf("loopback: write: not open")
	}
	n := min(len(p), lb.size-len(lb.buf))
	lb.buf = append(lb.buf, p[:n]...)
	lb.crit.Unlock()

	if n > 0 {
		lb.ready.Signal()
	}
	return n, nil
}

// Read implements the Transport interface.
func (lb *Loopback) Read(p []byte) (int, error) {
	lb.crit.Lock()
	if !lb.open {
		lb.crit.Unlock()
		return 0, fmt.Errorf("loopback: read: not open")
	}
	n := copy(p, lb.buf)
	lb.buf = lb.buf[:copy(lb.buf, lb.buf[n:])]
	lb.crit.Unlock()

	if n > 0 {
		lb.ready.Signal()
	}
	return n, nil
}
