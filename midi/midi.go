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
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Events is the set of conditions that Poll() waits for.
type Events uint8

// List of poll events.
const (
	// the transport has bytes that can be read
	In Events = 1 << iota

	// the transport can accept bytes
	Out
)

func (ev Events) String() string {
	var s []string
	if ev&In == In {
		s = append(s, "in")
	}
	if ev&Out == Out {
		s = append(s, "out")
	}
	if len(s) == 0 {
		return "none"
	}
	return strings.Join(s, "|")
}

// ErrInterrupted is returned by Poll() when the poll was ended by a call to
// PollInterrupt().
var ErrInterrupted = errors.New("midi: poll interrupted")

// Transport is the interface to a bidirectional MIDI byte stream.
type Transport interface {
	// Open the transport. The meaning of the device string depends on the
	// implementation
	Open(device string) error
	Close() error

	// Reset drops any buffered bytes in both directions. The transport
	// remains open
	Reset() error

	// Poll waits until at least one of the events is ready or until the
	// timeout expires. A negative timeout waits indefinitely. On timeout the
	// returned events are zero.
	//
	// Returns ErrInterrupted if PollInterrupt() is called while waiting. A
	// call to PollInterrupt() while no goroutine is waiting interrupts the
	// next Poll()
	Poll(events Events, timeout time.Duration) (Events, error)
	PollInterrupt() error

	// Write and Read never block. A return of zero bytes means the call would
	// have blocked
	Write(p []byte) (int, error)
	Read(p []byte) (int, error)
}

// Factory creates a new and unopened Transport.
type Factory func() Transport

var backends = struct {
	crit sync.Mutex
	m    map[string]Factory
}{
	m: map[string]Factory{
		"loopback": func() Transport { return NewLoopback(LoopbackSize) },
	},
}

// DefaultBackend is the backend used for device names with no backend prefix
// that are not themselves the name of a backend.
const DefaultBackend = "loopback"

// Register a backend. Registering an existing name replaces the previous
// backend.
func Register(name string, f Factory) {
	backends.crit.Lock()
	defer backends.crit.Unlock()
	backends.m[name] = f
}

// Backends returns the list of registered backend names.
func Backends() []string {
	backends.crit.Lock()
	defer backends.crit.Unlock()
	n := make([]string, 0, len(backends.m))
	for k := range backends.m {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// Select the backend for a transport name. Names are of the form:
//
//	backend:device
//
// The device part is passed to the Transport's Open() function. A name with
// no colon is the name of a backend, with an empty device part. An empty name
// selects the default backend.
func Select(name string) (Transport, string, error) {
	backend, device, _ := strings.Cut(name, ":")
	if backend == "" {
		backend = DefaultBackend
	}

	backends.crit.Lock()
	f, ok := backends.m[backend]
	backends.crit.Unlock()

	if !ok {
		return nil, "", fmt.Errorf("midi: unknown backend (%s)", backend)
	}

	return f(), device, nil
}

// Open selects the backend for the transport name and opens it.
func Open(name string) (Transport, error) {
	t, device, err := Select(name)
	if err != nil {
		return nil, err
	}
	if err := t.Open(device); err != nil {
		return nil, fmt.Errorf("midi: %s: %w", name, err)
	}
	return t, nil
}
