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

package pcm

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vmusic/vmusic/pcm/otoaudio"
	"github.com/vmusic/vmusic/pcm/sdlaudio"
	"github.com/vmusic/vmusic/pcm/wavwriter"
)

// Sink is the interface to an audio output. Samples are interleaved signed
// 16 bit values.
type Sink interface {
	// Open the output. The meaning of the device string depends on the
	// implementation
	Open(device string, rate int, channels int) error

	// Write blocks until all the samples have been accepted by the output.
	// Returns the number of frames written
	Write(samples []int16) (int, error)

	Close() error
}

// Factory creates a new and unopened Sink.
type Factory func() Sink

var backends = struct {
	crit sync.Mutex
	m    map[string]Factory
}{
	m: map[string]Factory{
		"oto":  func() Sink { return &otoaudio.Audio{} },
		"sdl":  func() Sink { return &sdlaudio.Audio{} },
		"wav":  func() Sink { return &wavwriter.WavWriter{} },
		"null": func() Sink { return &Null{} },
	},
}

// DefaultBackend is the backend used for the "default" output device and for
// device names with no backend prefix.
const DefaultBackend = "oto"

// Register a backend. The name is the prefix of device names that will use the
// backend. Registering an existing name replaces the previous backend.
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

// Select the backend for an output device name. Device names are of the form:
//
//	backend:device
//
// The device part is passed to the Sink's Open() function. A name with no
// colon is either the name of a backend, in which case the device part is
// empty, or is a device of the default backend. The name "default" is the
// default device of the default backend.
func Select(name string) (Sink, string, error) {
	backend, device, found := strings.Cut(name, ":")
	if !found {
		backend = name
	}

	if name == "" || name == "default" {
		backend = DefaultBackend
		device = ""
	}

	backends.crit.Lock()
	f, ok := backends.m[backend]
	backends.crit.Unlock()

	if !ok {
		if found {
			return nil, "", fmt.Errorf("pcm: unknown backend (%s)", backend)
		}
		backends.crit.Lock()
		f = backends.m[DefaultBackend]
		backends.crit.Unlock()
		device = name
	}

	return f(), device, nil
}
