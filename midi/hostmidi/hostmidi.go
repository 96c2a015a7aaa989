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

package hostmidi

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/vmusic/vmusic/midi"
)

// MaxInput is the number of received bytes the transport holds before
// further input is dropped.
const MaxInput = 4096

func init() {
	midi.Register("host", func() midi.Transport { return NewHostMIDI() })
}

// HostMIDI is a transport on the MIDI ports of the host.
type HostMIDI struct {
	drv  *rtmididrv.Driver
	out  drivers.Out
	in   drivers.In
	stop func()

	asm   midi.Assembler
	ready *midi.Readiness

	// crit protects the input and the listener error. both are written by the
	// listener goroutine of the driver
	crit    sync.Mutex
	input   []byte
	dropped int
	err     error
}

// NewHostMIDI is the preferred method of initialisation for the HostMIDI type.
func NewHostMIDI() *HostMIDI {
	return &HostMIDI{
		ready: midi.NewReadiness(),
	}
}

func (h *HostMIDI) String() string {
	if h.out == nil {
		return "host (not open)"
	}
	if h.in == nil {
		return fmt.Sprintf("host %s", h.out)
	}
	return fmt.Sprintf("host %s|%s", h.out, h.in)
}

// ParseDevice splits the device part of a transport name into the output and
// input port selectors.
func ParseDevice(device string) (out string, in string) {
	out, in, _ = strings.Cut(device, "|")
	return strings.TrimSpace(out), strings.TrimSpace(in)
}

// match returns the index of the port selected by name or number. An empty
// selector matches the first port.
func match(names []string, sel string) (int, bool) {
	if len(names) == 0 {
		return 0, false
	}
	if sel == "" {
		return 0, true
	}
	for i, n := range names {
		if n == sel {
			return i, true
		}
	}
	if i, err := strconv.Atoi(sel); err == nil && i >= 0 && i < len(names) {
		return i, true
	}
	for i, n := range names {
		if strings.HasPrefix(n, sel) {
			return i, true
		}
	}
	return 0, false
}

func portNames[T fmt.Stringer](ports []T) []string {
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.String()
	}
	return names
}

// Open implements the midi.Transport interface.
func (h *HostMIDI) Open(device string) error {
	if h.drv != nil {
		return fmt.Errorf("hostmidi: already open")
	}

	outSel, inSel := ParseDevice(device)

	drv, err := rtmididrv.New()
	if err != nil {
		return fmt.Errorf("hostmidi: %w", err)
	}
	h.drv = drv

	outs, err := drv.Outs()
	if err != nil {
		_ = h.Close()
		return fmt.Errorf("hostmidi: %w", err)
	}
	i, ok := match(portNames(outs), outSel)
	if !ok {
		_ = h.Close()
		return fmt.Errorf("hostmidi: no output port matching %q", outSel)
	}
	if err := outs[i].Open(); err != nil {
		_ = h.Close()
		return fmt.Errorf("hostmidi: %s: %w", outs[i], err)
	}
	h.out = outs[i]

	if inSel == "" {
		return nil
	}

	ins, err := drv.Ins()
	if err != nil {
		_ = h.Close()
		return fmt.Errorf("hostmidi: %w", err)
	}
	i, ok = match(portNames(ins), inSel)
	if !ok {
		_ = h.Close()
		return fmt.Errorf("hostmidi: no input port matching %q", inSel)
	}
	if err := ins[i].Open(); err != nil {
		_ = h.Close()
		return fmt.Errorf("hostmidi: %s: %w", ins[i], err)
	}
	h.in = ins[i]

	h.stop, err = gomidi.ListenTo(h.in, func(msg gomidi.Message, _ int32) {
		h.receive(msg)
	}, gomidi.UseSysEx(), gomidi.HandleError(func(err error) {
		h.crit.Lock()
		h.err = err
		h.crit.Unlock()
		h.ready.Signal()
	}))
	if err != nil {
		_ = h.Close()
		return fmt.Errorf("hostmidi: %s: %w", inSel, err)
	}

	return nil
}

func (h *HostMIDI) receive(msg []byte) {
	h.crit.Lock()
	n := min(len(msg), MaxInput-len(h.input))
	h.input = append(h.input, msg[:n]...)
	h.dropped += len(msg) - n
	h.crit.Unlock()

	if n > 0 {
		h.ready.Signal()
	}
}

// Dropped returns the number of received bytes that have been dropped
// because the input was full.
func (h *HostMIDI) Dropped() int {
	h.crit.Lock()
	defer h.crit.Unlock()
	return h.dropped
}

// Close implements the midi.Transport interface.
func (h *HostMIDI) Close() error {
	if h.stop != nil {
		h.stop()
		h.stop = nil
	}

	var err error
	if h.in != nil {
		err = h.in.Close()
		h.in = nil
	}
	if h.out != nil {
		if e := h.out.Close(); err == nil {
			err = e
		}
		h.out = nil
	}
	if h.drv != nil {
		if e := h.drv.Close(); err == nil {
			err = e
		}
		h.drv = nil
	}

	h.asm.Reset()
	h.ready.Signal()

	if err != nil {
		return fmt.Errorf("hostmidi: %w", err)
	}
	return nil
}

// Reset implements the midi.Transport interface.
func (h *HostMIDI) Reset() error {
	h.asm.Reset()
	h.crit.Lock()
	h.input = h.input[:0]
	h.crit.Unlock()
	return nil
}

func (h *HostMIDI) readiness() midi.Events {
	h.crit.Lock()
	defer h.crit.Unlock()

	// the error is reported by Poll() so the transport must appear ready
	if h.err != nil {
		return midi.In | midi.Out
	}

	ev := midi.Out
	if len(h.input) > 0 {
		ev |= midi.In
	}
	return ev
}

// Poll implements the midi.Transport interface. The output port is always
// ready.
func (h *HostMIDI) Poll(events midi.Events, timeout time.Duration) (midi.Events, error) {
	if h.out == nil {
		return 0, fmt.Errorf("hostmidi: poll: not open")
	}

	ev, err := h.ready.Wait(h.readiness, events, timeout)
	if err != nil {
		return 0, err
	}

	h.crit.Lock()
	defer h.crit.Unlock()
	if h.err != nil {
		return 0, fmt.Errorf("hostmidi: %w", h.err)
	}

	return ev, nil
}

// PollInterrupt implements the midi.Transport interface.
func (h *HostMIDI) PollInterrupt() error {
	h.ready.Interrupt()
	return nil
}

// Write implements the midi.Transport interface. Incomplete messages are held
// until the remaining bytes are written.
func (h *HostMIDI) Write(p []byte) (int, error) {
	if h.out == nil {
		return 0, fmt.Errorf("hostmidi: write: not open")
	}

	var err error
	h.asm.Write(p, func(msg []byte) {
		if err == nil {
			err = h.out.Send(msg)
		}
	})
	if err != nil {
		return 0, fmt.Errorf("hostmidi: %s: %w", h.out, err)
	}

	return len(p), nil
}

// Read implements the midi.Transport interface.
func (h *HostMIDI) Read(p []byte) (int, error) {
	h.crit.Lock()
	defer h.crit.Unlock()
	n := copy(p, h.input)
	h.input = h.input[:copy(h.input, h.input[n:])]
	return n, nil
}

// Ports returns the names of the input and output ports of the host.
func Ports() (ins []string, outs []string, err error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, nil, fmt.Errorf("hostmidi: %w", err)
	}
	defer drv.Close()

	i, err := drv.Ins()
	if err != nil {
		return nil, nil, fmt.Errorf("hostmidi: %w", err)
	}
	o, err := drv.Outs()
	if err != nil {
		return nil, nil, fmt.Errorf("hostmidi: %w", err)
	}

	return portNames(i), portNames(o), nil
}
