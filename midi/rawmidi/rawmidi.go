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

//go:build linux

package rawmidi

import (
	"errors"
	"fmt"
	"time"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/vmusic/vmusic/midi"
)

// DefaultDevice is opened when the device part of the transport name is
// empty.
const DefaultDevice = "/dev/snd/midiC0D0"

func init() {
	midi.Register("raw", func() midi.Transport { return NewRawMIDI() })
}

// RawMIDI is a transport on a character device. The poll interrupt is a pipe
// that is polled alongside the device.
type RawMIDI struct {
	device string
	fd     int

	// terminal settings to restore on close. only valid if tty is true
	tty   bool
	saved unix.Termios

	// self-pipe. the read end is polled with the device
	pipe [2]int
}

// NewRawMIDI is the preferred method of initialisation for the RawMIDI type.
func NewRawMIDI() *RawMIDI {
	return &RawMIDI{
		fd:   -1,
		pipe: [2]int{-1, -1},
	}
}

func (raw *RawMIDI) String() string {
	if raw.tty {
		return fmt.Sprintf("raw %s (tty)", raw.device)
	}
	return fmt.Sprintf("raw %s", raw.device)
}

// IsTTY returns true if the device is a terminal.
func (raw *RawMIDI) IsTTY() bool {
	return raw.tty
}

// Open implements the midi.Transport interface.
func (raw *RawMIDI) Open(device string) error {
	if raw.fd != -1 {
		return fmt.Errorf("rawmidi: %s already open", raw.device)
	}
	if device == "" {
		device = DefaultDevice
	}

	fd, err := unix.Open(device, unix.O_RDWR|unix.O_NONBLOCK|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("rawmidi: %s: %w", device, err)
	}

	var p [2]int
	if err := unix.Pipe2(p[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		_ = unix.Close(fd)
		return fmt.Errorf("rawmidi: %s: %w", device, err)
	}

	raw.device = device
	raw.fd = fd
	raw.pipe = p

	// anything that is not a terminal is used as it is
	raw.tty = termios.Tcgetattr(uintptr(fd), &raw.saved) == nil
	if raw.tty {
		attr := raw.saved
		termios.Cfmakeraw(&attr)
		if err := termios.Tcsetattr(uintptr(fd), termios.TCSANOW, &attr); err != nil {
			_ = raw.Close()
			return fmt.Errorf("rawmidi: %s: %w", device, err)
		}
	}

	return nil
}

// Close implements the midi.Transport interface.
func (raw *RawMIDI) Close() error {
	var err error

	if raw.fd != -1 {
		if raw.tty {
			err = termios.Tcsetattr(uintptr(raw.fd), termios.TCSANOW, &raw.saved)
			raw.tty = false
		}
		err = errors.Join(err, unix.Close(raw.fd))
		raw.fd = -1
	}

	for i, p := range raw.pipe {
		if p != -1 {
			err = errors.Join(err, unix.Close(p))
			raw.pipe[i] = -1
		}
	}

	if err != nil {
		return fmt.Errorf("rawmidi: %s: %w", raw.device, err)
	}
	return nil
}

// Reset implements the midi.Transport interface. Output that has already
// been passed to a device that is not a terminal cannot be dropped.
func (raw *RawMIDI) Reset() error {
	if raw.fd == -1 {
		return fmt.Errorf("rawmidi: reset: not open")
	}

	if raw.tty {
		if err := termios.Tcflush(uintptr(raw.fd), termios.TCIFLUSH); err != nil {
			return fmt.Errorf("rawmidi: %s: %w", raw.device, err)
		}
		if err := termios.Tcflush(uintptr(raw.fd), termios.TCOFLUSH); err != nil {
			return fmt.Errorf("rawmidi: %s: %w", raw.device, err)
		}
		return nil
	}

	var buf [256]byte
	for {
		n, err := raw.Read(buf[:])
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
	}
}

// Queued returns the number of bytes waiting to be read from a terminal.
func (raw *RawMIDI) Queued() (int, error) {
	if !raw.tty {
		return 0, fmt.Errorf("rawmidi: %s: not a terminal", raw.device)
	}
	n, err := unix.IoctlGetInt(raw.fd, unix.TIOCINQ)
	if err != nil {
		return 0, fmt.Errorf("rawmidi: %s: %w", raw.device, err)
	}
	return n, nil
}

// Poll implements the midi.Transport interface.
func (raw *RawMIDI) Poll(events midi.Events, timeout time.Duration) (midi.Events, error) {
	if raw.fd == -1 {
		return 0, fmt.Errorf("rawmidi: poll: not open")
	}

	var interest int16
	if events&midi.In == midi.In {
		interest |= unix.POLLIN
	}
	if events&midi.Out == midi.Out {
		interest |= unix.POLLOUT
	}

	fds := []unix.PollFd{
		{Fd: int32(raw.fd), Events: interest},
		{Fd: int32(raw.pipe[0]), Events: unix.POLLIN},
	}

	ms := -1
	if timeout >= 0 {
		ms = int((timeout + time.Millisecond - 1) / time.Millisecond)
	}

	_, err := unix.Poll(fds, ms)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, nil
		}
		return 0, fmt.Errorf("rawmidi: %s: %w", raw.device, err)
	}

	if fds[1].Revents&unix.POLLIN == unix.POLLIN {
		raw.drainPipe()
		return 0, midi.ErrInterrupted
	}

	rev := fds[0].Revents
	if rev&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
		return 0, fmt.Errorf("rawmidi: %s: device error (revents %#x)", raw.device, rev)
	}

	var ev midi.Events
	if rev&unix.POLLIN == unix.POLLIN {
		ev |= midi.In
	}
	if rev&unix.POLLOUT == unix.POLLOUT {
		ev |= midi.Out
	}
	return ev & events, nil
}

func (raw *RawMIDI) drainPipe() {
	var buf [16]byte
	for {
		n, err := unix.Read(raw.pipe[0], buf[:])
		if n <= 0 || err != nil {
			return
		}
	}
}

// PollInterrupt implements the midi.Transport interface.
func (raw *RawMIDI) PollInterrupt() error {
	if raw.pipe[1] == -1 {
		return fmt.Errorf("rawmidi: interrupt: not open")
	}

	// a full pipe already has an interrupt pending
	_, err := unix.Write(raw.pipe[1], []byte{0})
	if err != nil && !errors.Is(err, unix.EAGAIN) {
		return fmt.Errorf("rawmidi: %s: %w", raw.device, err)
	}
	return nil
}

// Write implements the midi.Transport interface.
func (raw *RawMIDI) Write(p []byte) (int, error) {
	if raw.fd == -1 {
		return 0, fmt.Errorf("rawmidi: write: not open")
	}
	n, err := unix.Write(raw.fd, p)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) {
			return 0, nil
		}
		return 0, fmt.Errorf("rawmidi: %s: %w", raw.device, err)
	}
	return n, nil
}

// Read implements the midi.Transport interface.
func (raw *RawMIDI) Read(p []byte) (int, error) {
	if raw.fd == -1 {
		return 0, fmt.Errorf("rawmidi: read: not open")
	}
	n, err := unix.Read(raw.fd, p)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) {
			return 0, nil
		}
		return 0, fmt.Errorf("rawmidi: %s: %w", raw.device, err)
	}
	return max(n, 0), nil
}
