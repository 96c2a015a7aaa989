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

package mpu401_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/vmusic/vmusic/hardware/ioport"
	"github.com/vmusic/vmusic/hardware/irq"
	"github.com/vmusic/vmusic/hardware/mpu401"
	"github.com/vmusic/vmusic/hardware/state"
	"github.com/vmusic/vmusic/midi"
	"github.com/vmusic/vmusic/notifications"
	"github.com/vmusic/vmusic/test"
)

type env struct {
	notifications.Recorder
}

func (*env) AllowLogging() bool {
	return true
}

// stuck is a transport that is never ready
type stuck struct {
	ready *midi.Readiness
}

func (s *stuck) Open(_ string) error { return nil }
func (s *stuck) Close() error        { return nil }
func (s *stuck) Reset() error        { return nil }

func (s *stuck) Poll(events midi.Events, timeout time.Duration) (midi.Events, error) {
	return s.ready.Wait(func() midi.Events { return 0 }, events, timeout)
}

func (s *stuck) PollInterrupt() error {
	s.ready.Interrupt()
	return nil
}

func (s *stuck) Write(_ []byte) (int, error) { return 0, nil }
func (s *stuck) Read(_ []byte) (int, error)  { return 0, nil }

// broken is a transport that fails every poll
type broken struct {
	stuck
}

func (b *broken) Poll(_ midi.Events, _ time.Duration) (midi.Events, error) {
	return 0, errors.New("broken transport")
}

func init() {
	midi.Register("stuck", func() midi.Transport { return &stuck{ready: midi.NewReadiness()} })
	midi.Register("broken", func() midi.Transport { return &broken{stuck{ready: midi.NewReadiness()}} })
}

const base = 0x330

type harness struct {
	env  *env
	mpu  *mpu401.MPU401
	bus  *ioport.Bus
	line *irq.Line
}

func newHarness(t *testing.T, transport string) *harness {
	t.Helper()

	h := &harness{env: &env{}}
	h.line = irq.NewController(nil).Line(9)

	var err error
	h.mpu, err = mpu401.NewMPU401(h.env, h.line, mpu401.Config{
		Port:      base,
		Transport: transport,
	})
	test.DemandSuccess(t, err)

	h.bus = ioport.NewBus(h.env)
	test.DemandSuccess(t, h.mpu.Map(h.bus))

	t.Cleanup(func() {
		test.ExpectSuccess(t, h.mpu.Destroy())
	})

	return h
}

func (h *harness) status() uint32 {
	return h.bus.Read(base+mpu401.PortStatus, 1)
}

func (h *harness) read() uint32 {
	return h.bus.Read(base+mpu401.PortData, 1)
}

func (h *harness) command(cmd uint8) {
	h.bus.Write(base+mpu401.PortCommand, 1, uint32(cmd))
}

func (h *harness) write(v uint8) {
	h.bus.Write(base+mpu401.PortData, 1, uint32(v))
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestConstruction(t *testing.T) {
	_, err := mpu401.NewMPU401(&env{}, nil, mpu401.Config{Port: base, Transport: "nosuchbackend:x"})
	test.ExpectFailure(t, err)

	h := newHarness(t, "loopback")
	test.ExpectFailure(t, h.mpu.UART())
	test.ExpectEquality(t, h.status(), mpu401.StatusInputNotReady)
	test.ExpectFailure(t, h.line.Level())

	// the I/O thread is not started until it is needed
	test.ExpectEquality(t, h.mpu.Worker().Generation(), 0)
}

func TestEnterUART(t *testing.T) {
	h := newHarness(t, "loopback")

	h.command(mpu401.CmdEnterUART)
	test.ExpectSuccess(t, h.mpu.UART())
	test.ExpectSuccess(t, h.line.Level())
	test.ExpectEquality(t, h.status()&mpu401.StatusInputNotReady, 0)

	// the acknowledgement is read exactly once
	test.ExpectEquality(t, h.read(), mpu401.ACK)
	test.ExpectFailure(t, h.line.Level())
	test.ExpectEquality(t, h.status(), mpu401.StatusInputNotReady)

	// reading from the empty buffer returns the same value but the line is
	// not raised again
	test.ExpectEquality(t, h.read(), mpu401.ACK)
	test.ExpectFailure(t, h.line.Level())
	test.ExpectEquality(t, h.line.Raised(), 1)

	test.ExpectEquality(t, h.env.Count(notifications.NotifyUARTEntered), 1)
}

func TestResetNormal(t *testing.T) {
	h := newHarness(t, "loopback")

	h.command(mpu401.CmdReset)
	test.ExpectFailure(t, h.mpu.UART())
	test.ExpectSuccess(t, h.line.Level())
	test.ExpectEquality(t, h.read(), mpu401.ACK)
	test.ExpectEquality(t, h.status(), mpu401.StatusInputNotReady)
	test.ExpectEquality(t, h.env.Count(notifications.NotifyUARTLeft), 0)
}

func TestResetUART(t *testing.T) {
	h := newHarness(t, "loopback")

	h.command(mpu401.CmdEnterUART)
	test.ExpectEquality(t, h.read(), mpu401.ACK)

	// no acknowledgement of a reset in UART mode
	h.command(mpu401.CmdReset)
	test.ExpectFailure(t, h.mpu.UART())
	test.ExpectFailure(t, h.line.Level())
	test.ExpectEquality(t, h.status(), mpu401.StatusInputNotReady)
	test.ExpectEquality(t, h.line.Raised(), 1)
	test.ExpectEquality(t, h.env.Count(notifications.NotifyUARTLeft), 1)

	// the I/O thread survives the reset
	test.ExpectSuccess(t, h.mpu.Worker().Running())
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t, "loopback")

	// acknowledged in NORMAL mode
	h.command(0x12)
	test.ExpectFailure(t, h.mpu.UART())
	test.ExpectEquality(t, h.read(), mpu401.ACK)

	// ignored in UART mode
	h.command(mpu401.CmdEnterUART)
	test.ExpectEquality(t, h.read(), mpu401.ACK)
	h.command(0x12)
	test.ExpectSuccess(t, h.mpu.UART())
	test.ExpectFailure(t, h.line.Level())
	test.ExpectEquality(t, h.status()&mpu401.StatusInputNotReady, mpu401.StatusInputNotReady)
}

func TestDataInNormalMode(t *testing.T) {
	h := newHarness(t, "loopback")

	h.write(0x90)
	test.ExpectEquality(t, h.status(), mpu401.StatusInputNotReady)
	test.ExpectEquality(t, h.mpu.Worker().Generation(), 0)
}

func TestLoopback(t *testing.T) {
	h := newHarness(t, "loopback")

	h.command(mpu401.CmdEnterUART)
	test.ExpectEquality(t, h.read(), mpu401.ACK)

	sent := []uint8{0x90, 0x3c, 0x40, 0x80, 0x3c, 0x00}
	for _, v := range sent {
		h.write(v)
	}

	var received []uint8
	waitFor(t, "loopback", func() bool {
		for h.status()&mpu401.StatusInputNotReady == 0 {
			received = append(received, uint8(h.read()))
		}
		return len(received) >= len(sent)
	})

	test.ExpectEquality(t, fmt.Sprintf("% x", received), fmt.Sprintf("% x", sent))
	test.ExpectFailure(t, h.line.Level())
}

func TestReraise(t *testing.T) {
	h := newHarness(t, "loopback")

	h.command(mpu401.CmdEnterUART)
	test.ExpectEquality(t, h.read(), mpu401.ACK)

	h.write(0x90)
	h.write(0x3c)
	waitFor(t, "two bytes in the receive buffer", func() bool {
		return strings.Contains(h.mpu.String(), "rx 2/") && h.line.Level()
	})
	test.ExpectSuccess(t, h.line.Level())
	raised := h.line.Raised()

	// bytes remain after the first read so the line goes high again
	test.ExpectEquality(t, h.read(), 0x90)
	test.ExpectSuccess(t, h.line.Level())
	test.ExpectEquality(t, h.line.Raised(), raised+1)

	test.ExpectEquality(t, h.read(), 0x3c)
	test.ExpectFailure(t, h.line.Level())
	test.ExpectEquality(t, h.line.Raised(), raised+1)
	test.ExpectEquality(t, h.status(), mpu401.StatusInputNotReady)
}

// the line must never be left high after the guest has emptied the receive
// buffer, however the read and the I/O thread interleave
func TestLineFollowsReceiveBuffer(t *testing.T) {
	h := newHarness(t, "loopback")

	h.command(mpu401.CmdEnterUART)
	test.ExpectEquality(t, h.read(), mpu401.ACK)

	for i := 0; i < 500; i++ {
		v := uint8(i & 0x7f)
		h.write(v)
		waitFor(t, "loopback", func() bool {
			return h.status()&mpu401.StatusInputNotReady == 0
		})
		test.DemandEquality(t, h.read(), uint32(v))
		test.DemandEquality(t, h.status(), mpu401.StatusInputNotReady)
		test.DemandFailure(t, h.line.Level())
	}
}

func TestTransmitOverflow(t *testing.T) {
	h := newHarness(t, "stuck")

	h.command(mpu401.CmdEnterUART)
	test.ExpectEquality(t, h.read(), mpu401.ACK)

	for i := 0; i < mpu401.BufferSize; i++ {
		test.ExpectEquality(t, h.status()&mpu401.StatusOutputNotReady, 0)
		h.write(uint8(i & 0x7f))
	}
	test.ExpectEquality(t, h.status(), mpu401.StatusOutputNotReady|mpu401.StatusInputNotReady)

	// dropped
	h.write(0x7f)
	test.ExpectEquality(t, h.status(), mpu401.StatusOutputNotReady|mpu401.StatusInputNotReady)

	// a reset empties the buffer
	h.command(mpu401.CmdReset)
	test.ExpectEquality(t, h.status(), mpu401.StatusInputNotReady)
}

func TestIOStopped(t *testing.T) {
	h := newHarness(t, "broken")
	w := h.mpu.Worker()

	h.command(mpu401.CmdEnterUART)
	waitFor(t, "I/O thread to stop", w.Stopped)
	test.ExpectFailure(t, w.Err())
	waitFor(t, "notification", func() bool {
		return h.env.Count(notifications.NotifyIOStopped) >= 1
	})

	// the next wake starts a new thread
	gen := w.Generation()
	h.write(0x90)
	test.ExpectEquality(t, w.Generation(), gen+1)
}

func TestInvalidAccess(t *testing.T) {
	h := newHarness(t, "loopback")

	test.ExpectEquality(t, h.bus.Read(base+mpu401.PortData, 2), 0xffff)

	h.bus.Write(base+mpu401.PortCommand, 2, mpu401.CmdEnterUART)
	test.ExpectFailure(t, h.mpu.UART())
}

func TestSnapshot(t *testing.T) {
	h := newHarness(t, "loopback")

	h.command(mpu401.CmdEnterUART)
	data := h.mpu.Snapshot()
	test.ExpectEquality(t, fmt.Sprintf("% x", data), "01 fe 01")

	g := newHarness(t, "loopback")
	test.DemandSuccess(t, g.mpu.Restore(mpu401.Version, data))
	test.ExpectSuccess(t, g.mpu.UART())
	test.ExpectSuccess(t, g.line.Level())
	test.ExpectEquality(t, g.read(), mpu401.ACK)
	test.ExpectFailure(t, g.line.Level())

	err := g.mpu.Restore(mpu401.Version+1, data)
	test.ExpectSuccess(t, errors.Is(err, state.ErrUnsupportedVersion))

	// nothing is applied from a bad snapshot
	err = g.mpu.Restore(mpu401.Version, []byte{0x00, 0x00})
	test.ExpectSuccess(t, errors.Is(err, state.ErrShortData))
	test.ExpectSuccess(t, g.mpu.UART())

	// an empty receive buffer in NORMAL mode
	test.DemandSuccess(t, g.mpu.Restore(mpu401.Version, []byte{0x00, 0x00, 0x00}))
	test.ExpectFailure(t, g.mpu.UART())
	test.ExpectEquality(t, g.status(), mpu401.StatusInputNotReady)
}
