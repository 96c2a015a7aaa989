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

package midi_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vmusic/vmusic/midi"
	"github.com/vmusic/vmusic/test"
)

func TestSelect(t *testing.T) {
	tr, device, err := midi.Select("loopback")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, device, "")
	_, ok := tr.(*midi.Loopback)
	test.ExpectSuccess(t, ok)

	tr, device, err = midi.Select("")
	test.DemandSuccess(t, err)
	_, ok = tr.(*midi.Loopback)
	test.ExpectSuccess(t, ok)

	midi.Register("test", func() midi.Transport { return midi.NewLoopback(8) })
	_, device, err = midi.Select("test:some device")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, device, "some device")

	_, _, err = midi.Select("nosuchbackend:device")
	test.ExpectFailure(t, err)

	_, err = midi.Open("nosuchbackend")
	test.ExpectFailure(t, err)
}

func TestEvents(t *testing.T) {
	test.ExpectEquality(t, midi.Events(0).String(), "none")
	test.ExpectEquality(t, midi.In.String(), "in")
	test.ExpectEquality(t, (midi.In | midi.Out).String(), "in|out")
}

func TestLoopback(t *testing.T) {
	lb := midi.NewLoopback(4)

	_, err := lb.Write([]byte{0x90})
	test.ExpectFailure(t, err)

	test.DemandSuccess(t, lb.Open(""))

	ev, err := lb.Poll(midi.In|midi.Out, 0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ev, midi.Out)

	n, err := lb.Write([]byte{0x90, 0x3c, 0x40, 0x80, 0x3c})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 4)

	// full
	ev, err = lb.Poll(midi.In|midi.Out, 0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ev, midi.In)

	p := make([]byte, 3)
	n, err = lb.Read(p)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 3)
	test.ExpectEquality(t, fmt.Sprintf("% x", p), "90 3c 40")

	test.ExpectSuccess(t, lb.Reset())
	n, err = lb.Read(p)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 0)

	test.ExpectSuccess(t, lb.Close())
	_, err = lb.Poll(midi.In, 0)
	test.ExpectFailure(t, err)
}

func TestPollTimeout(t *testing.T) {
	lb := midi.NewLoopback(4)
	test.DemandSuccess(t, lb.Open(""))

	start := time.Now()
	ev, err := lb.Poll(midi.In, 20*time.Millisecond)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ev, midi.Events(0))
	test.ExpectSuccess(t, time.Since(start) >= 20*time.Millisecond)
}

func TestPollWakes(t *testing.T) {
	lb := midi.NewLoopback(4)
	test.DemandSuccess(t, lb.Open(""))

	go func() {
		time.Sleep(10 * time.Millisecond)
		_, _ = lb.Inject([]byte{0xf8})
	}()

	ev, err := lb.Poll(midi.In, -1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ev, midi.In)
}

func TestPollInterrupt(t *testing.T) {
	lb := midi.NewLoopback(4)
	test.DemandSuccess(t, lb.Open(""))

	// an interrupt with no waiting poll ends the next poll
	test.ExpectSuccess(t, lb.PollInterrupt())
	_, err := lb.Poll(0, -1)
	test.ExpectSuccess(t, errors.Is(err, midi.ErrInterrupted))

	// the interrupt is consumed
	ev, err := lb.Poll(midi.In, 0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ev, midi.Events(0))

	done := make(chan error)
	go func() {
		_, err := lb.Poll(0, -1)
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	test.ExpectSuccess(t, lb.PollInterrupt())

	select {
	case err := <-done:
		test.ExpectSuccess(t, errors.Is(err, midi.ErrInterrupted))
	case <-time.After(time.Second):
		t.Fatalf("poll was not interrupted")
	}
}

func assemble(p ...byte) []string {
	var a midi.Assembler
	var msgs []string
	a.Write(p, func(msg []byte) {
		msgs = append(msgs, fmt.Sprintf("% x", msg))
	})
	return msgs
}

func TestAssembler(t *testing.T) {
	msgs := assemble(0x90, 0x3c, 0x40, 0x3e, 0x40)
	test.DemandEquality(t, len(msgs), 2)
	test.ExpectEquality(t, msgs[0], "90 3c 40")
	test.ExpectEquality(t, msgs[1], "90 3e 40")

	// program change has one data byte
	msgs = assemble(0xc0, 0x05, 0x06)
	test.DemandEquality(t, len(msgs), 2)
	test.ExpectEquality(t, msgs[1], "c0 06")

	// real time bytes do not disturb a message in progress
	msgs = assemble(0x90, 0x3c, 0xf8, 0x40)
	test.DemandEquality(t, len(msgs), 2)
	test.ExpectEquality(t, msgs[0], "f8")
	test.ExpectEquality(t, msgs[1], "90 3c 40")

	// data bytes with no status are dropped
	msgs = assemble(0x3c, 0x40)
	test.ExpectEquality(t, len(msgs), 0)

	// system exclusive cancels running status
	msgs = assemble(0x90, 0x3c, 0x40, 0xf0, 0x7e, 0x7f, 0xf7, 0x3c, 0x40)
	test.DemandEquality(t, len(msgs), 2)
	test.ExpectEquality(t, msgs[1], "f0 7e 7f f7")

	// an interrupted system exclusive message is dropped
	msgs = assemble(0xf0, 0x01, 0x02, 0x80, 0x3c, 0x00)
	test.DemandEquality(t, len(msgs), 1)
	test.ExpectEquality(t, msgs[0], "80 3c 00")

	// tune request has no data
	msgs = assemble(0xf6)
	test.DemandEquality(t, len(msgs), 1)
	test.ExpectEquality(t, msgs[0], "f6")
}
