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

package hostmidi_test

import (
	"testing"

	"github.com/vmusic/vmusic/midi"
	"github.com/vmusic/vmusic/midi/hostmidi"
	"github.com/vmusic/vmusic/test"
)

func TestRegistered(t *testing.T) {
	tr, device, err := midi.Select("host:FLUID Synth|0")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, device, "FLUID Synth|0")
	_, ok := tr.(*hostmidi.HostMIDI)
	test.ExpectSuccess(t, ok)
}

func TestParseDevice(t *testing.T) {
	out, in := hostmidi.ParseDevice("FLUID Synth | 1")
	test.ExpectEquality(t, out, "FLUID Synth")
	test.ExpectEquality(t, in, "1")

	out, in = hostmidi.ParseDevice("")
	test.ExpectEquality(t, out, "")
	test.ExpectEquality(t, in, "")
}

func TestMatch(t *testing.T) {
	names := []string{"Midi Through:0", "FLUID Synth:128", "USB Keyboard"}

	i, ok := hostmidi.Match(names, "")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, i, 0)

	i, ok = hostmidi.Match(names, "USB Keyboard")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, i, 2)

	i, ok = hostmidi.Match(names, "1")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, i, 1)

	i, ok = hostmidi.Match(names, "FLUID")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, i, 1)

	_, ok = hostmidi.Match(names, "3")
	test.ExpectFailure(t, ok)

	_, ok = hostmidi.Match(nil, "")
	test.ExpectFailure(t, ok)
}

func TestNotOpen(t *testing.T) {
	h := hostmidi.NewHostMIDI()
	_, err := h.Write([]byte{0x90, 0x3c, 0x40})
	test.ExpectFailure(t, err)
	_, err = h.Poll(midi.Out, 0)
	test.ExpectFailure(t, err)

	n, err := h.Read(make([]byte, 4))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 0)
}
