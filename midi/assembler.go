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

// MaxSysEx is the longest system exclusive message the Assembler will
// collect. Longer messages are dropped.
const MaxSysEx = 4096

// Assembler collects a stream of MIDI bytes into whole messages. Running
// status is expanded so that every message begins with its status byte.
// Real time messages are passed through immediately, even in the middle of
// another message.
//
// The zero value is ready to use.
type Assembler struct {
	msg     []byte
	need    int
	running byte
	sysex   bool
}

// dataLength returns the number of data bytes that follow the status byte.
// Returns -1 for status bytes that do not begin a message.
func dataLength(status byte) int {
	switch status & 0xf0 {
	case 0x80, 0x90, 0xa0, 0xb0, 0xe0:
		return 2
	case 0xc0, 0xd0:
		return 1
	}

	switch status {
	case 0xf1, 0xf3:
		return 1
	case 0xf2:
		return 2
	case 0xf6:
		return 0
	}

	return -1
}

// Reset discards any partial message and the running status.
func (a *Assembler) Reset() {
	a.msg = a.msg[:0]
	a.need = 0
	a.running = 0
	a.sysex = false
}

// Feed one byte to the assembler. The emit function is called with every
// message that the byte completes. The message slice is only valid for the
// duration of the call.
func (a *Assembler) Feed(b byte, emit func(msg []byte)) {
	// real time
	if b >= 0xf8 {
		emit([]byte{b})
		return
	}

	if a.sysex {
		if b == 0xf7 {
			a.sysex = false
			if len(a.msg) < MaxSysEx {
				a.msg = append(a.msg, b)
				emit(a.msg)
			}
			a.msg = a.msg[:0]
			return
		}
		if b < 0x80 {
			if len(a.msg) < MaxSysEx {
				a.msg = append(a.msg, b)
			}
			return
		}

		// any other status byte ends the message without emitting it
		a.sysex = false
		a.msg = a.msg[:0]
	}

	if b == 0xf0 {
		a.sysex = true
		a.running = 0
		a.msg = append(a.msg[:0], b)
		return
	}

	if b >= 0x80 {
		n := dataLength(b)
		a.msg = a.msg[:0]
		if n < 0 {
			// undefined status and a stray end of exclusive
			a.running = 0
			a.need = 0
			return
		}

		// system common messages cancel running status
		if b < 0xf0 {
			a.running = b
		} else {
			a.running = 0
		}

		a.msg = append(a.msg, b)
		a.need = n
		if n == 0 {
			emit(a.msg)
			a.msg = a.msg[:0]
		}
		return
	}

	// data byte
	if len(a.msg) == 0 {
		if a.running == 0 {
			return
		}
		a.msg = append(a.msg, a.running)
		a.need = dataLength(a.running)
	}

	a.msg = append(a.msg, b)
	a.need--
	if a.need == 0 {
		emit(a.msg)
		a.msg = a.msg[:0]
	}
}

// Write feeds every byte of p to the assembler.
func (a *Assembler) Write(p []byte, emit func(msg []byte)) {
	for _, b := range p {
		a.Feed(b, emit)
	}
}
