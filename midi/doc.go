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

// Package midi defines the interface to MIDI transports and selects the
// transport backend from a device name.
//
// The backends are:
//
//	loopback	bytes written to the transport are read back from it
//	raw		a raw MIDI character device or serial port (package rawmidi)
//	host		a MIDI port of the host (package hostmidi)
//
// Backends other than loopback register themselves when their package is
// imported.
//
// Reads and writes never block. The I/O thread of a device waits for the
// transport to become ready with Poll(). A blocked Poll() can be woken from
// another goroutine with PollInterrupt().
package midi
