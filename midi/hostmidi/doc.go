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

// Package hostmidi is a MIDI transport on the MIDI ports of the host, using
// gomidi with the rtmidi driver.
//
// Importing the package registers the "host" backend with the midi package.
// The device part of the transport name selects the output port and,
// optionally, an input port. Ports are named or numbered:
//
//	host:FLUID Synth
//	host:1|0
//
// An empty device part selects the first output port and no input.
//
// Host ports accept whole messages only. Bytes written to the transport are
// collected into messages with midi.Assembler before they are sent.
package hostmidi
