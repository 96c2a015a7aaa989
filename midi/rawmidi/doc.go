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

// Package rawmidi is a MIDI transport for raw MIDI character devices (for
// example /dev/snd/midiC0D0) and for serial ports. Serial ports are put into
// raw mode while the transport is open.
//
// Importing the package registers the "raw" backend with the midi package.
// The device part of the transport name is the path of the device:
//
//	raw:/dev/ttyUSB0
package rawmidi
