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

// Package prefs facilitates the storage and retrieval of preference values. A
// preference value is one of the types defined in this package (Bool, String,
// Int, Port, Float). The values are safe to read and write from more than one
// goroutine.
//
// Preference values are associated with a key on a Disk instance. The Disk
// instance loads and saves the values to a file in a simple human readable
// format:
//
//	*** do not edit this file while vmusic is running ***
//	adlib.opl3 :: true
//	adlib.port :: 0x388
//
// Values for a key can also be specified on the command line. The command
// line stack is consulted when a value is added to a Disk instance. A value
// taken from the command line is reapplied every time the Disk is loaded, so
// that it takes precedence over the value in the file.
package prefs
