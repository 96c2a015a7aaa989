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

// Package logger is the central log for the emulation. Entries are tagged,
// usually with the name of the device or package making the entry, and
// consecutive identical entries are folded into a single entry with a repeat
// count.
//
// Every request to log requires a Permission. The environment of a machine
// implements the Permission interface, which means that a device can log
// with:
//
//	logger.Logf(env, "adlib", "invalid port %#x", offset)
//
// Callers without an environment can use the Allow value.
//
// Log entries are never printed unless an echo writer has been set with
// SetEcho(). The Colorizer type can be used to wrap an io.Writer when the
// output is a terminal.
package logger
