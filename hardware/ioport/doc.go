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

// Package ioport implements the I/O port address space of the host machine.
// Devices implement the Handler interface and are mapped onto ranges of
// ports with Bus.Map().
//
// Accesses to ports with no mapping, or accesses that a device rejects, are
// logged and otherwise ignored. Reads in that case return all-ones of the
// access width.
package ioport
