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

// Package adlib is the Adlib sound card: an OPL2 or OPL3 FM synthesis chip
// behind an index/data port pair.
//
// The guest selects a register by writing to the address port (or the second
// address port for the upper register bank of the OPL3) and writes the value
// to the data port. Reading the address port returns the status register.
//
// The two timers of the chip are handled by the device itself. Writes to the
// timer registers never reach the chip and do not wake the render thread.
// Timer expiry is lazy: the status register is computed from the virtual
// clock at the moment it is read.
//
// All other register writes wake the render thread, which then runs until
// the chip has been left alone for render.IdleTimeout.
package adlib
