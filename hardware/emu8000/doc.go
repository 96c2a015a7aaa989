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

// Package emu8000 is the EMU8000 device. It maps the three port ranges of the
// chip and runs a render thread in the same way as the adlib package.
//
// Any write to any port wakes the render thread. Reads do not, but before
// every read the sample counter of the chip is advanced by the number of
// frames that would have been rendered, on the virtual clock, since the most
// recent render.
//
// A 4 byte access is performed as two 2 byte accesses, the low word first.
package emu8000
