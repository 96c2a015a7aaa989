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

// Package render implements the render thread of the wave devices. The render
// thread repeatedly renders a short block of audio from the chip state and
// writes it to the output. The blocking write to the output is the only
// pacing.
//
// The chip state is shared with the register decoder of the device. Both
// sides hold the device lock while touching the chip. The write to the output
// happens with the lock released.
//
// The thread exits on its own when there has been no call to Wake() for the
// idle period. The next call to Wake() starts a new thread.
package render
