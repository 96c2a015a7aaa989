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

// Package clocks defines the virtual clock used by the devices. The clock is
// a monotonic tick counter and a frequency. Timer expiry and the elapsed
// sample count of the wavetable device are computed from the clock.
//
// The Virtual clock is derived from the host's monotonic time. The Manual
// clock is advanced explicitly and is useful for testing.
package clocks
