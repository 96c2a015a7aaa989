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

package clocks

import (
	"sync/atomic"
	"time"
)

// Clock is the interface to a virtual clock.
type Clock interface {
	// the current tick count. the count never goes backwards
	Now() uint64

	// the number of ticks per second
	Frequency() uint64
}

// Nanosecond is the frequency of the Virtual clock.
const Nanosecond = uint64(time.Second)

// Virtual is a clock ticking at nanosecond resolution from the moment it was
// created.
type Virtual struct {
	origin time.Time
}

// NewVirtual is the preferred method of initialisation for the Virtual type.
func NewVirtual() *Virtual {
	return &Virtual{origin: time.Now()}
}

// Now implements the Clock interface.
func (clk *Virtual) Now() uint64 {
	return uint64(time.Since(clk.origin))
}

// Frequency implements the Clock interface.
func (clk *Virtual) Frequency() uint64 {
	return Nanosecond
}

// Manual is a clock that only changes when told to.
type Manual struct {
	ticks     atomic.Uint64
	frequency uint64
}

// NewManual is the preferred method of initialisation for the Manual type.
func NewManual(frequency uint64) *Manual {
	return &Manual{frequency: frequency}
}

// Now implements the Clock interface.
func (clk *Manual) Now() uint64 {
	return clk.ticks.Load()
}

// Frequency implements the Clock interface.
func (clk *Manual) Frequency() uint64 {
	return clk.frequency
}

// Advance the clock by the number of ticks.
func (clk *Manual) Advance(ticks uint64) {
	clk.ticks.Add(ticks)
}

// AdvanceDuration advances the clock by the number of ticks in the duration.
func (clk *Manual) AdvanceDuration(d time.Duration) {
	clk.ticks.Add(FromMicroseconds(clk, uint64(d/time.Microsecond)))
}

// FromMicroseconds returns the number of ticks of the clock in the number of
// microseconds.
func FromMicroseconds(clk Clock, us uint64) uint64 {
	return us * clk.Frequency() / 1000000
}

// Frames returns the number of whole frames, at the sample rate, in the number
// of ticks of the clock.
func Frames(clk Clock, ticks uint64, rate int) uint64 {
	f := clk.Frequency()
	if f == 0 {
		return 0
	}
	return ticks * uint64(rate) / f
}
