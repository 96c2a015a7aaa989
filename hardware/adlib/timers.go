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

package adlib

import (
	"fmt"

	"github.com/vmusic/vmusic/hardware/clocks"
)

// Timer registers. These registers are handled by the device and never reach
// the chip.
const (
	RegTimer1       = 0x02
	RegTimer2       = 0x03
	RegTimerControl = 0x04
)

// Timer periods in microseconds.
const (
	Timer1Period = 80
	Timer2Period = 320
)

// delays shorter than this (in microseconds) expire immediately. a short delay
// is likely to be a program checking for the presence of the chip
const shortDelay = 100

// Bits in the status register.
const (
	StatusIRQ    = 0x80
	StatusTimer1 = 0x40
	StatusTimer2 = 0x20

	// an OPL2 always has these bits set. some programs use the value to
	// distinguish an OPL2 from an OPL3
	StatusOPL2 = 0x06
)

// Bits in the timer control register.
const (
	controlReset  = 0x80
	controlMask1  = 0x40
	controlMask2  = 0x20
	controlStart2 = 0x02
	controlStart1 = 0x01
)

// Expiry returns the time on the clock at which a timer loaded with value
// will overflow. The timer counts up from the value to 256 with the period
// given in microseconds.
func Expiry(clk clocks.Clock, value uint8, period uint64) uint64 {
	delay := (0x100 - uint64(value)) * period
	if delay < shortDelay {
		delay = 0
	}
	return clk.Now() + clocks.FromMicroseconds(clk, delay)
}

type timer struct {
	value   uint8
	expiry  uint64
	enabled bool
	period  uint64
}

func (t timer) String() string {
	if !t.enabled {
		return fmt.Sprintf("%#02x off", t.value)
	}
	return fmt.Sprintf("%#02x expires at %d", t.value, t.expiry)
}

// timers is the pair of timers in the OPL chip. The timers do not count down.
// Instead, the expiry time of a timer is recorded when it is started and the
// status register is a function of the current time.
type timers struct {
	clk clocks.Clock
	t1  timer
	t2  timer
}

func newTimers(clk clocks.Clock) timers {
	tm := timers{clk: clk}
	tm.reset()
	return tm
}

func (tm *timers) reset() {
	tm.t1 = timer{period: Timer1Period}
	tm.t2 = timer{period: Timer2Period}
}

func (tm *timers) String() string {
	return fmt.Sprintf("t1: %s  t2: %s", tm.t1, tm.t2)
}

func (tm *timers) arm(t *timer) {
	t.expiry = Expiry(tm.clk, t.value, t.period)
}

// write to one of the three timer registers. returns false if the register is
// not a timer register
func (tm *timers) write(reg uint16, value uint8) bool {
	switch reg {
	case RegTimer1:
		tm.t1.value = value
		if tm.t1.enabled {
			tm.arm(&tm.t1)
		}

	case RegTimer2:
		tm.t2.value = value
		if tm.t2.enabled {
			tm.arm(&tm.t2)
		}

	case RegTimerControl:
		if value&controlReset == controlReset {
			tm.t1.enabled = false
			tm.t2.enabled = false
			break // switch
		}

		if value&controlMask1 == 0 {
			tm.t1.enabled = value&controlStart1 == controlStart1
			if tm.t1.enabled {
				tm.arm(&tm.t1)
			}
		}

		if value&controlMask2 == 0 {
			tm.t2.enabled = value&controlStart2 == controlStart2
			if tm.t2.enabled {
				tm.arm(&tm.t2)
			}
		}

	default:
		return false
	}

	return true
}

// status returns the timer bits of the status register
func (tm *timers) status() uint8 {
	now := tm.clk.Now()

	var status uint8
	if tm.t1.enabled && now > tm.t1.expiry {
		status |= StatusIRQ | StatusTimer1
	}
	if tm.t2.enabled && now > tm.t2.expiry {
		status |= StatusIRQ | StatusTimer2
	}
	return status
}
