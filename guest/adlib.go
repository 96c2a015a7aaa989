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

package guest

import (
	"time"

	"github.com/vmusic/vmusic/hardware/adlib"
)

// the status bits examined by the detection sequence
const statusMask = adlib.StatusIRQ | adlib.StatusTimer1 | adlib.StatusTimer2

func adlibWrite(p Ports, base uint16, reg uint8, v uint8) {
	outb(p, base+adlib.PortAddr, reg)
	outb(p, base+adlib.PortData, v)
}

// DetectAdlib performs the classic detection sequence for an OPL chip at the
// base port. Timer 1 is started and the status register is checked before and
// after the timer has had time to expire.
//
// The OPL3 value is true if the chip reports itself as an OPL3. It is only
// meaningful if found is true.
func DetectAdlib(p Ports, base uint16) (found bool, opl3 bool) {
	// reset both timers and the IRQ flag
	adlibWrite(p, base, adlib.RegTimerControl, 0x60)
	adlibWrite(p, base, adlib.RegTimerControl, 0x80)
	before := inb(p, base+adlib.PortStatus)

	// start timer 1 with the shortest possible delay
	adlibWrite(p, base, adlib.RegTimer1, 0xff)
	adlibWrite(p, base, adlib.RegTimerControl, 0x21)
	time.Sleep(adlib.Timer1Period * time.Microsecond)
	after := inb(p, base+adlib.PortStatus)

	adlibWrite(p, base, adlib.RegTimerControl, 0x60)
	adlibWrite(p, base, adlib.RegTimerControl, 0x80)

	found = before&statusMask == 0 && after&statusMask == adlib.StatusIRQ|adlib.StatusTimer1
	opl3 = after&adlib.StatusOPL2 == 0
	return found, opl3
}
