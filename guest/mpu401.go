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

	"github.com/vmusic/vmusic/hardware/mpu401"
)

// how long to wait for the MPU-401 to become ready or to respond
const mpuTimeout = 100 * time.Millisecond

func waitStatus(p Ports, base uint16, mask uint8) bool {
	deadline := time.Now().Add(mpuTimeout)
	for inb(p, base+mpu401.PortStatus)&mask != 0 {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
	return true
}

// command sends the command and waits for the acknowledgement
func command(p Ports, base uint16, cmd uint8) bool {
	if !waitStatus(p, base, mpu401.StatusOutputNotReady) {
		return false
	}
	outb(p, base+mpu401.PortCommand, cmd)
	if !waitStatus(p, base, mpu401.StatusInputNotReady) {
		return false
	}
	return inb(p, base+mpu401.PortData) == mpu401.ACK
}

// ResetMPU401 resets the MPU-401 at the base port and returns true if the
// reset is acknowledged. A reset in UART mode is not acknowledged but a second
// reset always is, so the reset is tried twice.
func ResetMPU401(p Ports, base uint16) bool {
	return command(p, base, mpu401.CmdReset) || command(p, base, mpu401.CmdReset)
}

// EnterUART puts the MPU-401 at the base port into UART mode. Returns true if
// the command is acknowledged.
func EnterUART(p Ports, base uint16) bool {
	return command(p, base, mpu401.CmdEnterUART)
}

// SendMIDI writes the bytes to the MPU-401 in UART mode. Returns the number of
// bytes written before the device stopped accepting data.
func SendMIDI(p Ports, base uint16, data []byte) int {
	for i, b := range data {
		if !waitStatus(p, base, mpu401.StatusOutputNotReady) {
			return i
		}
		outb(p, base+mpu401.PortData, b)
	}
	return len(data)
}

// ReceiveMIDI reads bytes from the MPU-401 until none are available.
func ReceiveMIDI(p Ports, base uint16) []byte {
	var data []byte
	for inb(p, base+mpu401.PortStatus)&mpu401.StatusInputNotReady == 0 {
		data = append(data, inb(p, base+mpu401.PortData))
	}
	return data
}
