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

// Package mpu401 implements the MPU-401 MIDI interface in UART mode.
//
// The device has two ports. The data port at the base port and the
// status/command port at base+1. After a reset the device is in NORMAL mode,
// in which the only useful command is ENTER_UART. In UART mode bytes written
// to the data port are sent to the MIDI transport and bytes received from the
// transport are read from the data port.
//
// Two buffers sit between the guest and the transport. The I/O thread moves
// bytes between the buffers and the transport, and raises the interrupt line
// when received bytes are waiting. The interrupt line is high exactly while
// the receive buffer is not empty.
package mpu401
