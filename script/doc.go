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

// Package script runs a Lua program as the guest of a Machine. The program
// talks to the devices through the same port interface a guest CPU would use.
//
// The following functions are available to the program, in addition to the
// Lua standard library:
//
//	outb(port, value)	write a byte
//	outw(port, value)	write a word
//	outd(port, value)	write a dword
//	inb(port)		read a byte
//	inw(port)		read a word
//	ind(port)		read a dword
//	sleep(ms)		pause the program for a number of milliseconds
//	irq(n)			the level of an interrupt line
//	waitirq(n, ms)		wait for an interrupt line to be raised. returns
//				false if the line was not raised in time
//	reset()			reset every device
//	devices()		a table of the names of the devices in the machine
//	log(...)		write the arguments to the log
//
// Ports and values can be written with the usual Lua hex notation.
//
//	-- enter UART mode and read the acknowledgement
//	outb(0x331, 0x3f)
//	if waitirq(9, 10) then
//		log("ack", inb(0x330))
//	end
//
// A program stops when it finishes, when it raises an error or when the
// context passed to Run() is cancelled.
package script
