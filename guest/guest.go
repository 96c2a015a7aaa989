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

// Ports is the port interface of the machine.
type Ports interface {
	Read(port uint16, width int) uint32
	Write(port uint16, width int, value uint32)
}

func outb(p Ports, port uint16, v uint8) {
	p.Write(port, 1, uint32(v))
}

func inb(p Ports, port uint16) uint8 {
	return uint8(p.Read(port, 1))
}
