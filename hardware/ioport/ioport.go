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

package ioport

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vmusic/vmusic/logger"
)

// Sentinel is the value returned by a read of a single byte that could not be
// satisfied. Wider reads return all-ones of the requested width.
const Sentinel = 0xff

// Handler is implemented by the devices mapped onto the bus. The offset is
// relative to the origin of the mapping.
//
// A false result indicates that the access was invalid. For example, an
// unsupported access width or an offset with no register. This is a guest
// programming error and the bus will log it.
type Handler interface {
	ReadPort(offset uint16, width int) (uint32, bool)
	WritePort(offset uint16, width int, value uint32) bool
}

// Mapping is a range of ports that are handled by a single Handler.
type Mapping struct {
	Name   string
	Origin uint16
	Memtop uint16

	handler Handler
}

func (m Mapping) String() string {
	return fmt.Sprintf("%#04x-%#04x %s", m.Origin, m.Memtop, m.Name)
}

func (m Mapping) contains(port uint16) bool {
	return port >= m.Origin && port <= m.Memtop
}

// Bus is the I/O port address space. Devices are mapped onto the bus and the
// bus dispatches port reads and writes to them.
type Bus struct {
	env logger.Permission

	crit     sync.RWMutex
	mappings []Mapping
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus(env logger.Permission) *Bus {
	return &Bus{env: env}
}

// Map a Handler to size ports beginning at base. Mappings cannot overlap. A
// mirror is a second mapping of the same Handler.
func (bus *Bus) Map(base uint16, size int, h Handler, name string) error {
	if size <= 0 || int(base)+size-1 > 0xffff {
		return fmt.Errorf("ioport: %s: invalid mapping (%#04x, %d ports)", name, base, size)
	}

	m := Mapping{
		Name:    name,
		Origin:  base,
		Memtop:  base + uint16(size-1),
		handler: h,
	}

	bus.crit.Lock()
	defer bus.crit.Unlock()

	for _, o := range bus.mappings {
		if m.Origin <= o.Memtop && o.Origin <= m.Memtop {
			return fmt.Errorf("ioport: %s: overlaps with %s", m, o)
		}
	}

	bus.mappings = append(bus.mappings, m)
	sort.Slice(bus.mappings, func(i, j int) bool {
		return bus.mappings[i].Origin < bus.mappings[j].Origin
	})

	return nil
}

// Mappings returns a copy of the current list of mappings in port order.
func (bus *Bus) Mappings() []Mapping {
	bus.crit.RLock()
	defer bus.crit.RUnlock()
	m := make([]Mapping, len(bus.mappings))
	copy(m, bus.mappings)
	return m
}

func (bus *Bus) lookup(port uint16) (Mapping, bool) {
	bus.crit.RLock()
	defer bus.crit.RUnlock()
	for _, m := range bus.mappings {
		if m.contains(port) {
			return m, true
		}
	}
	return Mapping{}, false
}

func validWidth(width int) bool {
	return width == 1 || width == 2 || width == 4
}

func allOnes(width int) uint32 {
	switch width {
	case 2:
		return 0xffff
	case 4:
		return 0xffffffff
	}
	return Sentinel
}

// Read from port. The width is the number of bytes being read (1, 2 or 4).
func (bus *Bus) Read(port uint16, width int) uint32 {
	if !validWidth(width) {
		logger.Logf(bus.env, "ioport", "read from %#04x with invalid width (%d)", port, width)
		return Sentinel
	}

	m, ok := bus.lookup(port)
	if !ok {
		logger.Logf(bus.env, "ioport", "read from unmapped port %#04x", port)
		return allOnes(width)
	}

	v, ok := m.handler.ReadPort(port-m.Origin, width)
	if !ok {
		logger.Logf(bus.env, "ioport", "%s: invalid read from %#04x (width %d)", m.Name, port, width)
		return allOnes(width)
	}

	return v
}

// Write value to port. The width is the number of bytes being written (1, 2 or
// 4). Bits of value beyond the width are ignored.
func (bus *Bus) Write(port uint16, width int, value uint32) {
	if !validWidth(width) {
		logger.Logf(bus.env, "ioport", "write to %#04x with invalid width (%d)", port, width)
		return
	}

	m, ok := bus.lookup(port)
	if !ok {
		logger.Logf(bus.env, "ioport", "write to unmapped port %#04x", port)
		return
	}

	if width < 4 {
		value &= (1 << (width * 8)) - 1
	}

	if !m.handler.WritePort(port-m.Origin, width, value) {
		logger.Logf(bus.env, "ioport", "%s: invalid write to %#04x (width %d, value %#x)", m.Name, port, width, value)
	}
}
