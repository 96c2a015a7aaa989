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

package hardware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vmusic/vmusic/environment"
	"github.com/vmusic/vmusic/hardware/adlib"
	"github.com/vmusic/vmusic/hardware/clocks"
	"github.com/vmusic/vmusic/hardware/emu8000"
	"github.com/vmusic/vmusic/hardware/ioport"
	"github.com/vmusic/vmusic/hardware/irq"
	"github.com/vmusic/vmusic/hardware/mpu401"
	"github.com/vmusic/vmusic/logger"
)

// Device is the interface implemented by every device in the Machine.
type Device interface {
	fmt.Stringer

	Map(bus *ioport.Bus) error

	Reset()
	Suspend()
	PowerOff()
	Destroy() error

	Snapshot() []byte
	Restore(version uint32, data []byte) error
}

// unit is a device with the name and version used for its snapshot data
type unit struct {
	name    string
	version uint32
	dev     Device
}

// Machine is the main container for the emulated devices.
type Machine struct {
	env *environment.Environment

	Clock *clocks.Virtual
	Bus   *ioport.Bus
	IRQ   *irq.Controller

	// the devices. nil if a device is not enabled
	Adlib   *adlib.Adlib
	EMU8000 *emu8000.EMU8000
	MPU401  *mpu401.MPU401

	units []unit
}

// NewMachine creates the devices enabled in the environment's preferences and
// maps them onto a new bus.
func NewMachine(env *environment.Environment) (*Machine, error) {
	m := &Machine{
		env:   env,
		Clock: clocks.NewVirtual(),
		Bus:   ioport.NewBus(env),
		IRQ: irq.NewController(func(number int, level bool) {
			logger.Logf(env, "irq", "line %d is %v", number, level)
		}),
	}

	if err := m.build(); err != nil {
		if derr := m.Destroy(); derr != nil {
			err = errors.Join(err, derr)
		}
		return nil, err
	}

	return m, nil
}

func (m *Machine) add(name string, version uint32, dev Device) error {
	m.units = append(m.units, unit{name: name, version: version, dev: dev})
	if err := dev.Map(m.Bus); err != nil {
		return err
	}
	logger.Log(m.env, "machine", dev)
	return nil
}

func (m *Machine) build() error {
	p := m.env.Prefs

	if p.Adlib.Enabled.Get().(bool) {
		adl, err := adlib.NewAdlib(m.env, m.Clock, adlib.Config{
			Port:   p.Adlib.Port.Get().(uint16),
			Mirror: p.Adlib.Mirror.Get().(uint16),
			OPL3:   p.Adlib.OPL3.Get().(bool),
			Rate:   p.Adlib.Rate.Get().(int),
			Out:    p.Adlib.Out.Get().(string),
		})
		if err != nil {
			return err
		}
		m.Adlib = adl
		if err := m.add(adlib.Name, adlib.Version, adl); err != nil {
			return err
		}
	}

	if p.EMU8000.Enabled.Get().(bool) {
		emu, err := emu8000.NewEMU8000(m.env, m.Clock, emu8000.Config{
			Port: p.EMU8000.Port.Get().(uint16),
			RAM:  p.EMU8000.RAM.Get().(int),
			ROM:  p.EMU8000.ROM.Get().(string),
			Rate: p.EMU8000.Rate.Get().(int),
			Out:  p.EMU8000.Out.Get().(string),
		})
		if err != nil {
			return err
		}
		m.EMU8000 = emu
		if err := m.add(emu8000.Name, emu8000.Version, emu); err != nil {
			return err
		}
	}

	if p.MPU401.Enabled.Get().(bool) {
		mpu, err := mpu401.NewMPU401(m.env, m.IRQ.Line(p.MPU401.IRQ.Get().(int)), mpu401.Config{
			Port:      p.MPU401.Port.Get().(uint16),
			Transport: p.MPU401.Transport.Get().(string),
		})
		if err != nil {
			return err
		}
		m.MPU401 = mpu
		if err := m.add(mpu401.Name, mpu401.Version, mpu); err != nil {
			return err
		}
	}

	return nil
}

func (m *Machine) String() string {
	if len(m.units) == 0 {
		return "no devices"
	}
	s := make([]string, 0, len(m.units))
	for _, u := range m.units {
		s = append(s, u.dev.String())
	}
	return strings.Join(s, "\n")
}

// Devices returns the names of the devices in the order they were created.
func (m *Machine) Devices() []string {
	n := make([]string, 0, len(m.units))
	for _, u := range m.units {
		n = append(n, u.name)
	}
	return n
}

// Reset every device.
func (m *Machine) Reset() {
	for _, u := range m.units {
		u.dev.Reset()
	}
}

// Suspend every device.
func (m *Machine) Suspend() {
	for _, u := range m.units {
		u.dev.Suspend()
	}
}

// PowerOff every device.
func (m *Machine) PowerOff() {
	for _, u := range m.units {
		u.dev.PowerOff()
	}
}

// Destroy every device, waiting for background threads to finish. All
// devices are destroyed even if one of them returns an error.
func (m *Machine) Destroy() error {
	var err error
	for _, u := range m.units {
		if e := u.dev.Destroy(); e != nil {
			logger.Logf(m.env, "machine", "%s: %v", u.name, e)
			err = errors.Join(err, e)
		}
	}
	return err
}
