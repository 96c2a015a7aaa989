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
	"sync"

	"github.com/vmusic/vmusic/hardware/clocks"
	"github.com/vmusic/vmusic/hardware/ioport"
	"github.com/vmusic/vmusic/hardware/opl"
	"github.com/vmusic/vmusic/hardware/render"
	"github.com/vmusic/vmusic/logger"
)

// Name of the device. Used as the tag for log entries and for the snapshot
// unit.
const Name = "adlib"

// Port offsets from the base port.
const (
	PortAddr   = 0
	PortStatus = 0
	PortData   = 1
	PortAddr2  = 2
	PortData2  = 3
)

// Number of ports used by each variant of the chip.
const (
	OPL2Ports = 2
	OPL3Ports = 4
)

// Config is the configuration of the Adlib device.
type Config struct {
	Port uint16

	// a second base port at which the device also responds. zero for no
	// mirror
	Mirror uint16

	OPL3 bool
	Rate int

	// output device. see pcm.Select()
	Out string
}

// Adlib is an OPL2 or OPL3 sound card. Register writes are passed to the chip
// and a render thread turns the state of the chip into audio.
type Adlib struct {
	env render.Env
	cfg Config

	// crit protects the chip. it is shared with the render thread
	crit sync.Mutex
	chip *opl.Chip

	thread *render.Thread

	// the following fields are only accessed through the port interface and
	// are not protected by crit

	// the selected register. the secondary bank is selected by setting bit 8
	reg uint16

	timers timers
}

// NewAdlib is the preferred method of initialisation for the Adlib type.
func NewAdlib(env render.Env, clk clocks.Clock, cfg Config) (*Adlib, error) {
	chip, err := opl.NewChip(cfg.Rate, cfg.OPL3)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Name, err)
	}

	adl := &Adlib{
		env:    env,
		cfg:    cfg,
		chip:   chip,
		timers: newTimers(clk),
	}

	adl.thread, err = render.NewThread(env, render.Config{
		Name:     Name,
		Output:   cfg.Out,
		Rate:     cfg.Rate,
		Channels: opl.Channels,
	}, &adl.crit, adl)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Name, err)
	}

	return adl, nil
}

func (adl *Adlib) String() string {
	if adl.cfg.Mirror != 0 {
		return fmt.Sprintf("%s at %#04x (mirror %#04x)", adl.chip, adl.cfg.Port, adl.cfg.Mirror)
	}
	return fmt.Sprintf("%s at %#04x", adl.chip, adl.cfg.Port)
}

// NumPorts returns the number of ports used by the device.
func (adl *Adlib) NumPorts() int {
	if adl.cfg.OPL3 {
		return OPL3Ports
	}
	return OPL2Ports
}

// Map the device onto the bus, including the mirror if one is configured.
func (adl *Adlib) Map(bus *ioport.Bus) error {
	err := bus.Map(adl.cfg.Port, adl.NumPorts(), adl, Name)
	if err != nil {
		return err
	}
	logger.Logf(adl.env, Name, "configured on ports %#04x-%#04x", adl.cfg.Port, int(adl.cfg.Port)+adl.NumPorts()-1)

	if adl.cfg.Mirror != 0 {
		err = bus.Map(adl.cfg.Mirror, adl.NumPorts(), adl, Name+" mirror")
		if err != nil {
			return err
		}
		logger.Logf(adl.env, Name, "mirrored on ports %#04x-%#04x", adl.cfg.Mirror, int(adl.cfg.Mirror)+adl.NumPorts()-1)
	}

	return nil
}

// Render implements the render.Chip interface.
func (adl *Adlib) Render(buf []int16, frames int) {
	adl.chip.Render(buf, frames)
}

// Thread returns the render thread of the device.
func (adl *Adlib) Thread() *render.Thread {
	return adl.thread
}

// Status returns the value of the status register.
func (adl *Adlib) Status() uint8 {
	status := adl.timers.status()
	if !adl.cfg.OPL3 {
		status |= StatusOPL2
	}
	return status
}

// ReadPort implements the ioport.Handler interface.
func (adl *Adlib) ReadPort(offset uint16, width int) (uint32, bool) {
	if width != 1 {
		return 0, false
	}

	// the other ports are write only
	if offset != PortStatus {
		return 0, false
	}

	return uint32(adl.Status()), true
}

// WritePort implements the ioport.Handler interface.
func (adl *Adlib) WritePort(offset uint16, width int, value uint32) bool {
	if width != 1 {
		return false
	}

	val := uint8(value)

	switch offset {
	case PortAddr:
		adl.reg = uint16(val)
	case PortAddr2:
		adl.reg = uint16(val) | 0x100
	case PortData, PortData2:
		adl.writeRegister(adl.reg, val)
	default:
		return false
	}

	return true
}

func (adl *Adlib) writeRegister(reg uint16, val uint8) {
	if adl.timers.write(reg, val) {
		return
	}

	// a failure to wake the thread is logged by the worker. the register
	// write still goes ahead
	_ = adl.thread.Wake()

	adl.crit.Lock()
	defer adl.crit.Unlock()
	adl.chip.WriteRegBuffered(reg, val)
}

// Reset the chip, the register selector and the timers.
func (adl *Adlib) Reset() {
	adl.crit.Lock()
	adl.chip.Reset()
	adl.crit.Unlock()

	adl.reg = 0
	adl.timers.reset()
}

// Suspend stops the render thread without waiting for it to finish.
func (adl *Adlib) Suspend() {
	_ = adl.thread.Stop(false)
}

// PowerOff stops the render thread without waiting for it to finish.
func (adl *Adlib) PowerOff() {
	_ = adl.thread.Stop(false)
}

// Destroy stops the render thread and waits for it to finish.
func (adl *Adlib) Destroy() error {
	return adl.thread.Stop(true)
}
