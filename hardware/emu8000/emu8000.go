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

package emu8000

import (
	"fmt"
	"os"
	"sync"

	"github.com/vmusic/vmusic/hardware/clocks"
	"github.com/vmusic/vmusic/hardware/emu8k"
	"github.com/vmusic/vmusic/hardware/ioport"
	"github.com/vmusic/vmusic/hardware/render"
	"github.com/vmusic/vmusic/logger"
)

// Name of the device. Used as the tag for log entries and for the snapshot
// unit.
const Name = "emu8000"

// Each of the three port ranges is four ports wide.
const rangeSize = 4

// Config is the configuration of the EMU8000 device.
type Config struct {
	Port uint16

	// onboard RAM in KiB
	RAM int

	// path to the 1MiB sound ROM. an empty path means a ROM of silence
	ROM string

	Rate int

	// output device. see pcm.Select()
	Out string
}

// EMU8000 is the wavetable synthesizer of the Sound Blaster AWE32.
type EMU8000 struct {
	env render.Env
	cfg Config
	clk clocks.Clock

	// crit protects the chip and lastRender. it is shared with the render
	// thread
	crit sync.Mutex
	chip *emu8k.Chip

	// virtual clock time of the end of the most recent render
	lastRender uint64

	thread *render.Thread
}

// NewEMU8000 is the preferred method of initialisation for the EMU8000 type.
func NewEMU8000(env render.Env, clk clocks.Clock, cfg Config) (*EMU8000, error) {
	var rom []byte
	if cfg.ROM == "" {
		logger.Logf(env, Name, "no ROM file. using a ROM of silence")
	} else {
		var err error
		rom, err = os.ReadFile(cfg.ROM)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", Name, err)
		}
	}

	chip, err := emu8k.NewChip(rom, cfg.RAM, cfg.Rate)
	if err != nil {
		return nil, err
	}

	emu := &EMU8000{
		env:  env,
		cfg:  cfg,
		clk:  clk,
		chip: chip,
	}

	emu.thread, err = render.NewThread(env, render.Config{
		Name:     Name,
		Output:   cfg.Out,
		Rate:     cfg.Rate,
		Channels: emu8k.Channels,
	}, &emu.crit, emu.chip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Name, err)
	}

	// the render thread records the time of each render so that the sample
	// counter can be kept moving between renders
	emu.thread.AfterBlock(func() {
		emu.lastRender = emu.clk.Now()
	})

	emu.Reset()

	logger.Logf(env, Name, "using %d KiB of onboard RAM", chip.RAM())

	return emu, nil
}

func (emu *EMU8000) String() string {
	return fmt.Sprintf("%s at %#04x", emu.chip, emu.cfg.Port)
}

// Thread returns the render thread of the device.
func (emu *EMU8000) Thread() *render.Thread {
	return emu.thread
}

// region is one of the three port ranges of the device. the chip expects
// offsets relative to the base port so the origin of the region is added to
// the offset
type region struct {
	emu    *EMU8000
	origin uint16
}

func (r region) ReadPort(offset uint16, width int) (uint32, bool) {
	return r.emu.read(r.origin+offset, width)
}

func (r region) WritePort(offset uint16, width int, value uint32) bool {
	return r.emu.write(r.origin+offset, width, value)
}

// Map the three port ranges of the device onto the bus.
func (emu *EMU8000) Map(bus *ioport.Bus) error {
	ranges := []struct {
		origin uint16
		name   string
	}{
		{emu8k.OffsetData0, "data0"},
		{emu8k.OffsetData1, "data1/2"},
		{emu8k.OffsetData3, "data3/ptr"},
	}

	for _, r := range ranges {
		err := bus.Map(emu.cfg.Port+r.origin, rangeSize, region{emu: emu, origin: r.origin}, Name+" "+r.name)
		if err != nil {
			return err
		}
		logger.Logf(emu.env, Name, "%s on ports %#04x-%#04x", r.name,
			emu.cfg.Port+r.origin, emu.cfg.Port+r.origin+rangeSize-1)
	}

	return nil
}

func (emu *EMU8000) read(offset uint16, width int) (uint32, bool) {
	emu.crit.Lock()
	defer emu.crit.Unlock()

	elapsed := emu.clk.Now() - emu.lastRender
	emu.chip.UpdateSampleCount(clocks.Frames(emu.clk, elapsed, emu.cfg.Rate))

	switch width {
	case 1:
		v, ok := emu.chip.ReadByte(offset)
		return uint32(v), ok
	case 2:
		v, ok := emu.chip.ReadWord(offset)
		return uint32(v), ok
	case 4:
		// low word first
		lo, ok := emu.chip.ReadWord(offset)
		if !ok {
			return 0, false
		}
		hi, ok := emu.chip.ReadWord(offset + 2)
		if !ok {
			return 0, false
		}
		return uint32(hi)<<16 | uint32(lo), true
	}

	return 0, false
}

func (emu *EMU8000) write(offset uint16, width int, value uint32) bool {
	ok := emu.writeChip(offset, width, value)

	// a failure to wake the thread is logged by the worker
	_ = emu.thread.Wake()

	return ok
}

func (emu *EMU8000) writeChip(offset uint16, width int, value uint32) bool {
	emu.crit.Lock()
	defer emu.crit.Unlock()

	switch width {
	case 1:
		return emu.chip.WriteByte(offset, uint8(value))
	case 2:
		return emu.chip.WriteWord(offset, uint16(value))
	case 4:
		// two word writes. low word first
		if !emu.chip.WriteWord(offset, uint16(value)) {
			return false
		}
		return emu.chip.WriteWord(offset+2, uint16(value>>16))
	}

	return false
}

// Reset the chip. The contents of sample memory are kept.
func (emu *EMU8000) Reset() {
	emu.crit.Lock()
	defer emu.crit.Unlock()
	emu.chip.Reset()
	emu.lastRender = emu.clk.Now()
}

// Suspend stops the render thread without waiting for it to finish.
func (emu *EMU8000) Suspend() {
	_ = emu.thread.Stop(false)
}

// PowerOff stops the render thread without waiting for it to finish.
func (emu *EMU8000) PowerOff() {
	_ = emu.thread.Stop(false)
}

// Destroy stops the render thread and waits for it to finish.
func (emu *EMU8000) Destroy() error {
	return emu.thread.Stop(true)
}
