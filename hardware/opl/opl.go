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

package opl

import (
	"fmt"
	"math"
)

// NativeRate is the sample rate of a real OPL chip. Frequency numbers written
// to the chip are relative to this rate.
const NativeRate = 49716

// Channels is the number of interleaved output channels produced by Render().
const Channels = 2

// number of frames between the application of buffered register writes
const writeDelay = 2

// maximum number of buffered writes. the oldest write is applied immediately
// if the buffer is full
const maxPending = 1024

// output level of a single channel at full volume
const channelLevel = 4096.0

// rhythm mode percussion bits in register 0xbd
const (
	rhythmHH  = 0x01
	rhythmCY  = 0x02
	rhythmTOM = 0x04
	rhythmSD  = 0x08
	rhythmBD  = 0x10
)

type channel struct {
	fnum  uint16
	block uint8
	keyOn bool

	fb       uint8
	additive bool

	// output routing. only honoured in OPL3 mode
	left  bool
	right bool

	// index of the modulator and carrier operators
	mod int
	car int
}

type write struct {
	reg uint16
	val uint8
}

// Chip is a model of the Yamaha OPL2 (YM3812) and OPL3 (YMF262) FM synthesis
// chips. The model is a function of the register state: writes change the
// state and Render() turns the state into audio.
//
// The chip is not safe for concurrent use. The owner of the chip must provide
// a lock.
type Chip struct {
	rate float64
	opl3 bool

	regs [0x200]uint8

	ops   [36]operator
	chans [18]channel

	waveEnable bool
	newMode    bool

	// register 0xbd
	deepAM  bool
	deepVib bool
	rhythm  bool
	drums   uint8

	// LFO phases in cycles
	lfoAM  float64
	lfoVib float64

	pending     []write
	pendingWait int
}

// NewChip is the preferred method of initialisation for the Chip type. The
// rate is the sample rate of the output produced by Render(). If opl3 is false
// then the second register bank is unavailable.
func NewChip(rate int, opl3 bool) (*Chip, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("opl: invalid sample rate (%d)", rate)
	}
	chip := &Chip{
		rate: float64(rate),
		opl3: opl3,
	}
	chip.Reset()
	return chip, nil
}

func (chip *Chip) String() string {
	if chip.opl3 {
		return fmt.Sprintf("OPL3 %.0fHz", chip.rate)
	}
	return fmt.Sprintf("OPL2 %.0fHz", chip.rate)
}

// OPL3 returns true if the chip is an OPL3.
func (chip *Chip) OPL3() bool {
	return chip.opl3
}

// Reset the chip to its power-on state. Buffered writes are discarded.
func (chip *Chip) Reset() {
	chip.regs = [0x200]uint8{}
	chip.waveEnable = false
	chip.newMode = false
	chip.deepAM = false
	chip.deepVib = false
	chip.rhythm = false
	chip.drums = 0
	chip.lfoAM = 0
	chip.lfoVib = 0
	chip.pending = chip.pending[:0]
	chip.pendingWait = 0

	for i := range chip.ops {
		chip.ops[i].reset()
	}

	for i := range chip.chans {
		bank := i / 9
		ch := i % 9
		mod := bank*18 + (ch/3)*6 + ch%3
		chip.chans[i] = channel{
			mod: mod,
			car: mod + 3,
		}
	}
}

// Register returns the last value written to a register. Buffered writes that
// have not yet been applied are not reflected.
func (chip *Chip) Register(reg uint16) uint8 {
	return chip.regs[reg&0x1ff]
}

// Pending returns the number of buffered writes that have not yet been
// applied.
func (chip *Chip) Pending() int {
	return len(chip.pending)
}

// WriteRegBuffered queues a register write. Queued writes are applied during
// Render(), a few frames apart, in the order they were written.
func (chip *Chip) WriteRegBuffered(reg uint16, val uint8) {
	if len(chip.pending) >= maxPending {
		chip.WriteReg(chip.pending[0].reg, chip.pending[0].val)
		chip.pending = chip.pending[1:]
	}
	chip.pending = append(chip.pending, write{reg: reg, val: val})
}

// slot returns the operator index for an operator register offset in the
// range 0x00 to 0x15. returns false for the unused offsets
func slot(bank int, off uint8) (int, bool) {
	if off > 0x15 || off&0x07 >= 6 {
		return 0, false
	}
	return bank*18 + int(off>>3)*6 + int(off&0x07), true
}

// WriteReg applies a register write immediately.
func (chip *Chip) WriteReg(reg uint16, val uint8) {
	reg &= 0x1ff
	bank := int(reg >> 8)
	if bank == 1 && !chip.opl3 {
		return
	}

	chip.regs[reg] = val

	switch reg {
	case 0x01:
		chip.waveEnable = val&0x20 == 0x20
		return
	case 0x105:
		chip.newMode = val&0x01 == 0x01
		return
	case 0xbd:
		chip.deepAM = val&0x80 == 0x80
		chip.deepVib = val&0x40 == 0x40
		chip.rhythm = val&0x20 == 0x20
		chip.drums = val & 0x1f
		chip.updateKeys(6)
		chip.updateKeys(7)
		chip.updateKeys(8)
		return
	}

	r := uint8(reg)

	switch {
	case r >= 0x20 && r <= 0x35:
		if s, ok := slot(bank, r-0x20); ok {
			op := &chip.ops[s]
			op.am = val&0x80 == 0x80
			op.vib = val&0x40 == 0x40
			op.egt = val&0x20 == 0x20
			op.ksr = val&0x10 == 0x10
			op.mult = val & 0x0f
		}
	case r >= 0x40 && r <= 0x55:
		if s, ok := slot(bank, r-0x40); ok {
			chip.ops[s].ksl = val >> 6
			chip.ops[s].tl = val & 0x3f
		}
	case r >= 0x60 && r <= 0x75:
		if s, ok := slot(bank, r-0x60); ok {
			chip.ops[s].ar = val >> 4
			chip.ops[s].dr = val & 0x0f
		}
	case r >= 0x80 && r <= 0x95:
		if s, ok := slot(bank, r-0x80); ok {
			chip.ops[s].sl = val >> 4
			chip.ops[s].rr = val & 0x0f
		}
	case r >= 0xe0 && r <= 0xf5:
		if s, ok := slot(bank, r-0xe0); ok {
			chip.ops[s].wave = val & 0x07
		}
	case r >= 0xa0 && r <= 0xa8:
		ch := &chip.chans[bank*9+int(r-0xa0)]
		ch.fnum = ch.fnum&0x300 | uint16(val)
	case r >= 0xb0 && r <= 0xb8:
		n := bank*9 + int(r-0xb0)
		ch := &chip.chans[n]
		ch.fnum = ch.fnum&0xff | uint16(val&0x03)<<8
		ch.block = (val >> 2) & 0x07
		ch.keyOn = val&0x20 == 0x20
		chip.updateKeys(n)
	case r >= 0xc0 && r <= 0xc8:
		ch := &chip.chans[bank*9+int(r-0xc0)]
		ch.additive = val&0x01 == 0x01
		ch.fb = (val >> 1) & 0x07
		ch.left = val&0x10 == 0x10
		ch.right = val&0x20 == 0x20
	}
}

// updateKeys sets the key state of the two operators of a channel. in rhythm
// mode the percussion bits key the operators of channels 6, 7 and 8
// individually
func (chip *Chip) updateKeys(n int) {
	ch := &chip.chans[n]
	modKey := ch.keyOn
	carKey := ch.keyOn

	if chip.rhythm {
		switch n {
		case 6:
			modKey = modKey || chip.drums&rhythmBD != 0
			carKey = carKey || chip.drums&rhythmBD != 0
		case 7:
			modKey = modKey || chip.drums&rhythmHH != 0
			carKey = carKey || chip.drums&rhythmSD != 0
		case 8:
			modKey = modKey || chip.drums&rhythmTOM != 0
			carKey = carKey || chip.drums&rhythmCY != 0
		}
	}

	chip.ops[ch.mod].setKey(modKey)
	chip.ops[ch.car].setKey(carKey)
}

func (chip *Chip) waveSelect(op *operator) uint8 {
	if chip.opl3 && chip.newMode {
		return op.wave
	}
	if chip.waveEnable {
		return op.wave & 0x03
	}
	return 0
}

// LFO frequencies in Hz
const (
	tremoloFreq = 3.7
	vibratoFreq = 6.1
)

// Render fills buf with frames of interleaved stereo samples. The length of
// buf must be at least frames*Channels.
func (chip *Chip) Render(buf []int16, frames int) {
	frames = min(frames, len(buf)/Channels)
	dt := 1 / chip.rate

	for f := range frames {
		chip.applyPending()

		// tremolo is a triangle wave of 1dB or 4.8dB
		tremolo := 1 - math.Abs(2*chip.lfoAM-1)
		if chip.deepAM {
			tremolo *= 4.8
		}

		// vibrato is a sine wave of 7 cents or 14 cents
		cents := 7.0
		if chip.deepVib {
			cents = 14.0
		}
		vibrato := math.Exp2(cents * math.Sin(2*math.Pi*chip.lfoVib) / 1200)

		var left, right float64

		nchans := 9
		if chip.opl3 {
			nchans = 18
		}

		for n := range nchans {
			v := chip.channelOutput(n, dt, tremolo, vibrato)
			if v == 0 {
				continue
			}
			ch := &chip.chans[n]
			if chip.opl3 && chip.newMode {
				if ch.left {
					left += v
				}
				if ch.right {
					right += v
				}
			} else {
				left += v
				right += v
			}
		}

		buf[f*2] = clamp(left * channelLevel)
		buf[f*2+1] = clamp(right * channelLevel)

		chip.lfoAM += tremoloFreq * dt
		chip.lfoAM -= math.Floor(chip.lfoAM)
		chip.lfoVib += vibratoFreq * dt
		chip.lfoVib -= math.Floor(chip.lfoVib)
	}
}

func (chip *Chip) applyPending() {
	if len(chip.pending) == 0 {
		return
	}
	if chip.pendingWait > 0 {
		chip.pendingWait--
		return
	}
	w := chip.pending[0]
	chip.pending = chip.pending[1:]
	chip.WriteReg(w.reg, w.val)
	chip.pendingWait = writeDelay - 1
}

// channelOutput advances the channel by one sample and returns its output
func (chip *Chip) channelOutput(n int, dt float64, tremolo float64, vibrato float64) float64 {
	ch := &chip.chans[n]
	mod := &chip.ops[ch.mod]
	car := &chip.ops[ch.car]

	mod.envelope(dt, ch.block, ch.fnum)
	car.envelope(dt, ch.block, ch.fnum)

	if mod.stage == stageOff && car.stage == stageOff {
		return 0
	}

	freq := float64(ch.fnum) * NativeRate / math.Exp2(float64(20-int(ch.block)))

	var fb float64
	if ch.fb > 0 {
		fb = (mod.out + mod.prevOut) * 4 * math.Exp2(float64(ch.fb)-9)
	}
	m := mod.output(fb, chip.waveSelect(mod), ch.block, tremolo)
	mod.prevOut = mod.out
	mod.out = m

	var v float64
	if ch.additive {
		v = m + car.output(0, chip.waveSelect(car), ch.block, tremolo)
	} else {
		// a modulator at full volume moves the carrier by four cycles
		v = car.output(m*4, chip.waveSelect(car), ch.block, tremolo)
	}

	step := func(op *operator) {
		if op.vib {
			op.step(freq*vibrato, chip.rate)
		} else {
			op.step(freq, chip.rate)
		}
	}
	step(mod)
	step(car)

	return v
}

func clamp(v float64) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
