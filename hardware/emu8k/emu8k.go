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

package emu8k

import (
	"fmt"
	"math"
)

// NativeRate is the sample rate of the chip. The sample counter register
// counts at this rate and a pitch of PitchUnity plays a sample at this rate.
const NativeRate = 44100

// PitchUnity is the pitch value that plays a sample at its recorded rate. Each
// 0x1000 above or below is an octave.
const PitchUnity = 0xe000

// Pitch returns the pitch value that plays a sample recorded at the rate at
// its original speed.
func Pitch(rate int) uint16 {
	if rate <= 0 {
		return 0
	}
	p := PitchUnity + math.Log2(float64(rate)/NativeRate)*0x1000
	return uint16(math.Round(max(0, min(0xffff, p))))
}

// Channels is the number of interleaved output channels produced by Render().
const Channels = 2

// output headroom. every channel at full volume on the same side would
// otherwise clip immediately
const headroom = 0.25

// Chip is a model of the EMU8000 wavetable synthesizer found on the Sound
// Blaster AWE32. The chip is programmed through three data ports and a pointer
// register which selects the register and channel accessed through the data
// ports.
//
// The chip is not safe for concurrent use. The owner of the chip must provide
// a lock.
type Chip struct {
	rate int
	mem  memory

	ptr uint16

	// per channel registers
	data0 [8][NumChannels]uint32
	ccca  [NumChannels]uint32
	data1 [8][NumChannels]uint16
	data2 [8][NumChannels]uint16
	data3 [8][NumChannels]uint16

	// global registers. selected by the channel field of the pointer when the
	// register number is RegGlobal
	global [NumChannels]uint32

	voices [NumChannels]voice

	// the sample counter at NativeRate
	sampleCount uint64

	// remainder of the conversion from the render rate to NativeRate
	countRemainder uint64

	// samples elapsed since the last call to Render(). added to the sample
	// counter when it is read
	virtualCount uint64
}

// NewChip is the preferred method of initialisation for the Chip type. The
// ROM must be exactly ROMSize bytes. A nil ROM is allowed and is treated as a
// ROM of silence. The amount of onboard RAM is in KiB.
func NewChip(rom []byte, ramKiB int, rate int) (*Chip, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("emu8k: invalid sample rate (%d)", rate)
	}

	mem, err := newMemory(rom, ramKiB)
	if err != nil {
		return nil, err
	}

	chip := &Chip{
		rate: rate,
		mem:  mem,
	}
	chip.Reset()

	return chip, nil
}

func (chip *Chip) String() string {
	return fmt.Sprintf("EMU8000 %dHz %d KiB", chip.rate, len(chip.mem.ram)/512)
}

// RAM returns the amount of onboard RAM in KiB.
func (chip *Chip) RAM() int {
	return len(chip.mem.ram) / 512
}

// Reset all registers. The contents of sample memory are kept.
func (chip *Chip) Reset() {
	chip.ptr = 0
	chip.data0 = [8][NumChannels]uint32{}
	chip.ccca = [NumChannels]uint32{}
	chip.data1 = [8][NumChannels]uint16{}
	chip.data2 = [8][NumChannels]uint16{}
	chip.data3 = [8][NumChannels]uint16{}
	chip.global = [NumChannels]uint32{}
	chip.voices = [NumChannels]voice{}
	chip.sampleCount = 0
	chip.countRemainder = 0
	chip.virtualCount = 0

	// channels begin with the envelope off and the volume fully attenuated
	for ch := range NumChannels {
		chip.data1[RegDCYSUSV][ch] = 0x0080
		chip.data0[RegVTFT][ch] = 0x0000ffff
		chip.data0[RegCVCF][ch] = 0x0000ffff
	}
}

// Peek returns the word of sample memory at the address.
func (chip *Chip) Peek(addr uint32) int16 {
	return chip.mem.read(addr)
}

// Active returns true if the envelope of the channel is running.
func (chip *Chip) Active(ch int) bool {
	return chip.voices[ch&0x1f].stage != envOff
}

// SampleCount returns the value of the sample counter register.
func (chip *Chip) SampleCount() uint16 {
	return uint16(chip.sampleCount + chip.virtualCount)
}

// UpdateSampleCount sets the number of frames (at the render rate) that have
// elapsed since the last call to Render(). This keeps the sample counter
// moving between renders, which many programs rely on.
func (chip *Chip) UpdateSampleCount(frames uint64) {
	chip.virtualCount = (frames*NativeRate + chip.countRemainder) / uint64(chip.rate)
}

func (chip *Chip) selected() (int, int) {
	return int(chip.ptr>>5) & 0x07, int(chip.ptr & 0x1f)
}

// ReadWord returns the word at the offset from the base port. Returns false if
// the offset is not a valid word port.
func (chip *Chip) ReadWord(offset uint16) (uint16, bool) {
	reg, ch := chip.selected()

	switch offset {
	case OffsetData0:
		return uint16(chip.data0[reg][ch]), true
	case OffsetData0 + 2:
		return uint16(chip.data0[reg][ch] >> 16), true
	case OffsetData1:
		return uint16(chip.readData1(reg, ch)), true
	case OffsetData2:
		if dword1(reg, ch) {
			return uint16(chip.readData1(reg, ch) >> 16), true
		}
		return chip.readData2(reg, ch), true
	case OffsetData3:
		return chip.data3[reg][ch], true
	case OffsetPointer:
		return chip.ptr, true
	}

	return 0, false
}

// WriteWord writes the word at the offset from the base port. Returns false if
// the offset is not a valid word port.
func (chip *Chip) WriteWord(offset uint16, v uint16) bool {
	reg, ch := chip.selected()

	switch offset {
	case OffsetData0:
		chip.data0[reg][ch] = chip.data0[reg][ch]&0xffff0000 | uint32(v)
	case OffsetData0 + 2:
		chip.data0[reg][ch] = chip.data0[reg][ch]&0x0000ffff | uint32(v)<<16
	case OffsetData1:
		chip.writeData1(reg, ch, v, false)
	case OffsetData2:
		if dword1(reg, ch) {
			chip.writeData1(reg, ch, v, true)
		} else {
			chip.writeData2(reg, ch, v)
		}
	case OffsetData3:
		chip.data3[reg][ch] = v
	case OffsetPointer:
		chip.ptr = v
	default:
		return false
	}

	return true
}

// ReadByte returns the byte at the offset from the base port. Returns false
// if the offset is not a valid port.
func (chip *Chip) ReadByte(offset uint16) (uint8, bool) {
	w, ok := chip.ReadWord(offset &^ 0x01)
	if !ok {
		return 0, false
	}
	if offset&0x01 == 0x01 {
		return uint8(w >> 8), true
	}
	return uint8(w), true
}

// WriteByte writes the byte at the offset from the base port. The other byte
// of the word is taken from the current value of the register.
func (chip *Chip) WriteByte(offset uint16, v uint8) bool {
	word := offset &^ 0x01

	var w uint16
	if word == OffsetPointer {
		w = chip.ptr
	} else {
		// the read is only used for the unaffected byte. reading the sample
		// data registers advances the address so those are not read
		reg, ch := chip.selected()
		sampleData := reg == RegGlobal && ch == GlobalSMxD && (word == OffsetData1 || word == OffsetData2)
		if !sampleData {
			var ok bool
			if w, ok = chip.ReadWord(word); !ok {
				return false
			}
		}
	}

	if offset&0x01 == 0x01 {
		w = w&0x00ff | uint16(v)<<8
	} else {
		w = w&0xff00 | uint16(v)
	}

	return chip.WriteWord(word, w)
}

func (chip *Chip) readData1(reg int, ch int) uint32 {
	switch reg {
	case RegCCCA:
		return chip.ccca[ch]
	case RegGlobal:
		switch ch {
		case GlobalSMxD:
			v := chip.mem.read(chip.global[GlobalSMALR])
			chip.global[GlobalSMALR] = (chip.global[GlobalSMALR] + 1) & addressMask
			return uint32(uint16(v))
		case GlobalWC:
			return uint32(chip.SampleCount())
		}
		return chip.global[ch]
	}
	return uint32(chip.data1[reg][ch])
}

func (chip *Chip) writeData1(reg int, ch int, v uint16, hi bool) {
	switch reg {
	case RegCCCA:
		chip.ccca[ch] = setHalf(chip.ccca[ch], v, hi)
		return
	case RegGlobal:
		switch ch {
		case GlobalSMxD:
			chip.mem.write(chip.global[GlobalSMALW], int16(v))
			chip.global[GlobalSMALW] = (chip.global[GlobalSMALW] + 1) & addressMask
			return
		case GlobalWC:
			return
		}
		chip.global[ch] = setHalf(chip.global[ch], v, hi)
		return
	}

	chip.data1[reg][ch] = v
	if reg == RegDCYSUSV {
		chip.voices[ch].trigger(v)
	}
}

func (chip *Chip) readData2(reg int, ch int) uint16 {
	if reg == RegGlobal {
		switch ch {
		case GlobalSMxD:
			v := chip.mem.read(chip.global[GlobalSMARR])
			chip.global[GlobalSMARR] = (chip.global[GlobalSMARR] + 1) & addressMask
			return uint16(v)
		case GlobalWC:
			return chip.SampleCount()
		}
		return 0
	}
	return chip.data2[reg][ch]
}

func (chip *Chip) writeData2(reg int, ch int, v uint16) {
	if reg == RegGlobal {
		if ch == GlobalSMxD {
			chip.mem.write(chip.global[GlobalSMARW], int16(v))
			chip.global[GlobalSMARW] = (chip.global[GlobalSMARW] + 1) & addressMask
		}
		return
	}
	chip.data2[reg][ch] = v
}

func setHalf(r uint32, v uint16, hi bool) uint32 {
	if hi {
		return r&0x0000ffff | uint32(v)<<16
	}
	return r&0xffff0000 | uint32(v)
}

// Render fills buf with frames of interleaved stereo samples. The length of
// buf must be at least frames*Channels.
func (chip *Chip) Render(buf []int16, frames int) {
	frames = min(frames, len(buf)/Channels)
	dt := 1 / float64(chip.rate)

	for f := range frames {
		var left, right float64
		for ch := range NumChannels {
			l, r := chip.channelOutput(ch, dt)
			left += l
			right += r
		}
		buf[f*2] = clamp(left * headroom)
		buf[f*2+1] = clamp(right * headroom)
	}

	n := uint64(frames)*NativeRate + chip.countRemainder
	chip.sampleCount += n / uint64(chip.rate)
	chip.countRemainder = n % uint64(chip.rate)
	chip.virtualCount = 0
}

// channelOutput advances the channel by one frame and returns its output
func (chip *Chip) channelOutput(ch int, dt float64) (float64, float64) {
	v := &chip.voices[ch]
	v.advance(dt, chip.data2[RegATKHLDV][ch], chip.data1[RegDCYSUSV][ch])
	if v.stage == envOff {
		return 0, 0
	}

	// the pitch moves immediately to the target
	pitch := chip.data0[RegPTRX][ch] >> 16
	chip.data0[RegCPF][ch] = pitch<<16 | chip.data0[RegCPF][ch]&0xffff

	// volume likewise
	vtft := chip.data0[RegVTFT][ch]
	chip.data0[RegCVCF][ch] = vtft&0xffff0000 | chip.data0[RegCVCF][ch]&0xffff
	volume := float64(vtft>>16) / 0xffff

	// the initial attenuation is in steps of 0.375dB
	atten := math.Pow(10, -float64(chip.data3[RegIFATN][ch]&0xff)*0.375/20)

	// the current address is an integer part (CCCA) and a fractional part
	// (CPF)
	addr := chip.ccca[ch] & addressMask
	frac := float64(chip.data0[RegCPF][ch]&0xffff) / 0x10000

	s0 := float64(chip.mem.read(addr))
	s1 := float64(chip.mem.read(chip.nextAddress(ch, addr)))
	sample := s0 + (s1-s0)*frac

	// advance the address
	step := math.Exp2((float64(pitch)-PitchUnity)/0x1000) * NativeRate / float64(chip.rate)
	pos := frac + step
	whole := uint32(pos)
	frac = pos - float64(whole)
	for range whole {
		addr = chip.nextAddress(ch, addr)
	}
	chip.ccca[ch] = chip.ccca[ch]&^addressMask | addr
	chip.data0[RegCPF][ch] = chip.data0[RegCPF][ch]&0xffff0000 | uint32(frac*0x10000)&0xffff

	out := sample * volume * atten * v.level

	// pan is in the top byte of PSST. zero is full left
	pan := float64(chip.data0[RegPSST][ch]>>24) / 0xff
	return out * (1 - pan), out * pan
}

// the address following addr, taking into account the loop points of the
// channel
func (chip *Chip) nextAddress(ch int, addr uint32) uint32 {
	start := chip.data0[RegPSST][ch] & addressMask
	end := chip.data0[RegCSL][ch] & addressMask
	addr = (addr + 1) & addressMask
	if end > start && addr > end {
		return start
	}
	return addr
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
