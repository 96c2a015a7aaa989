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
	"github.com/vmusic/vmusic/hardware/emu8k"
)

// the ports of the EMU8000 relative to the base port
type emuPorts struct {
	p    Ports
	base uint16
}

func (e emuPorts) selectReg(reg int, ch int) {
	e.p.Write(e.base+emu8k.OffsetPointer, 2, uint32(emu8k.Pointer(reg, ch)))
}

func (e emuPorts) data0(reg int, ch int, v uint32) {
	e.selectReg(reg, ch)
	e.p.Write(e.base+emu8k.OffsetData0, 4, v)
}

func (e emuPorts) data1(reg int, ch int, v uint16) {
	e.selectReg(reg, ch)
	e.p.Write(e.base+emu8k.OffsetData1, 2, uint32(v))
}

func (e emuPorts) data1d(reg int, ch int, v uint32) {
	e.selectReg(reg, ch)
	e.p.Write(e.base+emu8k.OffsetData1, 4, v)
}

func (e emuPorts) data2(reg int, ch int, v uint16) {
	e.selectReg(reg, ch)
	e.p.Write(e.base+emu8k.OffsetData2, 2, uint32(v))
}

func (e emuPorts) data3(reg int, ch int, v uint16) {
	e.selectReg(reg, ch)
	e.p.Write(e.base+emu8k.OffsetData3, 2, uint32(v))
}

// SampleCount reads the sample counter of the EMU8000 at the base port.
func SampleCount(p Ports, base uint16) uint16 {
	e := emuPorts{p: p, base: base}
	e.selectReg(emu8k.RegGlobal, emu8k.GlobalWC)
	return uint16(p.Read(base+emu8k.OffsetData2, 2))
}

// Upload writes the sample data into sample memory of the EMU8000 at the base
// port, beginning at the word address.
func Upload(p Ports, base uint16, addr uint32, data []int16) {
	e := emuPorts{p: p, base: base}
	e.data1d(emu8k.RegGlobal, emu8k.GlobalSMALW, addr)

	// the write address increments after every word
	e.selectReg(emu8k.RegGlobal, emu8k.GlobalSMxD)
	for _, w := range data {
		p.Write(base+emu8k.OffsetData1, 2, uint32(uint16(w)))
	}
}

// Download reads words of sample memory from the EMU8000 at the base port.
func Download(p Ports, base uint16, addr uint32, n int) []int16 {
	e := emuPorts{p: p, base: base}
	e.data1d(emu8k.RegGlobal, emu8k.GlobalSMALR, addr)

	e.selectReg(emu8k.RegGlobal, emu8k.GlobalSMxD)
	data := make([]int16, n)
	for i := range data {
		data[i] = int16(p.Read(base+emu8k.OffsetData1, 2))
	}
	return data
}

// Voice describes a sample in sample memory and how to play it.
type Voice struct {
	Channel int

	// word addresses. playback begins at Start and continues to LoopEnd, after
	// which it returns to LoopStart
	Start     uint32
	LoopStart uint32
	LoopEnd   uint32

	// see emu8k.Pitch()
	Pitch uint16

	// zero is full left, 0xff is full right
	Pan uint8
}

// Play starts the voice on the EMU8000 at the base port. The envelope is set
// to the fastest attack and the loudest sustain.
func Play(p Ports, base uint16, v Voice) {
	e := emuPorts{p: p, base: base}
	ch := v.Channel

	// turn the envelope off while the channel is being set up
	e.data1(emu8k.RegDCYSUSV, ch, 0x0080)

	e.data0(emu8k.RegPTRX, ch, uint32(v.Pitch)<<16)
	e.data0(emu8k.RegCPF, ch, uint32(v.Pitch)<<16)
	e.data0(emu8k.RegVTFT, ch, 0xffffffff)
	e.data0(emu8k.RegCVCF, ch, 0xffffffff)
	e.data0(emu8k.RegPSST, ch, uint32(v.Pan)<<24|v.LoopStart&0xffffff)
	e.data0(emu8k.RegCSL, ch, v.LoopEnd&0xffffff)
	e.data1d(emu8k.RegCCCA, ch, v.Start&0xffffff)
	e.data3(emu8k.RegIFATN, ch, 0xff00)
	e.data2(emu8k.RegATKHLDV, ch, 0x7f7f)

	// starting the envelope starts the voice
	e.data1(emu8k.RegDCYSUSV, ch, 0x7f7f)
}

// Release begins the release of the voice on the channel.
func Release(p Ports, base uint16, ch int) {
	e := emuPorts{p: p, base: base}
	e.data1(emu8k.RegDCYSUSV, ch, 0x807f)
}
