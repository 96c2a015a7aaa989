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
	"encoding/binary"

	"github.com/vmusic/vmusic/curated"
)

// ROMSize is the required size of the sound ROM in bytes.
const ROMSize = 1024 * 1024

// MaxRAM is the largest amount of onboard RAM in KiB.
const MaxRAM = 0x7000

// RAMBase is the word address of the first word of onboard RAM.
const RAMBase = 0x200000

// addresses are 24 bit word addresses
const addressMask = 0xffffff

// ErrROMSize is the pattern of the error returned when the ROM is the wrong
// size. Test for it with curated.Is().
const ErrROMSize = "emu8k: ROM must be %d bytes (not %d)"

// ErrRAMSize is the pattern of the error returned when the amount of onboard
// RAM is not supported.
const ErrRAMSize = "emu8k: onboard RAM must be between 0 and %d KiB (not %d)"

// memory is the sample memory of the chip. The ROM occupies the bottom of the
// address space and RAM begins at RAMBase. Reading from an address with
// nothing behind it returns zero and writes to those addresses (and to the
// ROM) are ignored.
type memory struct {
	rom []int16
	ram []int16
}

func newMemory(rom []byte, ramKiB int) (memory, error) {
	var mem memory

	if rom == nil {
		rom = make([]byte, ROMSize)
	}
	if len(rom) != ROMSize {
		return mem, curated.Errorf(ErrROMSize, ROMSize, len(rom))
	}
	if ramKiB < 0 || ramKiB > MaxRAM {
		return mem, curated.Errorf(ErrRAMSize, MaxRAM, ramKiB)
	}

	mem.rom = make([]int16, ROMSize/2)
	for i := range mem.rom {
		mem.rom[i] = int16(binary.LittleEndian.Uint16(rom[i*2:]))
	}

	// 512 words in every KiB
	mem.ram = make([]int16, ramKiB*512)

	return mem, nil
}

func (mem *memory) read(addr uint32) int16 {
	addr &= addressMask
	if addr < uint32(len(mem.rom)) {
		return mem.rom[addr]
	}
	if addr >= RAMBase && addr-RAMBase < uint32(len(mem.ram)) {
		return mem.ram[addr-RAMBase]
	}
	return 0
}

func (mem *memory) write(addr uint32, v int16) {
	addr &= addressMask
	if addr >= RAMBase && addr-RAMBase < uint32(len(mem.ram)) {
		mem.ram[addr-RAMBase] = v
	}
}
