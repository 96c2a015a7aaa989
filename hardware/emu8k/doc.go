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

// Package emu8k is a model of the EMU8000 wavetable synthesizer.
//
// The chip has 32 channels, each playing a looped sample from sample memory.
// Sample memory is a 1MiB ROM of General MIDI instruments and up to 28MiB of
// onboard RAM, addressed in 16 bit words. Sample data is uploaded to RAM
// through the SMALW and SMLD registers, one word at a time.
//
// Registers are selected with the pointer register. Bits 5 to 7 are the
// register number and bits 0 to 4 are the channel. The register number
// RegGlobal selects a global register with the channel field.
//
// The DATA1 and DATA2 ports overlap. A 32 bit register accessed through DATA1
// has its upper word at the DATA2 port. For the 16 bit DATA1 registers, the
// same port reaches a separate DATA2 register. The chip decides which by
// looking at the currently selected register.
//
// The model does not reproduce the filters, the LFOs or the modulation
// envelope of the real chip. The volume envelope has attack, decay, sustain
// and release stages only.
package emu8k
