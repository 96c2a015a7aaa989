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

import "fmt"

// Word offsets of the data ports from the base port of the chip.
const (
	OffsetData0   = 0x000
	OffsetData1   = 0x400
	OffsetData2   = 0x402
	OffsetData3   = 0x800
	OffsetPointer = 0x802
)

// Register numbers, as selected by bits 5 to 7 of the pointer register. The
// meaning of a register number depends on the data port used to access it.
const (
	// DATA0 (32 bit)
	RegCPF  = 0
	RegPTRX = 1
	RegCVCF = 2
	RegVTFT = 3
	RegPSST = 6
	RegCSL  = 7

	// DATA1
	RegCCCA    = 0 // 32 bit
	RegGlobal  = 1 // the channel field selects a global register
	RegINIT1   = 2
	RegINIT3   = 3
	RegENVVOL  = 4
	RegDCYSUSV = 5
	RegENVVAL  = 6
	RegDCYSUS  = 7

	// DATA2
	RegINIT2   = 2
	RegINIT4   = 3
	RegATKHLDV = 4
	RegLFO1VAL = 5
	RegATKHLD  = 6
	RegLFO2VAL = 7

	// DATA3
	RegIP      = 0
	RegIFATN   = 1
	RegPEFE    = 2
	RegFMMOD   = 3
	RegTREMFRQ = 4
	RegFM2FRQ2 = 5
)

// Global registers, selected by the channel field when the register number is
// RegGlobal.
const (
	GlobalHWCF4 = 9
	GlobalHWCF5 = 10
	GlobalHWCF6 = 13
	GlobalSMALR = 20
	GlobalSMARR = 21
	GlobalSMALW = 22
	GlobalSMARW = 23

	// SMLD through DATA1. SMRD through DATA2
	GlobalSMxD = 26

	// sample counter. DATA2 only
	GlobalWC = 27

	GlobalHWCF1 = 29
	GlobalHWCF2 = 30
	GlobalHWCF3 = 31
)

// NumChannels is the number of voices in the chip.
const NumChannels = 32

// Pointer returns the value to write to the pointer register to select a
// register and channel.
func Pointer(reg int, channel int) uint16 {
	return uint16(reg&0x07)<<5 | uint16(channel&0x1f)
}

// dword1 returns true if the register accessed through DATA1 is 32 bits wide.
// the upper word of a 32 bit DATA1 register is at the same port as DATA2
func dword1(reg int, ch int) bool {
	switch reg {
	case RegCCCA:
		return true
	case RegGlobal:
		switch ch {
		case GlobalSMxD, GlobalWC, GlobalHWCF1, GlobalHWCF2, GlobalHWCF3:
			return false
		}
		return true
	}
	return false
}

var data0Names = [8]string{"CPF", "PTRX", "CVCF", "VTFT", "unused4", "unused5", "PSST", "CSL"}
var data1Names = [8]string{"CCCA", "global", "INIT1", "INIT3", "ENVVOL", "DCYSUSV", "ENVVAL", "DCYSUS"}
var data2Names = [8]string{"", "global", "INIT2", "INIT4", "ATKHLDV", "LFO1VAL", "ATKHLD", "LFO2VAL"}
var data3Names = [8]string{"IP", "IFATN", "PEFE", "FMMOD", "TREMFRQ", "FM2FRQ2", "unused6", "unused7"}

// RegisterName returns the name of the register at the offset when selected
// by the pointer.
func RegisterName(offset uint16, ptr uint16) string {
	reg := int(ptr>>5) & 0x07
	ch := int(ptr & 0x1f)

	switch offset &^ 0x01 {
	case OffsetData0, OffsetData0 + 2:
		return fmt.Sprintf("%s[%d]", data0Names[reg], ch)
	case OffsetData1:
		if reg == RegGlobal {
			return globalName(ch, 1)
		}
		return fmt.Sprintf("%s[%d]", data1Names[reg], ch)
	case OffsetData2:
		if dword1(reg, ch) {
			return RegisterName(OffsetData1, ptr) + " hi"
		}
		if reg == RegGlobal {
			return globalName(ch, 2)
		}
		return fmt.Sprintf("%s[%d]", data2Names[reg], ch)
	case OffsetData3:
		return fmt.Sprintf("%s[%d]", data3Names[reg], ch)
	case OffsetPointer:
		return "pointer"
	}
	return "unknown"
}

func globalName(ch int, port int) string {
	switch ch {
	case GlobalHWCF1:
		return "HWCF1"
	case GlobalHWCF2:
		return "HWCF2"
	case GlobalHWCF3:
		return "HWCF3"
	case GlobalHWCF4:
		return "HWCF4"
	case GlobalHWCF5:
		return "HWCF5"
	case GlobalHWCF6:
		return "HWCF6"
	case GlobalSMALR:
		return "SMALR"
	case GlobalSMARR:
		return "SMARR"
	case GlobalSMALW:
		return "SMALW"
	case GlobalSMARW:
		return "SMARW"
	case GlobalSMxD:
		if port == 1 {
			return "SMLD"
		}
		return "SMRD"
	case GlobalWC:
		return "WC"
	}
	return fmt.Sprintf("global%d", ch)
}
