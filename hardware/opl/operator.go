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

import "math"

// attenuation (in dB) at which an operator is considered silent
const silence = 96.0

// time taken for a full decay (silence dB) and a full attack at the slowest
// effective rate (rate 1 with no key scaling). each step of four in the
// effective rate halves the time
const (
	decayTime  = 39.28
	attackTime = 2.826
)

type stage int

const (
	stageOff stage = iota
	stageAttack
	stageDecay
	stageSustain
	stageRelease
)

// operator is a single phase generator and envelope generator pair. Two
// operators form a channel.
type operator struct {
	// 0x20 register
	am   bool
	vib  bool
	egt  bool
	ksr  bool
	mult uint8

	// 0x40 register
	ksl uint8
	tl  uint8

	// 0x60 and 0x80 registers
	ar uint8
	dr uint8
	sl uint8
	rr uint8

	// 0xe0 register
	wave uint8

	keyed bool

	// phase in cycles. always in the range [0, 1)
	phase float64

	stage stage

	// envelope attenuation in dB
	level float64

	// the two most recent outputs. used for feedback
	out     float64
	prevOut float64
}

func (op *operator) reset() {
	*op = operator{
		stage: stageOff,
		level: silence,
	}
}

func (op *operator) setKey(on bool) {
	if on == op.keyed {
		return
	}
	op.keyed = on
	if on {
		op.phase = 0
		op.stage = stageAttack
	} else if op.stage != stageOff {
		op.stage = stageRelease
	}
}

// effective envelope rate for a register rate value. the key scale offset
// depends on the block and the top bit of the frequency number
func effectiveRate(rate uint8, ksr bool, block uint8, fnum uint16) int {
	if rate == 0 {
		return 0
	}
	ksn := int(block)<<1 | int(fnum>>9)&0x01
	if !ksr {
		ksn >>= 2
	}
	return min(63, int(rate)*4+ksn)
}

// dB per second for the effective rate given the time for a full transition
// at effective rate 4
func envelopeSpeed(eff int, base float64) float64 {
	return silence / (base / math.Exp2(float64(eff-4)/4))
}

func (op *operator) sustainLevel() float64 {
	if op.sl == 0x0f {
		return 93
	}
	return float64(op.sl) * 3
}

// advance the envelope by dt seconds
func (op *operator) envelope(dt float64, block uint8, fnum uint16) {
	switch op.stage {
	case stageOff:
		op.level = silence

	case stageAttack:
		eff := effectiveRate(op.ar, op.ksr, block, fnum)
		if eff >= 60 {
			op.level = 0
		} else if eff > 0 {
			op.level -= envelopeSpeed(eff, attackTime) * dt
		}
		if op.level <= 0 {
			op.level = 0
			op.stage = stageDecay
		}

	case stageDecay:
		eff := effectiveRate(op.dr, op.ksr, block, fnum)
		if eff > 0 {
			op.level += envelopeSpeed(eff, decayTime) * dt
		}
		if sl := op.sustainLevel(); op.level >= sl {
			op.level = sl
			op.stage = stageSustain
		}

	case stageSustain:
		// a percussive sound (EGT clear) continues straight to release
		if !op.egt {
			op.stage = stageRelease
		}

	case stageRelease:
		eff := effectiveRate(op.rr, op.ksr, block, fnum)
		if eff > 0 {
			op.level += envelopeSpeed(eff, decayTime) * dt
		}
		if op.level >= silence {
			op.level = silence
			op.stage = stageOff
		}
	}
}

// key scale level attenuation in dB per octave. indexed by the KSL field
var kslAttenuation = [4]float64{0, 3, 1.5, 6}

// output of the operator for its current phase, offset by mod cycles. the
// result is in the range [-1, 1]
func (op *operator) output(mod float64, wave uint8, block uint8, tremolo float64) float64 {
	atten := op.level + float64(op.tl)*0.75 + kslAttenuation[op.ksl]*float64(block)
	if op.am {
		atten += tremolo
	}
	if atten >= silence {
		return 0
	}
	return math.Pow(10, -atten/20) * waveform(wave, op.phase+mod)
}

// advance the phase by a single sample
func (op *operator) step(freq float64, rate float64) {
	op.phase += freq * multiplier[op.mult] / rate
	op.phase -= math.Floor(op.phase)
}

// frequency multiplier. indexed by the MULT field
var multiplier = [16]float64{0.5, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 10, 12, 12, 15, 15}

// waveform returns the value of the selected waveform at x, measured in
// cycles. waveforms 4 to 7 are only available in OPL3 mode
func waveform(wave uint8, x float64) float64 {
	x -= math.Floor(x)
	switch wave {
	case 1:
		// half sine
		if x >= 0.5 {
			return 0
		}
		return math.Sin(2 * math.Pi * x)
	case 2:
		// absolute sine
		return math.Abs(math.Sin(2 * math.Pi * x))
	case 3:
		// pulse sine
		if math.Mod(x, 0.5) >= 0.25 {
			return 0
		}
		return math.Abs(math.Sin(2 * math.Pi * x))
	case 4:
		// alternating sine
		if x >= 0.5 {
			return 0
		}
		return math.Sin(4 * math.Pi * x)
	case 5:
		// camel sine
		if x >= 0.5 {
			return 0
		}
		return math.Abs(math.Sin(4 * math.Pi * x))
	case 6:
		// square
		if x >= 0.5 {
			return -1
		}
		return 1
	case 7:
		// logarithmic sawtooth
		if x >= 0.5 {
			return -math.Exp(-(1 - x) * 16)
		}
		return math.Exp(-x * 16)
	}
	return math.Sin(2 * math.Pi * x)
}
