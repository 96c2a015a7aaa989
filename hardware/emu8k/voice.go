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

import "math"

type envStage int

const (
	envOff envStage = iota
	envAttack
	envDecay
	envSustain
	envRelease
)

// voice is the playback state of a channel that is not visible in the
// registers
type voice struct {
	stage envStage

	// linear envelope level in the range [0, 1]
	level float64

	// the release time is fixed at the moment the release begins
	release float64
}

// envelope times for a 7 bit rate field, from the slowest (zero) to the
// fastest (127). attack and decay both end at roughly 6ms
func attackTime(v uint16) float64 {
	return 11.878 / math.Exp2(float64(v&0x7f)*11/127)
}

func decayTime(v uint16) float64 {
	return 23.756 / math.Exp2(float64(v&0x7f)*12/127)
}

// sustain level of the DCYSUSV register. the level field is in steps of
// 0.75dB below the maximum
func sustainLevel(dcysusv uint16) float64 {
	steps := 0x7f - float64((dcysusv>>8)&0x7f)
	return math.Pow(10, -steps*0.75/20)
}

// DCYSUSV bits. the release bit starts the release of the envelope. the off
// bit turns the envelope off entirely and is used by channels that are
// reserved for sample memory transfers
const (
	dcysusvRelease = 0x8000
	dcysusvOff     = 0x0080
)

// trigger the envelope. called on every write to DCYSUSV
func (v *voice) trigger(dcysusv uint16) {
	if dcysusv&dcysusvOff == dcysusvOff {
		v.stage = envOff
		v.level = 0
		return
	}
	if dcysusv&dcysusvRelease == dcysusvRelease {
		if v.stage != envOff {
			v.stage = envRelease
			v.release = decayTime(dcysusv)
		}
		return
	}
	v.stage = envAttack
}

func (v *voice) advance(dt float64, atkhldv uint16, dcysusv uint16) {
	switch v.stage {
	case envOff:
		v.level = 0
	case envAttack:
		v.level += dt / attackTime(atkhldv)
		if v.level >= 1 {
			v.level = 1
			v.stage = envDecay
		}
	case envDecay:
		sus := sustainLevel(dcysusv)
		v.level -= dt / decayTime(dcysusv)
		if v.level <= sus {
			v.level = sus
			v.stage = envSustain
		}
	case envSustain:
	case envRelease:
		v.level -= dt / v.release
		if v.level <= 0 {
			v.level = 0
			v.stage = envOff
		}
	}
}
