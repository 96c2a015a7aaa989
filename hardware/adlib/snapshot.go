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
	"github.com/vmusic/vmusic/hardware/state"
)

// Version of the snapshot unit.
const Version = 1

// Snapshot returns the state of the device. The registers of the chip are not
// included.
func (adl *Adlib) Snapshot() []byte {
	var enc state.Encoder
	enc.PutU16(adl.reg)
	enc.PutU8(adl.timers.t1.value)
	enc.PutU8(adl.timers.t2.value)
	enc.PutU64(adl.timers.t1.expiry)
	enc.PutU64(adl.timers.t2.expiry)
	enc.PutBool(adl.timers.t1.enabled)
	enc.PutBool(adl.timers.t2.enabled)
	return enc.Bytes()
}

// Restore the state of the device from a snapshot. Nothing is changed if the
// snapshot is from a newer version or is malformed.
func (adl *Adlib) Restore(version uint32, data []byte) error {
	if err := state.CheckVersion(Name, version, Version); err != nil {
		return err
	}

	dec := state.NewDecoder(data)
	reg := dec.U16()
	t1 := timer{period: Timer1Period, value: dec.U8()}
	t2 := timer{period: Timer2Period, value: dec.U8()}
	t1.expiry = dec.U64()
	t2.expiry = dec.U64()
	t1.enabled = dec.Bool()
	t2.enabled = dec.Bool()
	if err := dec.Finish(); err != nil {
		return err
	}

	adl.reg = reg
	adl.timers.t1 = t1
	adl.timers.t2 = t2

	// restart the idle period so that the render thread isn't immediately
	// considered to be idle when it is next woken
	adl.thread.Touch()

	return nil
}
