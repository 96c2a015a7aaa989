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
	"github.com/vmusic/vmusic/hardware/state"
)

// Version of the snapshot unit.
const Version = 1

// Snapshot returns the state of the device. Neither the registers nor the
// sample memory are included so the unit is empty.
func (emu *EMU8000) Snapshot() []byte {
	var enc state.Encoder
	return enc.Bytes()
}

// Restore the state of the device from a snapshot.
func (emu *EMU8000) Restore(version uint32, data []byte) error {
	if err := state.CheckVersion(Name, version, Version); err != nil {
		return err
	}
	if err := state.NewDecoder(data).Finish(); err != nil {
		return err
	}
	emu.thread.Touch()
	return nil
}
