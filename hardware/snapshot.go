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

package hardware

import (
	"errors"
	"fmt"

	"github.com/vmusic/vmusic/hardware/state"
)

// Magic is the first four bytes of a Machine snapshot.
const Magic = "VMUS"

// Errors returned by Restore().
var (
	ErrNotSnapshot   = errors.New("machine: not a snapshot")
	ErrUnknownDevice = errors.New("machine: snapshot contains unknown device")
)

// Snapshot the state of every device. Each device's data is stored with the
// name of the device, the version of the data and the length of the data.
func (m *Machine) Snapshot() []byte {
	var enc state.Encoder
	for _, c := range []byte(Magic) {
		enc.PutU8(c)
	}
	enc.PutU16(uint16(len(m.units)))
	for _, u := range m.units {
		enc.PutString(u.name)
		enc.PutU32(u.version)
		enc.PutBytes(u.dev.Snapshot())
	}
	return enc.Bytes()
}

type savedUnit struct {
	name    string
	version uint32
	data    []byte
	dev     Device
}

// Restore the state of the devices from a snapshot. The snapshot is checked
// before any device is changed: every device named in the snapshot must exist
// in the Machine and no data can be of a newer version than the device
// supports. Devices not named in the snapshot are left as they are.
func (m *Machine) Restore(data []byte) error {
	dec := state.NewDecoder(data)

	for _, c := range []byte(Magic) {
		if dec.U8() != c {
			return ErrNotSnapshot
		}
	}

	n := int(dec.U16())
	saved := make([]savedUnit, 0, n)
	for range n {
		s := savedUnit{
			name:    dec.String(),
			version: dec.U32(),
			data:    dec.Bytes(),
		}
		if dec.Err() != nil {
			break // for loop
		}

		for _, u := range m.units {
			if u.name == s.name {
				s.dev = u.dev
				if err := state.CheckVersion(u.name, s.version, u.version); err != nil {
					return err
				}
			}
		}
		if s.dev == nil {
			return fmt.Errorf("%w (%s)", ErrUnknownDevice, s.name)
		}

		saved = append(saved, s)
	}

	if err := dec.Finish(); err != nil {
		return fmt.Errorf("machine: %w", err)
	}

	for _, s := range saved {
		if err := s.dev.Restore(s.version, s.data); err != nil {
			return fmt.Errorf("machine: %s: %w", s.name, err)
		}
	}

	return nil
}
