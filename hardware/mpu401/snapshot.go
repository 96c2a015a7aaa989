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

package mpu401

import (
	"github.com/vmusic/vmusic/hardware/state"
)

// Version of the snapshot data.
const Version = 1

// Snapshot returns the state of the device. Only the byte at the head of the
// receive buffer is kept.
func (mpu *MPU401) Snapshot() []byte {
	var enc state.Encoder

	v, ok := mpu.rx.Peek()
	enc.PutBool(ok)
	enc.PutU8(v)
	enc.PutBool(mpu.uart.Load())

	return enc.Bytes()
}

// Restore the state of the device from snapshot data. The I/O thread is
// stopped while the buffers are cleared and the saved input byte is restored.
func (mpu *MPU401) Restore(version uint32, data []byte) error {
	if err := state.CheckVersion(Name, version, Version); err != nil {
		return err
	}

	dec := state.NewDecoder(data)
	haveInput := dec.Bool()
	input := dec.U8()
	uart := dec.Bool()
	if err := dec.Finish(); err != nil {
		return err
	}

	if err := mpu.worker.Stop(true); err != nil {
		return err
	}

	mpu.tx.Clear()
	mpu.rx.Clear()
	if haveInput {
		mpu.rx.Put(input)
	}
	mpu.uart.Store(uart)
	mpu.updateLine()

	// also sets the last write time
	_ = mpu.worker.Wake()

	return nil
}
