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
	"errors"

	"github.com/vmusic/vmusic/logger"
	"github.com/vmusic/vmusic/midi"
	"github.com/vmusic/vmusic/notifications"
)

// the body of the I/O thread. the thread only exits when it is asked to or
// when the transport fails
func (mpu *MPU401) run() error {
	for !mpu.worker.ShutdownRequested() {
		// nothing is exchanged with the transport in NORMAL mode. the poll
		// then waits only for an interrupt
		var interest midi.Events
		if mpu.uart.Load() {
			if mpu.tx.Used() > 0 {
				interest |= midi.Out
			}
			if mpu.rx.Free() > 0 {
				interest |= midi.In
			}
		}

		ev, err := mpu.transport.Poll(interest, -1)
		if err != nil {
			if errors.Is(err, midi.ErrInterrupted) {
				continue // for loop
			}
			return mpu.fail(err)
		}

		if ev&midi.Out == midi.Out {
			if err := mpu.transmit(); err != nil {
				return mpu.fail(err)
			}
		}

		if ev&midi.In == midi.In {
			if err := mpu.receive(); err != nil {
				return mpu.fail(err)
			}
		}
	}

	return nil
}

func (mpu *MPU401) fail(err error) error {
	logger.Logf(mpu.env, Name, "I/O thread stopped: %v", err)
	_ = mpu.env.Notify(notifications.NotifyIOStopped)
	return err
}

// send as much of the transmit buffer as the transport will accept in one
// call
func (mpu *MPU401) transmit() error {
	p := mpu.tx.AcquireRead(BufferSize)
	n, err := mpu.transport.Write(p)
	mpu.tx.ReleaseRead(n)
	return err
}

// fill the receive buffer with as much as the transport has available
func (mpu *MPU401) receive() error {
	p := mpu.rx.AcquireWrite(BufferSize)
	n, err := mpu.transport.Read(p)

	mpu.irqCrit.Lock()
	mpu.rx.ReleaseWrite(n)
	if n > 0 {
		mpu.line.Raise()
	}
	mpu.irqCrit.Unlock()

	return err
}
