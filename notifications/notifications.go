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

package notifications

// Notice describes events that change the state of a device in a way that
// might be interesting to the user or to a test harness.
type Notice string

// List of defined notifications.
const (
	// the render thread of a wave device has opened its output and started
	// producing samples
	NotifyRenderStarted Notice = "NotifyRenderStarted"

	// the render thread has exited. this happens after the idle timeout, when
	// the output cannot be written to or when the device is shutdown
	NotifyRenderStopped Notice = "NotifyRenderStopped"

	// MPU-401 has switched between NORMAL and UART modes
	NotifyUARTEntered Notice = "NotifyUARTEntered"
	NotifyUARTLeft    Notice = "NotifyUARTLeft"

	// the MPU-401 I/O thread has stopped because of a transport error. the
	// thread will be restarted on the next wake
	NotifyIOStopped Notice = "NotifyIOStopped"
)

// Notify is used for direct communication between the device emulations and
// the host. Implementations must be safe to call from any goroutine, including
// the render and I/O threads of a device.
type Notify interface {
	Notify(notice Notice) error
}
