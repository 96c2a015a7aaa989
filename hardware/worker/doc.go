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

// Package worker manages the lifecycle of the background goroutines used by
// the devices. A worker runs a single function in a goroutine. The goroutine
// is started on demand by Wake() and can exit on its own at any time, for
// example because it has been idle for too long. The next call to Wake()
// will start a new goroutine.
//
// The goroutine handle moves through the following states:
//
//	ABSENT -> RUNNING -> (STOPPING) -> ABSENT
//
// The shutdown and stopped flags are independent. The combination tells
// Wake() whether the goroutine is still running, has exited on its own or is
// being torn down.
package worker
