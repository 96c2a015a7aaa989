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

// Package guest contains routines that drive the devices through the port
// interface in the same way a program running on the emulated machine would.
// The routines are used by the PROBE and SAMPLE modes of the command line
// program and are a good test of the devices as seen from the outside.
//
// None of the routines know about the device types. They only require
// something implementing the Ports interface, normally the bus of a
// hardware.Machine.
package guest
