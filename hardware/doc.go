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

// Package hardware is the base package for the VMusic devices. Its
// sub-packages contain the device emulations and the infrastructure they
// share.
//
// The Machine type is the root of the emulation. It builds the devices that
// are enabled in the preferences, maps them onto the I/O port bus and
// connects them to the interrupt controller and the virtual clock. Lifecycle
// events and snapshots are passed from the Machine to every device.
//
// The guest drives the Machine through the bus:
//
//	m, _ := hardware.NewMachine(env)
//	m.Bus.Write(0x388, 1, 0x04)
//	status := m.Bus.Read(0x388, 1)
package hardware
