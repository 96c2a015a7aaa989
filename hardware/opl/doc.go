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

// Package opl is a model of the Yamaha OPL2 and OPL3 FM synthesis chips, as
// found on the Adlib and compatible sound cards.
//
// The model is driven entirely by register writes. Each of the 9 (OPL2) or 18
// (OPL3) channels is a pair of operators, a modulator and a carrier, either
// connected in series (FM) or in parallel (additive). Every operator has its
// own envelope and one of four (OPL2) or eight (OPL3) waveforms.
//
// The model is not cycle accurate and makes no attempt to reproduce the output
// of a real chip bit-for-bit. Notably, the four operator connections of the
// OPL3 (register 0x104) are stored but the channels are always rendered as
// pairs, and the rhythm mode percussion voices are rendered as tones.
//
// Register writes from the guest are usually made through WriteRegBuffered().
// The writes are queued and applied a couple of frames apart during Render(),
// which means that a key-off immediately followed by a key-on will retrigger
// the envelope as it does on real hardware.
package opl
