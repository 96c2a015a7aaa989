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

// Package pcm defines the interface to audio outputs and selects the output
// backend from a device name.
//
// The backends are:
//
//	oto		live output with ebitengine/oto (the default)
//	sdl		live output with SDL2 audio queues
//	wav		capture to a WAV file. the device part is the filename
//	null		discards samples at the sample rate
//
// Writes to every backend block. The render thread of a device relies on this
// for pacing.
package pcm
