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

package otoaudio

// Resample is a wrapper for the resampler type for testing.
func Resample(from int, to int, blocks ...[]int16) []int16 {
	r := newResampler(from, to)
	var out []int16
	for _, b := range blocks {
		out = append(out, r.process(b)...)
	}
	return out
}

// ToStereo is a wrapper for the toStereo function for testing.
func ToStereo(samples []int16, channels int) []int16 {
	return toStereo(nil, samples, channels)
}
