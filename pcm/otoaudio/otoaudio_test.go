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

package otoaudio_test

import (
	"testing"

	"github.com/vmusic/vmusic/pcm/otoaudio"
	"github.com/vmusic/vmusic/test"
)

func equal(a, b []int16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestToStereo(t *testing.T) {
	test.ExpectSuccess(t, equal(otoaudio.ToStereo([]int16{1, 2, 3}, 1), []int16{1, 1, 2, 2, 3, 3}))
	test.ExpectSuccess(t, equal(otoaudio.ToStereo([]int16{1, 2, 3, 4}, 2), []int16{1, 2, 3, 4}))
	test.ExpectSuccess(t, equal(otoaudio.ToStereo([]int16{1, 2, 3, 4, 5, 6}, 3), []int16{1, 2, 4, 5}))
}

func TestResampleSameRate(t *testing.T) {
	// the first output frame is the last frame of the (empty) previous block
	// so the output is delayed by one frame
	out := otoaudio.Resample(100, 100, []int16{10, 20, 30, 40}, []int16{50, 60})
	test.ExpectSuccess(t, equal(out, []int16{0, 0, 10, 20, 30, 40}))
}

func TestResampleUp(t *testing.T) {
	out := otoaudio.Resample(100, 200, []int16{100, 100, 200, 200})
	test.ExpectEquality(t, len(out), 8)
	test.ExpectSuccess(t, equal(out, []int16{0, 0, 50, 50, 100, 100, 150, 150}))
}

func TestResampleDown(t *testing.T) {
	// one second of frames at 44100 produces one second of frames at 22050
	blocks := make([][]int16, 100)
	for i := range blocks {
		blocks[i] = make([]int16, 441*2)
	}
	n := len(otoaudio.Resample(44100, 22050, blocks...)) / 2
	test.ExpectApproximate(t, n, 22050, 0.01)
}
