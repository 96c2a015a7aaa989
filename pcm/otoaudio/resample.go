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

// resampler converts a stream of stereo frames from one sample rate to
// another with linear interpolation. the position between calls to process()
// is preserved so that the stream is continuous
type resampler struct {
	step float64
	pos  float64

	// the last frame of the previous call to process()
	prev [2]int16

	out []int16
}

func newResampler(from int, to int) *resampler {
	return &resampler{
		step: float64(from) / float64(to),
	}
}

// the frame at index k where index zero is the last frame of the previous
// call and index one is the first frame of in
func (r *resampler) frame(in []int16, k int) (int16, int16) {
	if k == 0 {
		return r.prev[0], r.prev[1]
	}
	return in[(k-1)*2], in[(k-1)*2+1]
}

func lerp(a, b int16, f float64) int16 {
	return int16(float64(a) + (float64(b)-float64(a))*f)
}

// the returned slice is reused by the next call to process()
func (r *resampler) process(in []int16) []int16 {
	frames := len(in) / 2
	r.out = r.out[:0]
	if frames == 0 {
		return r.out
	}

	for r.pos < float64(frames) {
		i := int(r.pos)
		f := r.pos - float64(i)
		al, ar := r.frame(in, i)
		bl, br := r.frame(in, i+1)
		r.out = append(r.out, lerp(al, bl, f), lerp(ar, br, f))
		r.pos += r.step
	}

	r.pos -= float64(frames)
	r.prev[0] = in[(frames-1)*2]
	r.prev[1] = in[(frames-1)*2+1]

	return r.out
}
