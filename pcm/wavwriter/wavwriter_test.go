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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/vmusic/vmusic/pcm/wavwriter"
	"github.com/vmusic/vmusic/test"
)

func TestWavWriter(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "out.wav")

	var aw wavwriter.WavWriter
	test.ExpectFailure(t, aw.Open("", 8000, 2))
	test.DemandSuccess(t, aw.Open(fn, 8000, 2))

	block := make([]int16, 80*2)
	for i := range block {
		block[i] = int16(i * 100)
	}

	for i := 0; i < 5; i++ {
		n, err := aw.Write(block)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, n, 80)
	}
	test.DemandSuccess(t, aw.Close())

	// closing twice is harmless
	test.ExpectSuccess(t, aw.Close())

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandSuccess(t, dec.IsValidFile())

	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, int(dec.SampleRate), 8000)
	test.ExpectEquality(t, int(dec.NumChans), 2)
	test.ExpectEquality(t, int(dec.BitDepth), 16)
	test.DemandEquality(t, len(buf.Data), 80*2*5)
	test.ExpectEquality(t, buf.Data[3], 300)
	test.ExpectEquality(t, buf.Data[80*2+3], 300)
}
