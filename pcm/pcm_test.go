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

package pcm_test

import (
	"testing"
	"time"

	"github.com/vmusic/vmusic/pcm"
	"github.com/vmusic/vmusic/pcm/otoaudio"
	"github.com/vmusic/vmusic/pcm/wavwriter"
	"github.com/vmusic/vmusic/test"
)

func TestSelect(t *testing.T) {
	s, dev, err := pcm.Select("default")
	test.ExpectSuccess(t, err)
	_, ok := s.(*otoaudio.Audio)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, dev, "")

	s, dev, err = pcm.Select("wav:/tmp/out.wav")
	test.ExpectSuccess(t, err)
	_, ok = s.(*wavwriter.WavWriter)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, dev, "/tmp/out.wav")

	s, _, err = pcm.Select("null")
	test.ExpectSuccess(t, err)
	_, ok = s.(*pcm.Null)
	test.ExpectSuccess(t, ok)

	// device name without a backend goes to the default backend
	s, dev, err = pcm.Select("hw0")
	test.ExpectSuccess(t, err)
	_, ok = s.(*otoaudio.Audio)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, dev, "hw0")

	_, _, err = pcm.Select("foo:bar")
	test.ExpectFailure(t, err)
}

func TestRegister(t *testing.T) {
	c := &pcm.Capture{}
	pcm.Register("capture", func() pcm.Sink { return c })

	s, dev, err := pcm.Select("capture:test")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, dev, "test")

	test.DemandSuccess(t, s.Open(dev, 1000, 2))
	n, err := s.Write([]int16{1, 2, 3, 4})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 2)
	test.ExpectSuccess(t, s.Close())

	test.ExpectEquality(t, len(c.Samples()), 4)
	d, rate, channels := c.Format()
	test.ExpectEquality(t, d, "test")
	test.ExpectEquality(t, rate, 1000)
	test.ExpectEquality(t, channels, 2)

	found := false
	for _, b := range pcm.Backends() {
		found = found || b == "capture"
	}
	test.ExpectSuccess(t, found)
}

func TestNullPacing(t *testing.T) {
	var n pcm.Null
	test.DemandSuccess(t, n.Open("", 1000, 1))

	// 50 frames at 1000Hz is 50ms
	start := time.Now()
	for i := 0; i < 5; i++ {
		f, err := n.Write(make([]int16, 10))
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, f, 10)
	}
	test.ExpectSuccess(t, time.Since(start) >= 45*time.Millisecond)
	test.ExpectSuccess(t, n.Close())

	_, err := n.Write(make([]int16, 10))
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, n.Open("", 0, 1))
}

func TestCaptureLimit(t *testing.T) {
	c := &pcm.Capture{Limit: 4}
	test.DemandSuccess(t, c.Open("", 1000, 1))
	_, err := c.Write(make([]int16, 4))
	test.ExpectSuccess(t, err)
	_, err = c.Write(make([]int16, 4))
	test.ExpectFailure(t, err)
}
