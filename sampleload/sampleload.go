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

package sampleload

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	"github.com/vmusic/vmusic/logger"
)

const logTag = "sampleload"

// Sample is a decoded sound file.
type Sample struct {
	Filename string

	// sample rate in Hz
	Rate int

	// mono 16 bit samples
	Data []int16
}

func (s Sample) String() string {
	return fmt.Sprintf("%s: %d samples at %dHz (%.02fs)", filepath.Base(s.Filename), len(s.Data), s.Rate, s.Duration().Seconds())
}

// Duration of the sample.
func (s Sample) Duration() time.Duration {
	if s.Rate == 0 {
		return 0
	}
	return time.Duration(len(s.Data)) * time.Second / time.Duration(s.Rate)
}

// Load a sound file. The type of the file is decided by the filename
// extension.
func Load(env logger.Permission, filename string) (Sample, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Sample{}, fmt.Errorf("sampleload: %w", err)
	}

	s, err := Decode(env, bytes.NewReader(data), filepath.Ext(filename))
	if err != nil {
		return Sample{}, err
	}
	s.Filename = filename

	logger.Log(env, logTag, s)

	return s, nil
}

// Decode sound data. The extension selects the format and should be one of
// ".wav" or ".mp3".
func Decode(env logger.Permission, r io.ReadSeeker, ext string) (Sample, error) {
	switch strings.ToLower(ext) {
	case ".wav":
		logger.Log(env, logTag, "decoding wav data")
		return decodeWAV(r)
	case ".mp3":
		logger.Log(env, logTag, "decoding mp3 data")
		return decodeMP3(r)
	}
	return Sample{}, fmt.Errorf("sampleload: unsupported file type (%s)", ext)
}

func decodeWAV(r io.ReadSeeker) (Sample, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return Sample{}, fmt.Errorf("sampleload: wav: not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Sample{}, fmt.Errorf("sampleload: wav: %w", err)
	}

	return Sample{
		Rate: int(dec.SampleRate),
		Data: firstChannel(buf, int(dec.BitDepth)),
	}, nil
}

// firstChannel returns the first channel of the buffer scaled to 16 bits
func firstChannel(buf *audio.IntBuffer, depth int) []int16 {
	chans := 1
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		chans = buf.Format.NumChannels
	}

	data := make([]int16, 0, len(buf.Data)/chans)
	for i := 0; i < len(buf.Data); i += chans {
		v := buf.Data[i]
		switch {
		case depth == 8:
			// 8 bit wav data is unsigned
			v = (v - 128) << 8
		case depth > 16:
			v >>= depth - 16
		}
		data = append(data, int16(v))
	}

	return data
}

func decodeMP3(r io.Reader) (Sample, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return Sample{}, fmt.Errorf("sampleload: mp3: %w", err)
	}

	// the decoded stream is always 16 bit little endian stereo
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return Sample{}, fmt.Errorf("sampleload: mp3: %w", err)
	}

	data := make([]int16, 0, len(pcm)/4)
	for i := 0; i+1 < len(pcm); i += 4 {
		data = append(data, int16(uint16(pcm[i])|uint16(pcm[i+1])<<8))
	}

	return Sample{
		Rate: dec.SampleRate(),
		Data: data,
	}, nil
}
