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

package wavwriter

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WavWriter writes audio data to disk as a WAV file. Writes are paced at the
// sample rate so that the file is a real-time recording of the output.
type WavWriter struct {
	filename string
	f        *os.File
	enc      *wav.Encoder
	buf      *audio.IntBuffer

	rate     int
	channels int
	start    time.Time
	frames   int64
}

// Open implements the pcm.Sink interface. The device string is the name of the
// file to create.
func (aw *WavWriter) Open(filename string, rate int, channels int) error {
	if aw.enc != nil {
		return fmt.Errorf("wavwriter: already open")
	}
	if filename == "" {
		return fmt.Errorf("wavwriter: no filename")
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}

	// audio format 1 is integer PCM
	aw.enc = wav.NewEncoder(f, rate, 16, channels, 1)
	aw.f = f
	aw.filename = filename
	aw.rate = rate
	aw.channels = channels
	aw.buf = &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  rate,
		},
		SourceBitDepth: 16,
	}
	aw.start = time.Now()
	aw.frames = 0

	return nil
}

// Write implements the pcm.Sink interface.
func (aw *WavWriter) Write(samples []int16) (int, error) {
	if aw.enc == nil {
		return 0, fmt.Errorf("wavwriter: not open")
	}

	aw.buf.Data = aw.buf.Data[:0]
	for _, s := range samples {
		aw.buf.Data = append(aw.buf.Data, int(s))
	}

	if err := aw.enc.Write(aw.buf); err != nil {
		return 0, fmt.Errorf("wavwriter: %s: %w", aw.filename, err)
	}

	frames := len(samples) / aw.channels
	aw.frames += int64(frames)

	due := aw.start.Add(time.Duration(aw.frames) * time.Second / time.Duration(aw.rate))
	if d := time.Until(due); d > 0 {
		time.Sleep(d)
	}

	return frames, nil
}

// Close implements the pcm.Sink interface. The WAV header is completed and
// the file is closed.
func (aw *WavWriter) Close() error {
	if aw.enc == nil {
		return nil
	}

	err := aw.enc.Close()
	err = errors.Join(err, aw.f.Close())

	aw.enc = nil
	aw.f = nil

	if err != nil {
		return fmt.Errorf("wavwriter: %s: %w", aw.filename, err)
	}
	return nil
}
