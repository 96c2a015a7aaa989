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

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// the oto package allows only one context per process. the context is created
// with the sample rate of the first sink to be opened. sinks with a different
// rate are resampled
var context struct {
	crit sync.Mutex
	ctx  *oto.Context
	rate int
}

// number of channels in the oto context
const contextChannels = 2

// amount of audio buffered by oto. a shorter buffer means less latency
// between a register write and the sound
const bufferSize = 50 * time.Millisecond

func getContext(rate int) (*oto.Context, int, error) {
	context.crit.Lock()
	defer context.crit.Unlock()

	if context.ctx != nil {
		return context.ctx, context.rate, nil
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: contextChannels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("otoaudio: %w", err)
	}
	<-ready

	context.ctx = ctx
	context.rate = rate

	return ctx, rate, nil
}

// Audio is an audio output using the oto package. Samples written to the sink
// are streamed to an oto player through a pipe. A write blocks until the
// player has consumed the samples.
type Audio struct {
	channels int

	player *oto.Player
	reader *io.PipeReader
	writer *io.PipeWriter

	resample *resampler
	stereo   []int16
	buffer   []byte
}

// Open implements the pcm.Sink interface. The device argument is ignored.
func (aud *Audio) Open(_ string, rate int, channels int) error {
	if aud.player != nil {
		return fmt.Errorf("otoaudio: already open")
	}
	if rate <= 0 || channels <= 0 {
		return fmt.Errorf("otoaudio: invalid format (%dHz, %d channels)", rate, channels)
	}

	ctx, ctxRate, err := getContext(rate)
	if err != nil {
		return err
	}

	aud.channels = channels
	aud.resample = nil
	if ctxRate != rate {
		aud.resample = newResampler(rate, ctxRate)
	}

	aud.reader, aud.writer = io.Pipe()
	aud.player = ctx.NewPlayer(aud.reader)
	aud.player.Play()

	return nil
}

// Write implements the pcm.Sink interface.
func (aud *Audio) Write(samples []int16) (int, error) {
	if aud.player == nil {
		return 0, fmt.Errorf("otoaudio: not open")
	}

	frames := len(samples) / aud.channels

	aud.stereo = toStereo(aud.stereo[:0], samples, aud.channels)
	out := aud.stereo
	if aud.resample != nil {
		out = aud.resample.process(out)
	}

	if cap(aud.buffer) < len(out)*2 {
		aud.buffer = make([]byte, len(out)*2)
	}
	aud.buffer = aud.buffer[:len(out)*2]
	for i, s := range out {
		aud.buffer[i*2] = byte(s)
		aud.buffer[i*2+1] = byte(s >> 8)
	}

	if _, err := aud.writer.Write(aud.buffer); err != nil {
		return 0, fmt.Errorf("otoaudio: %w", err)
	}

	if err := aud.player.Err(); err != nil {
		return 0, fmt.Errorf("otoaudio: %w", err)
	}

	return frames, nil
}

// Close implements the pcm.Sink interface.
func (aud *Audio) Close() error {
	if aud.player == nil {
		return nil
	}

	// closing the writer causes the player to see the end of the stream
	aud.writer.Close()
	err := aud.player.Close()
	aud.reader.Close()

	aud.player = nil
	aud.reader = nil
	aud.writer = nil

	if err != nil {
		return fmt.Errorf("otoaudio: %w", err)
	}
	return nil
}

// convert interleaved samples with any number of channels to stereo. mono
// samples are copied to both channels. channels beyond the second are dropped
func toStereo(dst []int16, samples []int16, channels int) []int16 {
	switch channels {
	case 2:
		return append(dst, samples...)
	case 1:
		for _, s := range samples {
			dst = append(dst, s, s)
		}
		return dst
	}

	for i := 0; i+channels <= len(samples); i += channels {
		dst = append(dst, samples[i], samples[i+1])
	}
	return dst
}
