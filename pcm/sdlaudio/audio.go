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

package sdlaudio

import (
	"fmt"
	"sync"
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

// the SDL audio subsystem is initialised once per process
var initAudio struct {
	once sync.Once
	err  error
}

// number of frames in the SDL audio callback buffer
const bufferFrames = 512

// the queue is allowed to hold this much audio before a write blocks
const maxQueued = 20 * time.Millisecond

// the interval between checks of the queue size when a write is blocked
const pollInterval = time.Millisecond

// Audio outputs sound using the SDL audio queue. A write blocks while the
// amount of queued audio is above the threshold.
type Audio struct {
	id       sdl.AudioDeviceID
	spec     sdl.AudioSpec
	open     bool
	channels int

	// queue threshold in bytes
	threshold uint32

	buffer []byte
}

// Open implements the pcm.Sink interface. An empty device string opens the
// default SDL audio device.
func (aud *Audio) Open(device string, rate int, channels int) error {
	if aud.open {
		return fmt.Errorf("sdlaudio: already open")
	}

	initAudio.once.Do(func() {
		initAudio.err = sdl.InitSubSystem(sdl.INIT_AUDIO)
	})
	if initAudio.err != nil {
		return fmt.Errorf("sdlaudio: %w", initAudio.err)
	}

	spec := &sdl.AudioSpec{
		Freq:     int32(rate),
		Format:   sdl.AUDIO_S16LSB,
		Channels: uint8(channels),
		Samples:  bufferFrames,
	}

	var err error

	// SDL converts from the requested spec to the hardware spec
	aud.id, err = sdl.OpenAudioDevice(device, false, spec, &aud.spec, 0)
	if err != nil {
		return fmt.Errorf("sdlaudio: %w", err)
	}

	aud.open = true
	aud.channels = channels
	aud.threshold = uint32(time.Duration(rate*channels*2) * maxQueued / time.Second)

	sdl.PauseAudioDevice(aud.id, false)

	return nil
}

// Write implements the pcm.Sink interface.
func (aud *Audio) Write(samples []int16) (int, error) {
	if !aud.open {
		return 0, fmt.Errorf("sdlaudio: not open")
	}

	for sdl.GetQueuedAudioSize(aud.id) > aud.threshold {
		time.Sleep(pollInterval)
	}

	if cap(aud.buffer) < len(samples)*2 {
		aud.buffer = make([]byte, len(samples)*2)
	}
	aud.buffer = aud.buffer[:len(samples)*2]
	for i, s := range samples {
		aud.buffer[i*2] = byte(s)
		aud.buffer[i*2+1] = byte(s >> 8)
	}

	if err := sdl.QueueAudio(aud.id, aud.buffer); err != nil {
		return 0, fmt.Errorf("sdlaudio: %w", err)
	}

	return len(samples) / aud.channels, nil
}

// Close implements the pcm.Sink interface.
func (aud *Audio) Close() error {
	if !aud.open {
		return nil
	}
	aud.open = false
	sdl.CloseAudioDevice(aud.id)
	return nil
}
