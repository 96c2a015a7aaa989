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

package pcm

import (
	"fmt"
	"time"
)

// Null is a sink that discards samples. Writes are paced so that the sink
// accepts samples no faster than the sample rate.
type Null struct {
	rate     int
	channels int

	start  time.Time
	frames int64
	open   bool
}

// Open implements the Sink interface.
func (n *Null) Open(_ string, rate int, channels int) error {
	if rate <= 0 || channels <= 0 {
		return fmt.Errorf("pcm: null: invalid format (%dHz, %d channels)", rate, channels)
	}
	n.rate = rate
	n.channels = channels
	n.start = time.Now()
	n.frames = 0
	n.open = true
	return nil
}

// Write implements the Sink interface.
func (n *Null) Write(samples []int16) (int, error) {
	if !n.open {
		return 0, fmt.Errorf("pcm: null: not open")
	}

	frames := len(samples) / n.channels
	n.frames += int64(frames)

	due := n.start.Add(time.Duration(n.frames) * time.Second / time.Duration(n.rate))
	if d := time.Until(due); d > 0 {
		time.Sleep(d)
	}

	return frames, nil
}

// Close implements the Sink interface.
func (n *Null) Close() error {
	n.open = false
	return nil
}
