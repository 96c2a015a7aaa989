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
	"sync"
)

// Capture is a sink that keeps a copy of every sample written to it. Writes
// can be paced in the same way as the Null sink. Useful for testing.
type Capture struct {
	// if Paced is true then the sink accepts samples no faster than the
	// sample rate
	Paced bool

	// WriteErr is returned by Write() once Limit frames have been written. A
	// Limit of zero means no limit
	Limit    int
	WriteErr error

	// CloseErr is returned by Close()
	CloseErr error

	crit     sync.Mutex
	device   string
	rate     int
	channels int
	samples  []int16
	opened   int
	closed   int

	null Null
}

// Open implements the Sink interface.
func (c *Capture) Open(device string, rate int, channels int) error {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.device = device
	c.rate = rate
	c.channels = channels
	c.opened++
	return c.null.Open(device, rate, channels)
}

// Write implements the Sink interface.
func (c *Capture) Write(samples []int16) (int, error) {
	c.crit.Lock()
	if c.Limit > 0 && len(c.samples)/c.channels >= c.Limit {
		c.crit.Unlock()
		if c.WriteErr == nil {
			return 0, fmt.Errorf("pcm: capture: limit reached")
		}
		return 0, c.WriteErr
	}
	c.samples = append(c.samples, samples...)
	c.crit.Unlock()

	if c.Paced {
		return c.null.Write(samples)
	}

	return len(samples) / c.channels, nil
}

// Close implements the Sink interface.
func (c *Capture) Close() error {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.closed++
	c.null.Close()
	return c.CloseErr
}

// Samples returns a copy of the captured samples.
func (c *Capture) Samples() []int16 {
	c.crit.Lock()
	defer c.crit.Unlock()
	s := make([]int16, len(c.samples))
	copy(s, c.samples)
	return s
}

// Format returns the parameters of the most recent call to Open().
func (c *Capture) Format() (device string, rate int, channels int) {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.device, c.rate, c.channels
}

// Count returns the number of times the sink has been opened and closed.
func (c *Capture) Count() (opened int, closed int) {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.opened, c.closed
}
