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

package irq

import (
	"fmt"
	"sync"
)

// Detached is the number of a line that is not connected to the controller.
// Raising and lowering a detached line still changes its level.
const Detached = -1

// NumLines is the number of lines on the controller.
const NumLines = 16

// Line is a single level-triggered interrupt line.
type Line struct {
	number int

	crit   sync.Mutex
	level  bool
	raised uint64

	onChange func(number int, level bool)
}

func (l *Line) String() string {
	if l.number == Detached {
		return "irq detached"
	}
	return fmt.Sprintf("irq %d", l.number)
}

// NewDetached returns a line that is not connected to any controller.
func NewDetached() *Line {
	return &Line{number: Detached}
}

// Number returns the line number. Returns Detached if the line is not connected
// to a controller.
func (l *Line) Number() int {
	return l.number
}

func (l *Line) set(level bool) {
	l.crit.Lock()
	defer l.crit.Unlock()

	if l.level == level {
		return
	}

	l.level = level
	if level {
		l.raised++
	}

	if l.onChange != nil {
		l.onChange(l.number, level)
	}
}

// Raise the line. Raising a line that is already high has no effect.
func (l *Line) Raise() {
	l.set(true)
}

// Lower the line. Lowering a line that is already low has no effect.
func (l *Line) Lower() {
	l.set(false)
}

// Level returns true if the line is high.
func (l *Line) Level() bool {
	l.crit.Lock()
	defer l.crit.Unlock()
	return l.level
}

// Raised returns the number of times the line has gone from low to high.
func (l *Line) Raised() uint64 {
	l.crit.Lock()
	defer l.crit.Unlock()
	return l.raised
}

// Controller is a collection of numbered lines.
type Controller struct {
	lines [NumLines]*Line
}

// NewController is the preferred method of initialisation for the Controller
// type. The onChange function is called whenever any line changes level. It
// can be nil.
//
// The onChange function is called with the line's lock held and must not call
// back into the line.
func NewController(onChange func(number int, level bool)) *Controller {
	c := &Controller{}
	for i := range c.lines {
		c.lines[i] = &Line{
			number:   i,
			onChange: onChange,
		}
	}
	return c
}

// Line returns the numbered line. A number of Detached, or any other number
// outside the range of the controller, returns a new detached line.
func (c *Controller) Line(number int) *Line {
	if number < 0 || number >= NumLines {
		return NewDetached()
	}
	return c.lines[number]
}

// Level of the numbered line. Numbers outside the range of the controller are
// always low.
func (c *Controller) Level(number int) bool {
	if number < 0 || number >= NumLines {
		return false
	}
	return c.lines[number].Level()
}
