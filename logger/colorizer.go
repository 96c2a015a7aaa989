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

package logger

import (
	"io"
	"strings"
)

const (
	penTag    = "\033[36m"
	penDetail = "\033[0m"
	penRepeat = "\033[2m"
	penNormal = "\033[0m"
)

// Colorizer wraps an io.Writer and adds terminal colours to each log entry
// written to it. Intended for use with SetEcho() when the output is a
// terminal.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method of initialisation for the Colorizer
// type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (int, error) {
	s := strings.Builder{}

	for _, l := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		tag, detail, found := strings.Cut(l, ": ")
		if !found {
			s.WriteString(l)
			s.WriteString("\n")
			continue
		}

		s.WriteString(penTag)
		s.WriteString(tag)
		s.WriteString(":")
		s.WriteString(penDetail)
		s.WriteString(" ")

		if i := strings.LastIndex(detail, " (repeat x"); i >= 0 {
			s.WriteString(detail[:i])
			s.WriteString(penRepeat)
			s.WriteString(detail[i:])
		} else {
			s.WriteString(detail)
		}

		s.WriteString(penNormal)
		s.WriteString("\n")
	}

	_, err := c.out.Write([]byte(s.String()))
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
