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

package notifications

import "sync"

// Recorder is an implementation of Notify that keeps a copy of every notice it
// receives. Useful for testing.
type Recorder struct {
	crit    sync.Mutex
	notices []Notice
}

// Notify implements the Notify interface.
func (r *Recorder) Notify(notice Notice) error {
	r.crit.Lock()
	defer r.crit.Unlock()
	r.notices = append(r.notices, notice)
	return nil
}

// Notices returns a copy of the notices received so far.
func (r *Recorder) Notices() []Notice {
	r.crit.Lock()
	defer r.crit.Unlock()
	n := make([]Notice, len(r.notices))
	copy(n, r.notices)
	return n
}

// Count returns the number of times the notice has been received.
func (r *Recorder) Count(notice Notice) int {
	r.crit.Lock()
	defer r.crit.Unlock()
	var c int
	for _, n := range r.notices {
		if n == notice {
			c++
		}
	}
	return c
}
