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

package paths

import (
	"fmt"
	"strings"
	"time"
)

// UniqueFilename creates a filename that (assuming a functioning clock) should
// not collide with any existing file. Note that the function does not test for
// this.
//
// Used to generate filenames for WAV captures and machine snapshots.
//
// Format of returned string is:
//
//	prepend_device_YYYYMMDD_HHMMSS
//
// If there is no device name the returned string will be of the format:
//
//	prepend_YYYYMMDD_HHMMSS
func UniqueFilename(prepend string, device string) string {
	return uniqueFilename(prepend, device, time.Now())
}

func uniqueFilename(prepend string, device string, n time.Time) string {
	timestamp := n.Format("20060102_150405")

	d := strings.TrimSpace(device)
	if len(d) > 0 {
		return fmt.Sprintf("%s_%s_%s", prepend, d, timestamp)
	}
	return fmt.Sprintf("%s_%s", prepend, timestamp)
}
