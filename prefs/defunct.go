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

package prefs

// list of preference keys that are no longer used. they will be removed from
// the prefs file the next time it is saved
var defunct = []string{
	"adlib.buffer",
	"mpu401.device",
}

func isDefunct(key string) bool {
	for _, k := range defunct {
		if key == k {
			return true
		}
	}
	return false
}
