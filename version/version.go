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

// Package version reports the version of the program, taken from the build
// information embedded by the Go toolchain.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the program.
const ApplicationName = "VMusic"

// set with -ldflags "-X github.com/vmusic/vmusic/version.number=v1.0.0"
var number string

// Info is the version information of the running program.
type Info struct {
	// the version number. "unreleased" if the program was built from a
	// repository without a version number and "local" if there is no
	// information at all
	Version string

	// the VCS revision. suffixed with "+dirty" if the working tree had
	// uncommitted changes
	Revision string

	// the Go toolchain that built the program
	GoVersion string
}

// Release returns true if the version is a numbered release.
func (i Info) Release() bool {
	return number != "" && i.Version == number
}

func (i Info) String() string {
	if i.Release() {
		return fmt.Sprintf("%s %s", ApplicationName, i.Version)
	}
	return fmt.Sprintf("%s %s (%s) %s", ApplicationName, i.Version, i.Revision, i.GoVersion)
}

// Version returns the version information.
func Version() Info {
	return fromBuildInfo(debug.ReadBuildInfo())
}

func fromBuildInfo(info *debug.BuildInfo, ok bool) Info {
	i := Info{
		Version:  number,
		Revision: "no revision information",
	}

	var vcs bool
	if ok {
		i.GoVersion = info.GoVersion

		var modified bool
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				i.Revision = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
		if modified {
			i.Revision += "+dirty"
		}
	}

	if i.Version == "" {
		if vcs {
			i.Version = "unreleased"
		} else {
			i.Version = "local"
		}
	}

	return i
}
