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

package version_test

import (
	"runtime/debug"
	"testing"

	"github.com/vmusic/vmusic/test"
	"github.com/vmusic/vmusic/version"
)

func TestNoBuildInfo(t *testing.T) {
	i := version.FromBuildInfo(nil, false)
	test.ExpectEquality(t, i.Version, "local")
	test.ExpectEquality(t, i.Revision, "no revision information")
	test.ExpectFailure(t, i.Release())
}

func TestBuildInfo(t *testing.T) {
	info := &debug.BuildInfo{
		GoVersion: "go1.25.0",
		Settings: []debug.BuildSetting{
			{Key: "vcs", Value: "git"},
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	i := version.FromBuildInfo(info, true)
	test.ExpectEquality(t, i.Version, "unreleased")
	test.ExpectEquality(t, i.Revision, "abc123+dirty")
	test.ExpectEquality(t, i.String(), "VMusic unreleased (abc123+dirty) go1.25.0")
}
