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

package paths_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vmusic/vmusic/paths"
	"github.com/vmusic/vmusic/test"
)

func TestPaths(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	test.DemandSuccess(t, os.Mkdir(".vmusic", 0o700))

	test.ExpectEquality(t, paths.ResourcePath("foo/bar", "baz"), filepath.Join(".vmusic", "foo", "bar", "baz"))
	test.ExpectEquality(t, paths.ResourcePath("foo/bar", ""), filepath.Join(".vmusic", "foo", "bar"))
	test.ExpectEquality(t, paths.ResourcePath("", "baz"), filepath.Join(".vmusic", "baz"))
	test.ExpectEquality(t, paths.ResourcePath("", ""), ".vmusic")

	pth, err := paths.MakeResourcePath("snapshots", "foo")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".vmusic", "snapshots", "foo"))

	_, err = os.Stat(filepath.Join(".vmusic", "snapshots"))
	test.ExpectSuccess(t, err)
}

func TestUniqueFilename(t *testing.T) {
	n := time.Date(2024, time.March, 5, 13, 4, 9, 0, time.UTC)
	test.ExpectEquality(t, paths.UniqueFilenameAt("capture", "adlib", n), "capture_adlib_20240305_130409")
	test.ExpectEquality(t, paths.UniqueFilenameAt("snapshot", " ", n), "snapshot_20240305_130409")
}
