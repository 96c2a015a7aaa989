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

package prefs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/vmusic/vmusic/curated"
	"github.com/vmusic/vmusic/prefs"
	"github.com/vmusic/vmusic/test"
)

func cmpFile(t *testing.T, fn string, expected string) {
	t.Helper()

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	test.ExpectEquality(t, string(data), expected)
}

func TestBool(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v, w, x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("TRUE"))
	test.ExpectFailure(t, x.Set(10))

	test.DemandSuccess(t, dsk.Save())
	cmpFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")
}

func TestIntAndPort(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var n prefs.Int
	var p prefs.Port
	test.ExpectSuccess(t, dsk.Add("number", &n))
	test.ExpectSuccess(t, dsk.Add("port", &p))

	test.ExpectSuccess(t, n.Set("-1"))
	test.ExpectSuccess(t, p.Set(0x388))
	test.DemandSuccess(t, dsk.Save())
	cmpFile(t, fn, "number :: -1\nport :: 0x388\n")

	test.ExpectFailure(t, n.Set("---"))
	test.ExpectFailure(t, n.Set(1.0))
	test.ExpectFailure(t, p.Set(0x10000))
	test.ExpectFailure(t, p.Set(-1))

	test.ExpectSuccess(t, p.Set("0x220"))
	test.ExpectEquality(t, p.Get().(uint16), 0x220)
	test.ExpectSuccess(t, p.Set("816"))
	test.ExpectEquality(t, p.Get().(uint16), 0x330)

	// values are restored on load
	test.ExpectSuccess(t, dsk.Load())
	test.ExpectEquality(t, n.Get().(int), -1)
	test.ExpectEquality(t, p.Get().(uint16), 0x388)
}

func TestHooks(t *testing.T) {
	var rate prefs.Int
	rate.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 8000 {
			return fmt.Errorf("rate too low")
		}
		return nil
	})

	var post int
	rate.SetHookPost(func(v prefs.Value) error {
		post = v.(int)
		return nil
	})

	test.ExpectSuccess(t, rate.Set(22050))
	test.ExpectEquality(t, post, 22050)
	test.ExpectFailure(t, rate.Set(100))
	test.ExpectEquality(t, rate.Get().(int), 22050)
}

func TestNoFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &s))

	err = dsk.Load()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, prefs.NoPrefsFile))

	_, err = prefs.NewDisk("")
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, dsk.Add("foo", &s))
	test.ExpectFailure(t, dsk.Add(" bar", &s))
}

// two disk instances using the same file must not clobber each other's values
func TestSharedFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var v prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, v.Set(true))
	test.DemandSuccess(t, dsk.Save())

	dsk, err = prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &s))
	test.ExpectSuccess(t, s.Set("bar"))
	test.DemandSuccess(t, dsk.Save())

	cmpFile(t, fn, "foo :: bar\ntest :: true\n")
}

func TestDefunct(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)
	err := os.WriteFile(fn, []byte(fmt.Sprintf("%s\nadlib.buffer :: 10\nother :: 1\n", prefs.WarningBoilerPlate)), 0o600)
	test.DemandSuccess(t, err)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var f prefs.Float
	test.ExpectSuccess(t, dsk.Add("float", &f))
	test.ExpectSuccess(t, f.Set(0.5))
	test.DemandSuccess(t, dsk.Save())

	cmpFile(t, fn, "float :: 0.500\nother :: 1\n")
}

func TestCommandLineOverride(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var n prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &n))
	test.ExpectSuccess(t, n.Set(10))
	test.DemandSuccess(t, dsk.Save())

	prefs.PushCommandLineStack("number::20")

	dsk, err = prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var m prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &m))
	test.ExpectEquality(t, m.Get().(int), 20)

	// the command line value takes precedence over the value in the file
	test.ExpectSuccess(t, dsk.Load())
	test.ExpectEquality(t, m.Get().(int), 20)

	// the command line value was consumed by Add()
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}
