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
	"testing"

	"github.com/vmusic/vmusic/prefs"
	"github.com/vmusic/vmusic/test"
)

func TestCommandLineParsing(t *testing.T) {
	// whitespace around keys and values is removed
	prefs.PushCommandLineStack("  mpu401.irq :: 5 ")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "mpu401.irq::5")

	// unused entries are returned in key order
	prefs.PushCommandLineStack("mpu401.irq::5;adlib.opl3::false")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "adlib.opl3::false; mpu401.irq::5")

	// entries without a separator are dropped
	prefs.PushCommandLineStack("adlib.opl3=false; ; emu8000.enabled::true")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "emu8000.enabled::true")

	// an empty value is allowed
	prefs.PushCommandLineStack("emu8000.rom::")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "emu8000.rom::")
}

func TestCommandLineGet(t *testing.T) {
	ok, _ := prefs.GetCommandLinePref("adlib.port")
	test.ExpectFailure(t, ok)

	prefs.PushCommandLineStack("adlib.port::0x220; adlib.rate::44100")
	defer prefs.PopCommandLineStack()

	ok, v := prefs.GetCommandLinePref("adlib.port")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v.(string), "0x220")

	// an entry can only be taken once
	ok, _ = prefs.GetCommandLinePref("adlib.port")
	test.ExpectFailure(t, ok)

	ok, _ = prefs.GetCommandLinePref("adlib.out")
	test.ExpectFailure(t, ok)
}

func TestCommandLineGroups(t *testing.T) {
	n := prefs.SizeCommandLineStack()
	prefs.PushCommandLineStack("adlib.out::null")
	prefs.PushCommandLineStack("adlib.out::wav:out.wav")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), n+2)

	// only the most recent group is visible
	ok, v := prefs.GetCommandLinePref("adlib.out")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v.(string), "wav:out.wav")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	test.ExpectEquality(t, prefs.PopCommandLineStack(), "adlib.out::null")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), n)
}
