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

package script_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vmusic/vmusic/environment"
	"github.com/vmusic/vmusic/hardware"
	"github.com/vmusic/vmusic/hardware/preferences"
	"github.com/vmusic/vmusic/prefs"
	"github.com/vmusic/vmusic/script"
	"github.com/vmusic/vmusic/test"
)

func newScript(t *testing.T) (*script.Script, *hardware.Machine) {
	t.Helper()

	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), prefs.DefaultPrefsFile))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.Adlib.Out.Set("null"))
	test.DemandSuccess(t, p.MPU401.Transport.Set("loopback"))

	env, err := environment.NewEnvironment(environment.MainEmulation, p)
	test.DemandSuccess(t, err)

	m, err := hardware.NewMachine(env)
	test.DemandSuccess(t, err)

	scr := script.NewScript(env, m)
	t.Cleanup(func() {
		scr.Close()
		test.ExpectSuccess(t, m.Destroy())
	})

	return scr, m
}

func TestPorts(t *testing.T) {
	scr, m := newScript(t)

	err := scr.RunString(context.Background(), `
		outb(0x331, 0x3f)
		assert(irq(9))
		assert(inb(0x330) == 0xfe)
		assert(not irq(9))

		-- nothing at this port
		assert(inw(0x200) == 0xffff)
		assert(ind(0x200) == 0xffffffff)
	`)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, m.MPU401.UART())
}

func TestLoopback(t *testing.T) {
	scr, _ := newScript(t)

	err := scr.RunString(context.Background(), `
		outb(0x331, 0x3f)
		inb(0x330)
		outb(0x330, 0x90)
		assert(waitirq(9, 1000), "no loopback")
		assert(inb(0x330) == 0x90)
	`)
	test.ExpectSuccess(t, err)
}

func TestWaitTimeout(t *testing.T) {
	scr, _ := newScript(t)

	err := scr.RunString(context.Background(), `assert(not waitirq(9, 5))`)
	test.ExpectSuccess(t, err)
}

func TestDevicesAndReset(t *testing.T) {
	scr, m := newScript(t)

	err := scr.RunString(context.Background(), `
		local d = devices()
		assert(#d == 2)
		assert(d[1] == "adlib")
		assert(d[2] == "mpu401")
		outb(0x331, 0x3f)
		reset()
		log("reset", 1)
	`)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, m.MPU401.UART())
	test.ExpectFailure(t, m.IRQ.Level(9))
}

func TestArgumentErrors(t *testing.T) {
	scr, _ := newScript(t)

	test.ExpectFailure(t, scr.RunString(context.Background(), `outb(0x10000, 0)`))
	test.ExpectFailure(t, scr.RunString(context.Background(), `outb(0x388, 0x100)`))
	test.ExpectSuccess(t, scr.RunString(context.Background(), `outw(0x388, 0xffff)`))
	test.ExpectFailure(t, scr.RunString(context.Background(), `inb(-1)`))
	test.ExpectFailure(t, scr.RunString(context.Background(), `sleep(-1)`))
	test.ExpectFailure(t, scr.RunString(context.Background(), `error("stop")`))
}

func TestCancel(t *testing.T) {
	scr, _ := newScript(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := scr.RunString(ctx, `sleep(10000)`)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, time.Since(start) < 5*time.Second)
}

func TestRunFile(t *testing.T) {
	scr, _ := newScript(t)

	fn := filepath.Join(t.TempDir(), "probe.lua")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("sleep(1)\n"), 0o644))
	test.ExpectSuccess(t, scr.Run(context.Background(), fn))

	test.ExpectFailure(t, scr.Run(context.Background(), filepath.Join(t.TempDir(), "missing.lua")))
}
