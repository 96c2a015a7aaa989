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

package guest_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/vmusic/vmusic/environment"
	"github.com/vmusic/vmusic/guest"
	"github.com/vmusic/vmusic/hardware"
	"github.com/vmusic/vmusic/hardware/emu8k"
	"github.com/vmusic/vmusic/hardware/preferences"
	"github.com/vmusic/vmusic/prefs"
	"github.com/vmusic/vmusic/test"
)

const (
	adlibBase = 0x388
	mpuBase   = 0x330
	emuBase   = 0x620
)

func newMachine(t *testing.T, configure func(p *preferences.Preferences)) *hardware.Machine {
	t.Helper()

	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), prefs.DefaultPrefsFile))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.Adlib.Out.Set("null"))
	test.DemandSuccess(t, p.EMU8000.Enabled.Set(true))
	test.DemandSuccess(t, p.EMU8000.Out.Set("null"))
	test.DemandSuccess(t, p.EMU8000.RAM.Set(64))
	test.DemandSuccess(t, p.MPU401.Transport.Set("loopback"))
	if configure != nil {
		configure(p)
	}

	env, err := environment.NewEnvironment(environment.MainEmulation, p)
	test.DemandSuccess(t, err)

	m, err := hardware.NewMachine(env)
	test.DemandSuccess(t, err)
	t.Cleanup(func() {
		test.ExpectSuccess(t, m.Destroy())
	})

	return m
}

func TestDetectAdlib(t *testing.T) {
	m := newMachine(t, nil)
	found, opl3 := guest.DetectAdlib(m.Bus, adlibBase)
	test.ExpectSuccess(t, found)
	test.ExpectSuccess(t, opl3)

	// timers are left stopped
	test.ExpectEquality(t, m.Bus.Read(adlibBase, 1), 0x00)

	m = newMachine(t, func(p *preferences.Preferences) {
		test.DemandSuccess(t, p.Adlib.OPL3.Set(false))
	})
	found, opl3 = guest.DetectAdlib(m.Bus, adlibBase)
	test.ExpectSuccess(t, found)
	test.ExpectFailure(t, opl3)

	m = newMachine(t, func(p *preferences.Preferences) {
		test.DemandSuccess(t, p.Adlib.Enabled.Set(false))
	})
	found, _ = guest.DetectAdlib(m.Bus, adlibBase)
	test.ExpectFailure(t, found)
}

func TestMPU401(t *testing.T) {
	m := newMachine(t, nil)

	test.ExpectSuccess(t, guest.ResetMPU401(m.Bus, mpuBase))
	test.ExpectSuccess(t, guest.EnterUART(m.Bus, mpuBase))
	test.ExpectSuccess(t, m.MPU401.UART())

	msg := []byte{0x90, 0x3c, 0x7f}
	test.ExpectEquality(t, guest.SendMIDI(m.Bus, mpuBase, msg), len(msg))

	var rcv []byte
	deadline := time.Now().Add(2 * time.Second)
	for len(rcv) < len(msg) && time.Now().Before(deadline) {
		rcv = append(rcv, guest.ReceiveMIDI(m.Bus, mpuBase)...)
		time.Sleep(time.Millisecond)
	}
	test.ExpectEquality(t, string(rcv), string(msg))

	// reset is not acknowledged in UART mode. the second attempt is
	test.ExpectSuccess(t, guest.ResetMPU401(m.Bus, mpuBase))
	test.ExpectFailure(t, m.MPU401.UART())
}

func TestMissingMPU401(t *testing.T) {
	m := newMachine(t, func(p *preferences.Preferences) {
		test.DemandSuccess(t, p.MPU401.Enabled.Set(false))
	})
	test.ExpectFailure(t, guest.ResetMPU401(m.Bus, mpuBase))
}

func TestUpload(t *testing.T) {
	m := newMachine(t, nil)

	data := []int16{1, 2, 3, -4, 0x7fff, -0x8000}
	guest.Upload(m.Bus, emuBase, emu8k.RAMBase+0x10, data)

	rcv := guest.Download(m.Bus, emuBase, emu8k.RAMBase+0x10, len(data))
	test.DemandEquality(t, len(rcv), len(data))
	for i := range data {
		test.ExpectEquality(t, rcv[i], data[i])
	}

	// the ROM is read only
	guest.Upload(m.Bus, emuBase, 0, data)
	rcv = guest.Download(m.Bus, emuBase, 0, 1)
	test.ExpectEquality(t, rcv[0], 0)
}

func TestPlay(t *testing.T) {
	m := newMachine(t, nil)

	v := guest.Voice{
		Channel:   3,
		Start:     emu8k.RAMBase,
		LoopStart: emu8k.RAMBase + 100,
		LoopEnd:   emu8k.RAMBase + 120,
		Pitch:     emu8k.Pitch(22050),
		Pan:       0x80,
	}
	guest.Play(m.Bus, emuBase, v)

	// PTRX of the channel
	m.Bus.Write(emuBase+emu8k.OffsetPointer, 2, uint32(emu8k.Pointer(emu8k.RegPTRX, 3)))
	test.ExpectEquality(t, m.Bus.Read(emuBase+emu8k.OffsetData0, 4), uint32(0xd000)<<16)

	// CSL of the channel
	m.Bus.Write(emuBase+emu8k.OffsetPointer, 2, uint32(emu8k.Pointer(emu8k.RegCSL, 3)))
	test.ExpectEquality(t, m.Bus.Read(emuBase+emu8k.OffsetData0, 4), emu8k.RAMBase+120)

	guest.Release(m.Bus, emuBase, 3)
	m.Bus.Write(emuBase+emu8k.OffsetPointer, 2, uint32(emu8k.Pointer(emu8k.RegDCYSUSV, 3)))
	test.ExpectEquality(t, m.Bus.Read(emuBase+emu8k.OffsetData1, 2), 0x807f)
}
