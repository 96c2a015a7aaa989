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

package preferences

import (
	"fmt"

	"github.com/vmusic/vmusic/prefs"
)

// MaxEMU8000RAM is the largest amount of onboard RAM in KiB.
const MaxEMU8000RAM = 0x7000

// EMU8000Preferences are the preferences for the wavetable device.
type EMU8000Preferences struct {
	// the device cannot be enabled without a ROM file
	Enabled prefs.Bool

	Port prefs.Port

	// onboard RAM in KiB
	RAM prefs.Int

	// path to the 1MiB sound ROM
	ROM prefs.String

	Rate prefs.Int
	Out  prefs.String
}

func (p *EMU8000Preferences) setHooks() {
	p.Port.SetHookPre(nonZeroPort)
	p.Rate.SetHookPre(sampleRate)
	p.RAM.SetHookPre(func(v prefs.Value) error {
		r := v.(int)
		if r < 0 || r > MaxEMU8000RAM {
			return fmt.Errorf("preferences: emu8000 ram out of range (%#x KiB)", r)
		}
		return nil
	})
}

func (p *EMU8000Preferences) add(dsk *prefs.Disk) error {
	return add(dsk, map[string]prefs.Pref{
		"emu8000.enabled": &p.Enabled,
		"emu8000.port":    &p.Port,
		"emu8000.ram":     &p.RAM,
		"emu8000.rom":     &p.ROM,
		"emu8000.rate":    &p.Rate,
		"emu8000.out":     &p.Out,
	})
}

// SetDefaults reverts all settings to default values.
func (p *EMU8000Preferences) SetDefaults() error {
	if err := p.Enabled.Set(false); err != nil {
		return err
	}
	if err := p.Port.Set(0x620); err != nil {
		return err
	}
	if err := p.RAM.Set(MaxEMU8000RAM); err != nil {
		return err
	}
	if err := p.ROM.Set(""); err != nil {
		return err
	}
	if err := p.Rate.Set(44100); err != nil {
		return err
	}
	return p.Out.Set("default")
}
