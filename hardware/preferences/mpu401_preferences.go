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

// MPU401Preferences are the preferences for the serial MIDI device.
type MPU401Preferences struct {
	Enabled prefs.Bool
	Port    prefs.Port

	// interrupt line. a value of -1 means no interrupt
	IRQ prefs.Int

	// name of the MIDI transport. see midi.Open()
	Transport prefs.String
}

func (p *MPU401Preferences) setHooks() {
	p.Port.SetHookPre(nonZeroPort)
	p.IRQ.SetHookPre(func(v prefs.Value) error {
		n := v.(int)
		if n < -1 || n > 15 {
			return fmt.Errorf("preferences: mpu401 irq out of range (%d)", n)
		}
		return nil
	})
}

func (p *MPU401Preferences) add(dsk *prefs.Disk) error {
	return add(dsk, map[string]prefs.Pref{
		"mpu401.enabled":   &p.Enabled,
		"mpu401.port":      &p.Port,
		"mpu401.irq":       &p.IRQ,
		"mpu401.transport": &p.Transport,
	})
}

// SetDefaults reverts all settings to default values.
func (p *MPU401Preferences) SetDefaults() error {
	if err := p.Enabled.Set(true); err != nil {
		return err
	}
	if err := p.Port.Set(0x330); err != nil {
		return err
	}
	if err := p.IRQ.Set(9); err != nil {
		return err
	}
	return p.Transport.Set("loopback")
}
