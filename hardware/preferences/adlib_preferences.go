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

import "github.com/vmusic/vmusic/prefs"

// AdlibPreferences are the preferences for the OPL FM device.
type AdlibPreferences struct {
	Enabled prefs.Bool

	// base and mirror port. a mirror of zero means no mirror
	Port   prefs.Port
	Mirror prefs.Port

	// OPL3 maps four ports. OPL2 maps two ports and has different status bits
	OPL3 prefs.Bool

	Rate prefs.Int

	// name of the output device. see pcm.Open()
	Out prefs.String
}

func (p *AdlibPreferences) setHooks() {
	p.Port.SetHookPre(nonZeroPort)
	p.Rate.SetHookPre(sampleRate)
}

func (p *AdlibPreferences) add(dsk *prefs.Disk) error {
	return add(dsk, map[string]prefs.Pref{
		"adlib.enabled": &p.Enabled,
		"adlib.port":    &p.Port,
		"adlib.mirror":  &p.Mirror,
		"adlib.opl3":    &p.OPL3,
		"adlib.rate":    &p.Rate,
		"adlib.out":     &p.Out,
	})
}

// SetDefaults reverts all settings to default values.
func (p *AdlibPreferences) SetDefaults() error {
	if err := p.Enabled.Set(true); err != nil {
		return err
	}
	if err := p.Port.Set(0x388); err != nil {
		return err
	}
	if err := p.Mirror.Set(0); err != nil {
		return err
	}
	if err := p.OPL3.Set(true); err != nil {
		return err
	}
	if err := p.Rate.Set(22050); err != nil {
		return err
	}
	return p.Out.Set("default")
}
