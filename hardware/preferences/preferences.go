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

	"github.com/vmusic/vmusic/curated"
	"github.com/vmusic/vmusic/paths"
	"github.com/vmusic/vmusic/prefs"
)

// Preferences defines and collates all the preference values used by the
// emulated devices.
type Preferences struct {
	dsk *prefs.Disk

	Adlib   AdlibPreferences
	EMU8000 EMU8000Preferences
	MPU401  MPU401Preferences
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. If pth is empty the preferences file in the resource path is used.
//
// A missing preferences file is not an error. The default values are used in
// that case.
func NewPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.Adlib.setHooks()
	p.EMU8000.setHooks()
	p.MPU401.setHooks()

	if err := p.SetDefaults(); err != nil {
		return nil, err
	}

	if pth == "" {
		pth = paths.ResourcePath(prefs.DefaultPrefsFile)
	}

	var err error

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	if err := p.Adlib.add(p.dsk); err != nil {
		return nil, err
	}
	if err := p.EMU8000.add(p.dsk); err != nil {
		return nil, err
	}
	if err := p.MPU401.add(p.dsk); err != nil {
		return nil, err
	}

	err = p.dsk.Load()
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() error {
	if err := p.Adlib.SetDefaults(); err != nil {
		return err
	}
	if err := p.EMU8000.SetDefaults(); err != nil {
		return err
	}
	return p.MPU401.SetDefaults()
}

// Load current preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// the validation hooks shared by the device groups

func nonZeroPort(v prefs.Value) error {
	if v.(uint16) == 0 {
		return fmt.Errorf("preferences: port cannot be zero")
	}
	return nil
}

func sampleRate(v prefs.Value) error {
	r := v.(int)
	if r < 8000 || r > 96000 {
		return fmt.Errorf("preferences: sample rate out of range (%d)", r)
	}
	return nil
}

func add(dsk *prefs.Disk, entries map[string]prefs.Pref) error {
	for k, p := range entries {
		if err := dsk.Add(k, p); err != nil {
			return err
		}
	}
	return nil
}
