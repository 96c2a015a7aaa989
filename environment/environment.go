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

package environment

import (
	"sync"

	"github.com/vmusic/vmusic/hardware/preferences"
	"github.com/vmusic/vmusic/notifications"
)

// Label is used to name the environment.
type Label string

// MainEmulation is the label used for the main machine. Only the main machine
// is allowed to log.
const MainEmulation = Label("")

// Environment is used to provide context for a machine. Particularly useful
// when running more than one machine, for example in tests.
type Environment struct {
	Label Label

	// the device preferences
	Prefs *preferences.Preferences

	crit     sync.Mutex
	notifier notifications.Notify
}

// NewEnvironment is the preferred method of initialisation for the Environment
// type.
//
// The prefs argument can be nil, in which case a new Preferences instance will
// be created from the preferences file. Providing a non-nil value allows the
// preferences of more than one machine to be synchronised.
func NewEnvironment(label Label, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Label: label,
	}

	if prefs == nil {
		var err error
		prefs, err = preferences.NewPreferences("")
		if err != nil {
			return nil, err
		}
	}

	env.Prefs = prefs

	return env, nil
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return env.IsMainEmulation()
}

// IsMainEmulation returns true if the environment is intended for the main
// machine.
func (env *Environment) IsMainEmulation() bool {
	return env.Label == MainEmulation
}

// IsEmulation checks the emulation label and returns true if it matches.
func (env *Environment) IsEmulation(label Label) bool {
	return env.Label == label
}

// AttachNotifier sets the destination of notices raised by the devices. A
// value of nil detaches the current notifier.
func (env *Environment) AttachNotifier(n notifications.Notify) {
	env.crit.Lock()
	defer env.crit.Unlock()
	env.notifier = n
}

// Notify implements the notifications.Notify interface. The notice is
// forwarded to the attached notifier. It is ignored if there is no notifier.
//
// Safe to call from the render and I/O threads.
func (env *Environment) Notify(notice notifications.Notice) error {
	env.crit.Lock()
	n := env.notifier
	env.crit.Unlock()

	if n == nil {
		return nil
	}
	return n.Notify(notice)
}
