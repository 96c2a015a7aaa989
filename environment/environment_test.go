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

package environment_test

import (
	"path/filepath"
	"testing"

	"github.com/vmusic/vmusic/environment"
	"github.com/vmusic/vmusic/hardware/preferences"
	"github.com/vmusic/vmusic/logger"
	"github.com/vmusic/vmusic/notifications"
	"github.com/vmusic/vmusic/prefs"
	"github.com/vmusic/vmusic/test"
)

func TestEnvironment(t *testing.T) {
	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), prefs.DefaultPrefsFile))
	test.DemandSuccess(t, err)

	main, err := environment.NewEnvironment(environment.MainEmulation, p)
	test.DemandSuccess(t, err)
	other, err := environment.NewEnvironment("other", p)
	test.DemandSuccess(t, err)

	var perm logger.Permission = main
	test.ExpectSuccess(t, perm.AllowLogging())
	test.ExpectFailure(t, other.AllowLogging())
	test.ExpectSuccess(t, other.IsEmulation("other"))

	// preferences are shared
	test.ExpectSuccess(t, main.Prefs.Adlib.Rate.Set(44100))
	test.ExpectEquality(t, other.Prefs.Adlib.Rate.Get().(int), 44100)
}

func TestNotify(t *testing.T) {
	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), prefs.DefaultPrefsFile))
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainEmulation, p)
	test.DemandSuccess(t, err)

	// no notifier attached
	test.ExpectSuccess(t, env.Notify(notifications.NotifyUARTEntered))

	var r notifications.Recorder
	env.AttachNotifier(&r)
	test.ExpectSuccess(t, env.Notify(notifications.NotifyUARTEntered))
	env.AttachNotifier(nil)
	test.ExpectSuccess(t, env.Notify(notifications.NotifyUARTLeft))

	test.ExpectEquality(t, r.Count(notifications.NotifyUARTEntered), 1)
	test.ExpectEquality(t, r.Count(notifications.NotifyUARTLeft), 0)
}
