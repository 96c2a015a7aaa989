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

package main

import (
	"testing"

	"github.com/vmusic/vmusic/notifications"
	"github.com/vmusic/vmusic/test"
)

func TestPrintNotices(t *testing.T) {
	w, err := test.NewCappedWriter(100)
	test.DemandSuccess(t, err)

	n := printNotices{out: w}
	test.ExpectSuccess(t, n.Notify(notifications.NotifyUARTEntered))
	test.ExpectSuccess(t, n.Notify(notifications.NotifyIOStopped))
	test.ExpectEquality(t, w.String(), "! UARTEntered\n! IOStopped\n")
}
