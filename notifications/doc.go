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

// Package notifications allow communication from a device directly to the
// host. This is useful, for example, to indicate that the render thread of a
// device has started or stopped.
//
// Notifications are sometimes passed onto the user as a log entry. For some
// notifications however, it is appropriate for the host to deal with the
// notification invisibly.
package notifications
