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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Whereas with flag.FlagSet you call Parse() with the array of strings as the
// only argument, with modalflag you first call NewArgs() with the array of
// arguments and then Parse() with no arguments:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "PROBE", "SAMPLE")
//	p, err := md.Parse()
//
// After parsing, Mode() returns the selected mode. The first sub-mode in the
// list is the default and is selected if the first non-flag argument is not a
// listed mode. Sub-mode comparisons are case insensitive.
//
// Each mode can then have its own flags. NewMode() starts a new layer of
// parsing from where the previous call to Parse() finished:
//
//	switch md.Mode() {
//	case "PROBE":
//		md.NewMode()
//		port := md.AddPort("adlib", 0x388, "adlib base port")
//		p, err := md.Parse()
//		...
//		probe(*port, md.RemainingArgs())
//	}
//
// The flag functions return a pointer to a variable of the specified type. The
// variable holds the default value until Parse() is called.
//
// Help messages are printed automatically when the -help flag is given. In
// that case Parse() returns ParseHelp.
package modalflag
