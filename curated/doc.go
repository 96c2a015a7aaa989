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

// Package curated creates error values that remember the pattern they were
// created with. A curated error is created with Errorf(), which takes the same
// arguments as fmt.Errorf().
//
// Errors can be tested against a pattern with Is() and Has():
//
//	err := curated.Errorf(emu8k.ROMSizeError, len(rom))
//
//	if curated.Is(err, emu8k.ROMSizeError) {
//		...
//	}
//
// Has() answers whether the pattern appears anywhere in the chain of curated
// errors. The chain is formed when a curated error is used as one of the
// values of another curated error.
//
//	err = curated.Errorf("emu8000: %w", err)
//	curated.Is(err, emu8k.ROMSizeError)  // false
//	curated.Has(err, emu8k.ROMSizeError) // true
//
// Curated errors work with the errors package. Any value formatted with the
// %w verb can be retrieved with errors.Unwrap(), errors.Is() and errors.As().
//
// The Error() function removes a repeated leading part of the message. This
// means that a package can wrap an error with its own name without worrying
// that the callee has already done so.
//
//	"prefs: prefs: file not found" -> "prefs: file not found"
package curated
