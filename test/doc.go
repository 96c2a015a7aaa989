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

// Package test contains helper functions that remove common boilerplate from
// the tests of other packages.
//
// The Expect functions report a failed test but allow the test to continue.
// The Demand functions stop the test immediately. Demand functions are useful
// when the value being tested is required by later parts of the test (for
// example, the length of a buffer before it is indexed).
//
// ExpectSuccess() and ExpectFailure() test for success and failure under
// generic conditions. A bool is successful if it is true and an error is
// successful if it is nil. An untyped nil is treated as a success value because
// that is how a nil error is passed through an interface.
//
// Every function accepts optional tags that are prepended to the failure
// message. Tags are useful when a test is run in a loop:
//
//	for i, v := range tests {
//		test.ExpectEquality(t, f(v.in), v.out, i)
//	}
//
// The RingWriter and CappedWriter types implement io.Writer and are useful for
// capturing output.
package test
