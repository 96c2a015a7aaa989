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

package test_test

import (
	"errors"
	"testing"

	"github.com/vmusic/vmusic/test"
)

func TestExpectFailure(t *testing.T) {
	test.ExpectFailure(t, false)
	test.ExpectFailure(t, errors.New("test"))
}

func TestExpectSuccess(t *testing.T) {
	test.ExpectSuccess(t, true)
	var err error
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, nil)
}

func TestExpectEquality(t *testing.T) {
	test.ExpectEquality(t, 10, 5+5)
	test.ExpectEquality(t, true, !false)
	test.ExpectInequality(t, 11, 5+5)
}

func TestExpectApproximate(t *testing.T) {
	test.ExpectApproximate(t, 10, 11, 0.1)
	test.ExpectApproximate(t, uint64(1000), 1005, 0.01)
}

func TestRingWriter(t *testing.T) {
	r, err := test.NewRingWriter(8)
	test.DemandSuccess(t, err)

	r.Write([]byte("abc"))
	test.ExpectEquality(t, r.String(), "abc")
	r.Write([]byte("defgh"))
	test.ExpectEquality(t, r.String(), "abcdefgh")
	r.Write([]byte("ij"))
	test.ExpectEquality(t, r.String(), "cdefghij")
	r.Write([]byte("0123456789"))
	test.ExpectEquality(t, r.String(), "23456789")

	r.Reset()
	test.ExpectEquality(t, r.String(), "")

	_, err = test.NewRingWriter(0)
	test.ExpectFailure(t, err)
}

func TestCappedWriter(t *testing.T) {
	c, err := test.NewCappedWriter(5)
	test.DemandSuccess(t, err)

	n, _ := c.Write([]byte("abc"))
	test.ExpectEquality(t, n, 3)
	n, _ = c.Write([]byte("defg"))
	test.ExpectEquality(t, n, 2)
	test.ExpectEquality(t, c.String(), "abcde")
	n, _ = c.Write([]byte("x"))
	test.ExpectEquality(t, n, 0)
}
