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

package state_test

import (
	"errors"
	"testing"

	"github.com/vmusic/vmusic/hardware/state"
	"github.com/vmusic/vmusic/test"
)

func TestRoundTrip(t *testing.T) {
	var enc state.Encoder
	enc.PutU16(0x1bd)
	enc.PutU8(0x38)
	enc.PutBool(true)
	enc.PutU64(0x0102030405060708)
	enc.PutString("adlib")
	enc.PutBytes([]byte{1, 2, 3})

	// 16 bit values are little-endian
	test.ExpectEquality(t, enc.Bytes()[0], 0xbd)
	test.ExpectEquality(t, enc.Bytes()[1], 0x01)

	dec := state.NewDecoder(enc.Bytes())
	test.ExpectEquality(t, dec.U16(), 0x1bd)
	test.ExpectEquality(t, dec.U8(), 0x38)
	test.ExpectEquality(t, dec.Bool(), true)
	test.ExpectEquality(t, dec.U64(), 0x0102030405060708)
	test.ExpectEquality(t, dec.String(), "adlib")
	test.ExpectEquality(t, len(dec.Bytes()), 3)
	test.ExpectSuccess(t, dec.Finish())
}

func TestShortData(t *testing.T) {
	dec := state.NewDecoder([]byte{1, 2, 3})
	test.ExpectEquality(t, dec.U16(), 0x0201)
	test.ExpectEquality(t, dec.U16(), 0)
	test.ExpectSuccess(t, errors.Is(dec.Err(), state.ErrShortData))

	// error is sticky
	test.ExpectEquality(t, dec.U8(), 0)
	test.ExpectSuccess(t, errors.Is(dec.Finish(), state.ErrShortData))
}

func TestTrailingData(t *testing.T) {
	dec := state.NewDecoder([]byte{1, 2})
	dec.U8()
	test.ExpectSuccess(t, dec.Err())
	test.ExpectSuccess(t, errors.Is(dec.Finish(), state.ErrTrailingData))
}

func TestVersion(t *testing.T) {
	test.ExpectSuccess(t, state.CheckVersion("adlib", 1, 1))
	test.ExpectSuccess(t, state.CheckVersion("adlib", 0, 1))
	err := state.CheckVersion("adlib", 2, 1)
	test.ExpectSuccess(t, errors.Is(err, state.ErrUnsupportedVersion))
}
