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

package state

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Sentinel errors returned by the Decoder.
var (
	ErrUnsupportedVersion = errors.New("state: unsupported version")
	ErrShortData          = errors.New("state: short data")
	ErrTrailingData       = errors.New("state: trailing data")
)

// CheckVersion returns an error wrapping ErrUnsupportedVersion if version is
// newer than the supported version.
func CheckVersion(unit string, version uint32, supported uint32) error {
	if version > supported {
		return fmt.Errorf("%s: %w (%d > %d)", unit, ErrUnsupportedVersion, version, supported)
	}
	return nil
}

// Encoder builds a little-endian state unit.
type Encoder struct {
	data []byte
}

// PutU8 appends a byte.
func (enc *Encoder) PutU8(v uint8) {
	enc.data = append(enc.data, v)
}

// PutBool appends a boolean as a single byte.
func (enc *Encoder) PutBool(v bool) {
	if v {
		enc.PutU8(1)
	} else {
		enc.PutU8(0)
	}
}

// PutU16 appends a 16 bit value.
func (enc *Encoder) PutU16(v uint16) {
	enc.data = binary.LittleEndian.AppendUint16(enc.data, v)
}

// PutU32 appends a 32 bit value.
func (enc *Encoder) PutU32(v uint32) {
	enc.data = binary.LittleEndian.AppendUint32(enc.data, v)
}

// PutU64 appends a 64 bit value.
func (enc *Encoder) PutU64(v uint64) {
	enc.data = binary.LittleEndian.AppendUint64(enc.data, v)
}

// PutString appends a string prefixed with its length as a 16 bit value.
// Strings longer than 65535 bytes are truncated.
func (enc *Encoder) PutString(s string) {
	if len(s) > 0xffff {
		s = s[:0xffff]
	}
	enc.PutU16(uint16(len(s)))
	enc.data = append(enc.data, s...)
}

// PutBytes appends a byte slice prefixed with its length as a 32 bit value.
func (enc *Encoder) PutBytes(b []byte) {
	enc.PutU32(uint32(len(b)))
	enc.data = append(enc.data, b...)
}

// Bytes returns the encoded data.
func (enc *Encoder) Bytes() []byte {
	return enc.data
}

// Decoder reads values from a state unit. The first error is sticky. Once an
// error has occurred all further reads return zero values and the error is
// returned by Err().
type Decoder struct {
	data []byte
	pos  int
	err  error
}

// NewDecoder is the preferred method of initialisation for the Decoder type.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

func (dec *Decoder) take(n int) []byte {
	if dec.err != nil {
		return nil
	}
	if dec.pos+n > len(dec.data) {
		dec.err = fmt.Errorf("%w (wanted %d bytes at offset %d)", ErrShortData, n, dec.pos)
		return nil
	}
	b := dec.data[dec.pos : dec.pos+n]
	dec.pos += n
	return b
}

// U8 reads a byte.
func (dec *Decoder) U8() uint8 {
	b := dec.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// Bool reads a boolean. Any non-zero byte is true.
func (dec *Decoder) Bool() bool {
	return dec.U8() != 0
}

// U16 reads a 16 bit value.
func (dec *Decoder) U16() uint16 {
	b := dec.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// U32 reads a 32 bit value.
func (dec *Decoder) U32() uint32 {
	b := dec.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// U64 reads a 64 bit value.
func (dec *Decoder) U64() uint64 {
	b := dec.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// String reads a string written by Encoder.PutString().
func (dec *Decoder) String() string {
	n := dec.U16()
	return string(dec.take(int(n)))
}

// Bytes reads a byte slice written by Encoder.PutBytes(). The returned slice
// refers to the decoder's data.
func (dec *Decoder) Bytes() []byte {
	n := dec.U32()
	return dec.take(int(n))
}

// Err returns the first error encountered by the decoder.
func (dec *Decoder) Err() error {
	return dec.err
}

// Finish returns the first error encountered by the decoder or an error if
// there is unread data.
func (dec *Decoder) Finish() error {
	if dec.err != nil {
		return dec.err
	}
	if dec.pos != len(dec.data) {
		return fmt.Errorf("%w (%d bytes)", ErrTrailingData, len(dec.data)-dec.pos)
	}
	return nil
}
