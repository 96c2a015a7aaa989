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

package ringbuf

import (
	"fmt"
	"sync"
)

// Buffer is a fixed capacity circular byte buffer. It is safe for one producer
// and one consumer to use the buffer at the same time.
//
// The producer acquires a contiguous block of free space with AcquireWrite(),
// fills as much of it as it needs and then commits the bytes with
// ReleaseWrite(). The consumer does the same with AcquireRead() and
// ReleaseRead(). The lock is held only while the cursors are being changed.
type Buffer struct {
	crit sync.Mutex
	data []byte

	// position of the oldest byte and number of bytes in the buffer
	head int
	used int

	// size of the outstanding acquired blocks
	writeBlock int
	readBlock  int
}

func (b *Buffer) String() string {
	b.crit.Lock()
	defer b.crit.Unlock()
	return fmt.Sprintf("%d/%d", b.used, len(b.data))
}

// New is the preferred method of initialisation for the Buffer type.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		panic(fmt.Sprintf("ringbuf: invalid capacity (%d)", capacity))
	}
	return &Buffer{
		data: make([]byte, capacity),
	}
}

// Capacity returns the maximum number of bytes the buffer can hold.
func (b *Buffer) Capacity() int {
	return len(b.data)
}

// Used returns the number of bytes in the buffer.
func (b *Buffer) Used() int {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.used
}

// Free returns the amount of space in the buffer.
func (b *Buffer) Free() int {
	b.crit.Lock()
	defer b.crit.Unlock()
	return len(b.data) - b.used
}

// Clear the contents of the buffer. Must not be called while a block is
// acquired.
func (b *Buffer) Clear() {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.head = 0
	b.used = 0
	b.writeBlock = 0
	b.readBlock = 0
}

// AcquireWrite returns the largest contiguous block of free space, up to max
// bytes. The block may be shorter than the total amount of free space if the
// free space wraps around the end of the buffer. The returned slice is empty
// if the buffer is full.
//
// The block belongs to the producer until ReleaseWrite() is called.
func (b *Buffer) AcquireWrite(max int) []byte {
	b.crit.Lock()
	defer b.crit.Unlock()

	tail := (b.head + b.used) % len(b.data)
	n := min(len(b.data)-b.used, len(b.data)-tail, max)
	if n < 0 {
		n = 0
	}
	b.writeBlock = n
	return b.data[tail : tail+n]
}

// ReleaseWrite commits n bytes of the block returned by AcquireWrite(). The
// value of n is clamped to the size of the acquired block.
func (b *Buffer) ReleaseWrite(n int) {
	b.crit.Lock()
	defer b.crit.Unlock()
	n = max(0, min(n, b.writeBlock))
	b.used += n
	b.writeBlock = 0
}

// AcquireRead returns the largest contiguous block of buffered bytes, up to
// max bytes. The returned slice is empty if the buffer is empty.
//
// The block belongs to the consumer until ReleaseRead() is called.
func (b *Buffer) AcquireRead(max int) []byte {
	b.crit.Lock()
	defer b.crit.Unlock()

	n := min(b.used, len(b.data)-b.head, max)
	if n < 0 {
		n = 0
	}
	b.readBlock = n
	return b.data[b.head : b.head+n]
}

// ReleaseRead consumes n bytes of the block returned by AcquireRead(). The
// value of n is clamped to the size of the acquired block.
func (b *Buffer) ReleaseRead(n int) {
	b.crit.Lock()
	defer b.crit.Unlock()
	n = max(0, min(n, b.readBlock))
	b.head = (b.head + n) % len(b.data)
	b.used -= n
	b.readBlock = 0
}

// Put a single byte into the buffer. Returns false if the buffer is full, in
// which case the byte is dropped.
func (b *Buffer) Put(v byte) bool {
	p := b.AcquireWrite(1)
	if len(p) == 0 {
		b.ReleaseWrite(0)
		return false
	}
	p[0] = v
	b.ReleaseWrite(1)
	return true
}

// Get a single byte from the buffer. Returns false if the buffer is empty.
func (b *Buffer) Get() (byte, bool) {
	p := b.AcquireRead(1)
	if len(p) == 0 {
		b.ReleaseRead(0)
		return 0, false
	}
	v := p[0]
	b.ReleaseRead(1)
	return v, true
}

// Peek returns the oldest byte in the buffer without removing it. Returns false
// if the buffer is empty.
func (b *Buffer) Peek() (byte, bool) {
	b.crit.Lock()
	defer b.crit.Unlock()
	if b.used == 0 {
		return 0, false
	}
	return b.data[b.head], true
}
