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

package mpu401

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/vmusic/vmusic/hardware/ioport"
	"github.com/vmusic/vmusic/hardware/irq"
	"github.com/vmusic/vmusic/hardware/ringbuf"
	"github.com/vmusic/vmusic/hardware/worker"
	"github.com/vmusic/vmusic/logger"
	"github.com/vmusic/vmusic/midi"
	"github.com/vmusic/vmusic/notifications"
)

// Name of the device. Used as the tag for log entries and for the snapshot
// unit.
const Name = "mpu401"

// Port offsets from the base port.
const (
	PortData    = 0
	PortStatus  = 1
	PortCommand = 1
	NumPorts    = 2
)

// Commands written to the command port.
const (
	CmdEnterUART = 0x3f
	CmdReset     = 0xff
)

// ACK is the response to a command. It is also the value read from the data
// port when there is nothing to read.
const ACK = 0xfe

// Status register bits.
const (
	// the transmit buffer is full
	StatusOutputNotReady = 0x40

	// the receive buffer is empty
	StatusInputNotReady = 0x80
)

// BufferSize is the capacity of the transmit and receive buffers.
const BufferSize = 256

// Env is the environment required by the device.
type Env interface {
	logger.Permission
	notifications.Notify
}

// Config is the configuration of the MPU-401 device.
type Config struct {
	Port uint16

	// name of the MIDI transport. see midi.Select()
	Transport string
}

// MPU401 is a MIDI interface in UART mode.
type MPU401 struct {
	env Env
	cfg Config

	line      *irq.Line
	transport midi.Transport

	// held while the receive buffer and the level of the line are changed
	// together. the line is high exactly when the receive buffer is not empty
	irqCrit sync.Mutex

	// guest to transport and transport to guest
	tx *ringbuf.Buffer
	rx *ringbuf.Buffer

	uart atomic.Bool

	worker *worker.Worker
}

// NewMPU401 is the preferred method of initialisation for the MPU401 type.
// The transport is opened immediately. A nil interrupt line is replaced with a
// detached line.
func NewMPU401(env Env, line *irq.Line, cfg Config) (*MPU401, error) {
	transport, err := midi.Open(cfg.Transport)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Name, err)
	}

	if line == nil {
		line = irq.NewDetached()
	}

	mpu := &MPU401{
		env:       env,
		cfg:       cfg,
		line:      line,
		transport: transport,
		tx:        ringbuf.New(BufferSize),
		rx:        ringbuf.New(BufferSize),
	}

	mpu.worker = worker.NewWorker(env, Name, mpu.run)
	mpu.worker.Interrupt = func() {
		_ = mpu.transport.PollInterrupt()
	}

	logger.Logf(env, Name, "using MIDI transport %q on %s", cfg.Transport, line)

	return mpu, nil
}

func (mpu *MPU401) String() string {
	mode := "NORMAL"
	if mpu.uart.Load() {
		mode = "UART"
	}
	return fmt.Sprintf("MPU-401 at %#04x (%s, tx %s, rx %s)", mpu.cfg.Port, mode, mpu.tx, mpu.rx)
}

// Map the device onto the bus.
func (mpu *MPU401) Map(bus *ioport.Bus) error {
	err := bus.Map(mpu.cfg.Port, NumPorts, mpu, Name)
	if err != nil {
		return err
	}
	logger.Logf(mpu.env, Name, "configured on ports %#04x-%#04x", mpu.cfg.Port, int(mpu.cfg.Port)+NumPorts-1)
	return nil
}

// Worker returns the worker that manages the I/O thread.
func (mpu *MPU401) Worker() *worker.Worker {
	return mpu.worker
}

// Line returns the interrupt line of the device.
func (mpu *MPU401) Line() *irq.Line {
	return mpu.line
}

// UART returns true if the device is in UART mode.
func (mpu *MPU401) UART() bool {
	return mpu.uart.Load()
}

// Status returns the value of the status register.
func (mpu *MPU401) Status() uint8 {
	var status uint8
	if mpu.tx.Free() == 0 {
		status |= StatusOutputNotReady
	}
	if mpu.rx.Used() == 0 {
		status |= StatusInputNotReady
	}
	return status
}

// ReadPort implements the ioport.Handler interface.
func (mpu *MPU401) ReadPort(offset uint16, width int) (uint32, bool) {
	if width != 1 {
		return 0, false
	}

	switch offset {
	case PortData:
		return uint32(mpu.readData()), true
	case PortStatus:
		return uint32(mpu.Status()), true
	}

	return 0, false
}

// WritePort implements the ioport.Handler interface.
func (mpu *MPU401) WritePort(offset uint16, width int, value uint32) bool {
	if width != 1 {
		return false
	}

	switch offset {
	case PortData:
		mpu.writeData(uint8(value))
	case PortCommand:
		mpu.command(uint8(value))
	default:
		return false
	}

	return true
}

// wake the I/O thread and have it look again at what it is waiting for
func (mpu *MPU401) wake() {
	// a failure to wake the thread is logged by the worker
	_ = mpu.worker.Wake()
	_ = mpu.transport.PollInterrupt()
}

func (mpu *MPU401) command(cmd uint8) {
	if mpu.uart.Load() {
		switch cmd {
		case CmdReset:
			// no acknowledgement in UART mode
			mpu.Reset()
		default:
			logger.Logf(mpu.env, Name, "unknown command in UART mode (%#02x)", cmd)
		}
		return
	}

	switch cmd {
	case CmdReset:
		mpu.Reset()
		mpu.respond(ACK)
	case CmdEnterUART:
		mpu.respond(ACK)
		mpu.uart.Store(true)
		logger.Log(mpu.env, Name, "entering UART mode")
		_ = mpu.env.Notify(notifications.NotifyUARTEntered)
		mpu.wake()
	default:
		logger.Logf(mpu.env, Name, "unknown command in NORMAL mode (%#02x)", cmd)
		mpu.respond(ACK)
	}
}

// put a response to a command into the receive buffer
func (mpu *MPU401) respond(v uint8) {
	mpu.irqCrit.Lock()
	defer mpu.irqCrit.Unlock()

	if !mpu.rx.Put(v) {
		logger.Logf(mpu.env, Name, "receive buffer full. dropping response (%#02x)", v)
		return
	}
	mpu.line.Raise()
}

func (mpu *MPU401) writeData(v uint8) {
	if !mpu.uart.Load() {
		logger.Logf(mpu.env, Name, "ignoring data in NORMAL mode (%#02x)", v)
		return
	}

	if !mpu.tx.Put(v) {
		logger.Logf(mpu.env, Name, "transmit buffer full. dropping data (%#02x)", v)
		return
	}

	mpu.wake()
}

func (mpu *MPU401) readData() uint8 {
	v, ok := mpu.consume()
	if !ok {
		logger.Log(mpu.env, Name, "read from empty receive buffer")
		return ACK
	}

	// there is room in the receive buffer again
	if mpu.uart.Load() {
		mpu.wake()
	}

	return v
}

// take the next byte from the receive buffer. the line is lowered and raised
// again only if there are more bytes to read
func (mpu *MPU401) consume() (uint8, bool) {
	mpu.irqCrit.Lock()
	defer mpu.irqCrit.Unlock()

	mpu.line.Lower()

	v, ok := mpu.rx.Get()
	if ok && mpu.rx.Used() > 0 {
		mpu.line.Raise()
	}

	return v, ok
}

// Reset the device to NORMAL mode. The I/O thread is suspended while the
// buffers and the transport are reset.
func (mpu *MPU401) Reset() {
	if err := mpu.worker.Stop(true); err != nil {
		logger.Logf(mpu.env, Name, "reset: %v", err)
	}
	mpu.tx.Clear()

	mpu.irqCrit.Lock()
	mpu.rx.Clear()
	mpu.line.Lower()
	mpu.irqCrit.Unlock()

	if err := mpu.transport.Reset(); err != nil {
		logger.Logf(mpu.env, Name, "reset: %v", err)
	}

	if mpu.uart.Swap(false) {
		logger.Log(mpu.env, Name, "leaving UART mode")
		_ = mpu.env.Notify(notifications.NotifyUARTLeft)
	}

	_ = mpu.worker.Wake()
	mpu.updateLine()
}

// raise the interrupt line if there are bytes waiting to be read
func (mpu *MPU401) updateLine() {
	mpu.irqCrit.Lock()
	defer mpu.irqCrit.Unlock()

	if mpu.rx.Used() > 0 {
		mpu.line.Raise()
	} else {
		mpu.line.Lower()
	}
}

// Suspend stops the I/O thread without waiting for it to finish.
func (mpu *MPU401) Suspend() {
	_ = mpu.worker.Stop(false)
}

// PowerOff stops the I/O thread and closes the transport.
func (mpu *MPU401) PowerOff() {
	if err := mpu.Destroy(); err != nil {
		logger.Logf(mpu.env, Name, "power off: %v", err)
	}
}

// Destroy stops the I/O thread, waiting for it to finish, and closes the
// transport. A transport that cannot be closed while the thread is still
// running is left open.
func (mpu *MPU401) Destroy() error {
	if err := mpu.worker.Stop(true); err != nil {
		return fmt.Errorf("%s: %w", Name, err)
	}
	if err := mpu.transport.Close(); err != nil {
		return fmt.Errorf("%s: %w", Name, err)
	}
	return nil
}
