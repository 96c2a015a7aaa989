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

package adlib_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vmusic/vmusic/hardware/adlib"
	"github.com/vmusic/vmusic/hardware/clocks"
	"github.com/vmusic/vmusic/hardware/ioport"
	"github.com/vmusic/vmusic/hardware/state"
	"github.com/vmusic/vmusic/notifications"
	"github.com/vmusic/vmusic/test"
)

type env struct {
	notifications.Recorder
}

func (*env) AllowLogging() bool {
	return true
}

const base = 0x388

func newAdlib(t *testing.T, opl3 bool) (*adlib.Adlib, *ioport.Bus, *clocks.Manual) {
	t.Helper()

	e := &env{}
	clk := clocks.NewManual(1000000)
	adl, err := adlib.NewAdlib(e, clk, adlib.Config{
		Port: base,
		OPL3: opl3,
		Rate: 22050,
		Out:  "null",
	})
	test.DemandSuccess(t, err)

	bus := ioport.NewBus(e)
	test.DemandSuccess(t, adl.Map(bus))

	t.Cleanup(func() {
		test.ExpectSuccess(t, adl.Destroy())
	})

	return adl, bus, clk
}

func writeReg(bus *ioport.Bus, reg uint8, val uint8) {
	bus.Write(base+adlib.PortAddr, 1, uint32(reg))
	bus.Write(base+adlib.PortData, 1, uint32(val))
}

func status(bus *ioport.Bus) uint8 {
	return uint8(bus.Read(base+adlib.PortStatus, 1))
}

func TestTimerScenario(t *testing.T) {
	_, bus, clk := newAdlib(t, true)

	writeReg(bus, adlib.RegTimer1, 0x38)
	writeReg(bus, adlib.RegTimerControl, 0x01)

	// (256-0x38) * 80us = 16000us
	clk.Advance(15999)
	test.ExpectEquality(t, status(bus), 0)

	clk.Advance(1)
	test.ExpectEquality(t, status(bus), 0)

	clk.Advance(1)
	test.ExpectEquality(t, status(bus), adlib.StatusIRQ|adlib.StatusTimer1)
}

func TestTimer2(t *testing.T) {
	_, bus, clk := newAdlib(t, true)

	// timer 1 is masked. only timer 2 is started
	writeReg(bus, adlib.RegTimer2, 0xff)
	writeReg(bus, adlib.RegTimerControl, 0x43)

	clk.Advance(321)
	test.ExpectEquality(t, status(bus), adlib.StatusIRQ|adlib.StatusTimer2)

	// writing the reload value while enabled rearms the timer
	writeReg(bus, adlib.RegTimer2, 0xfe)
	test.ExpectEquality(t, status(bus), 0)
	clk.Advance(641)
	test.ExpectEquality(t, status(bus), adlib.StatusIRQ|adlib.StatusTimer2)
}

func TestShortDelayExpiresImmediately(t *testing.T) {
	_, bus, clk := newAdlib(t, true)

	// 80us is below the threshold
	writeReg(bus, adlib.RegTimer1, 0xff)
	writeReg(bus, adlib.RegTimerControl, 0x01)
	clk.Advance(1)
	test.ExpectEquality(t, status(bus), adlib.StatusIRQ|adlib.StatusTimer1)
}

func TestMasterReset(t *testing.T) {
	_, bus, clk := newAdlib(t, true)

	writeReg(bus, adlib.RegTimer1, 0xff)
	writeReg(bus, adlib.RegTimer2, 0xff)
	writeReg(bus, adlib.RegTimerControl, 0x03)
	clk.Advance(1000)
	test.ExpectEquality(t, status(bus), adlib.StatusIRQ|adlib.StatusTimer1|adlib.StatusTimer2)

	// the reset bit disables both timers. the start bits are ignored
	writeReg(bus, adlib.RegTimerControl, 0x83)
	test.ExpectEquality(t, status(bus), 0)
	clk.Advance(1000)
	test.ExpectEquality(t, status(bus), 0)
}

func TestOPL2(t *testing.T) {
	adl, bus, _ := newAdlib(t, false)
	test.ExpectEquality(t, adl.NumPorts(), adlib.OPL2Ports)

	// the OPL2 signature is always present in the status register
	test.ExpectEquality(t, status(bus), adlib.StatusOPL2)

	// ports beyond the OPL2 ports are not mapped
	test.ExpectEquality(t, bus.Read(base+adlib.PortAddr2, 1), uint32(ioport.Sentinel))
	test.ExpectEquality(t, len(bus.Mappings()), 1)
}

func TestInvalidAccess(t *testing.T) {
	adl, bus, _ := newAdlib(t, true)

	// the data port cannot be read
	test.ExpectEquality(t, bus.Read(base+adlib.PortData, 1), uint32(ioport.Sentinel))

	// only byte access is allowed
	_, ok := adl.ReadPort(adlib.PortStatus, 2)
	test.ExpectFailure(t, ok)
	test.ExpectFailure(t, adl.WritePort(adlib.PortData, 2, 0))
	test.ExpectEquality(t, adl.Thread().Worker().Generation(), 0)
}

func TestWake(t *testing.T) {
	adl, bus, _ := newAdlib(t, true)
	w := adl.Thread().Worker()

	// timer registers do not wake the render thread
	writeReg(bus, adlib.RegTimer1, 0x10)
	writeReg(bus, adlib.RegTimerControl, 0x80)
	test.ExpectEquality(t, w.Generation(), 0)

	// any other register does
	writeReg(bus, 0xa0, 0x41)
	test.ExpectEquality(t, w.Generation(), 1)
	test.ExpectSuccess(t, w.Running())

	// and further writes do not start a second thread
	writeReg(bus, 0xb0, 0x32)
	bus.Write(base+adlib.PortAddr2, 1, 0x05)
	bus.Write(base+adlib.PortData2, 1, 0x01)
	test.ExpectEquality(t, w.Generation(), 1)

	adl.Suspend()
	deadline := time.Now().Add(time.Second)
	for w.Running() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	test.ExpectFailure(t, w.Running())
	test.ExpectSuccess(t, w.ShutdownRequested())
}

func TestReset(t *testing.T) {
	adl, bus, clk := newAdlib(t, true)

	writeReg(bus, adlib.RegTimer1, 0xff)
	writeReg(bus, adlib.RegTimerControl, 0x01)
	clk.Advance(1000)
	test.ExpectEquality(t, status(bus), adlib.StatusIRQ|adlib.StatusTimer1)

	adl.Reset()
	test.ExpectEquality(t, status(bus), 0)

	// the register selector is cleared by the reset. a data write now goes to
	// register zero rather than the timer control register
	bus.Write(base+adlib.PortAddr, 1, adlib.RegTimerControl)
	adl.Reset()
	bus.Write(base+adlib.PortData, 1, 0x01)
	test.ExpectEquality(t, adl.Thread().Worker().Generation(), 1)
}

func TestSnapshot(t *testing.T) {
	adl, bus, clk := newAdlib(t, true)

	writeReg(bus, adlib.RegTimer1, 0x38)
	writeReg(bus, adlib.RegTimer2, 0x10)
	writeReg(bus, adlib.RegTimerControl, 0x01)
	bus.Write(base+adlib.PortAddr2, 1, 0x04)

	data := adl.Snapshot()
	test.ExpectEquality(t, len(data), 2+1+1+8+8+1+1)

	adl.Reset()
	test.ExpectEquality(t, status(bus), 0)

	test.DemandSuccess(t, adl.Restore(adlib.Version, data))
	clk.Advance(16001)
	test.ExpectEquality(t, status(bus), adlib.StatusIRQ|adlib.StatusTimer1)

	// the snapshot taken after restoration is identical
	test.ExpectEquality(t, string(adl.Snapshot()), string(data))
}

func TestSnapshotVersion(t *testing.T) {
	adl, bus, clk := newAdlib(t, true)

	writeReg(bus, adlib.RegTimer1, 0xff)
	writeReg(bus, adlib.RegTimerControl, 0x01)
	data := adl.Snapshot()

	adl.Reset()

	// a newer version is rejected without any change to the device
	err := adl.Restore(adlib.Version+1, data)
	test.ExpectSuccess(t, errors.Is(err, state.ErrUnsupportedVersion))
	clk.Advance(1000)
	test.ExpectEquality(t, status(bus), 0)

	// as is short data
	err = adl.Restore(adlib.Version, data[:5])
	test.ExpectSuccess(t, errors.Is(err, state.ErrShortData))
	test.ExpectEquality(t, status(bus), 0)
}
