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

package script

import (
	"context"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/vmusic/vmusic/hardware"
	"github.com/vmusic/vmusic/logger"
)

// the interval at which waitirq() checks the interrupt line
const pollInterval = time.Millisecond

// Script is a Lua program attached to a Machine.
type Script struct {
	env     logger.Permission
	machine *hardware.Machine
	state   *lua.LState
}

// NewScript is the preferred method of initialisation for the Script type.
func NewScript(env logger.Permission, machine *hardware.Machine) *Script {
	scr := &Script{
		env:     env,
		machine: machine,
		state:   lua.NewState(),
	}

	for name, fn := range map[string]lua.LGFunction{
		"outb":    scr.out(1),
		"outw":    scr.out(2),
		"outd":    scr.out(4),
		"inb":     scr.in(1),
		"inw":     scr.in(2),
		"ind":     scr.in(4),
		"sleep":   scr.sleep,
		"irq":     scr.irq,
		"waitirq": scr.waitirq,
		"reset":   scr.reset,
		"devices": scr.devices,
		"log":     scr.log,
	} {
		scr.state.SetGlobal(name, scr.state.NewFunction(fn))
	}

	return scr
}

// Close the Lua state. The Script cannot be used after Close().
func (scr *Script) Close() {
	scr.state.Close()
}

// Run the program in the named file.
func (scr *Script) Run(ctx context.Context, filename string) error {
	scr.state.SetContext(ctx)
	defer scr.state.RemoveContext()

	logger.Logf(scr.env, "script", "running %s", filename)
	if err := scr.state.DoFile(filename); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// RunString runs the program in the string.
func (scr *Script) RunString(ctx context.Context, program string) error {
	scr.state.SetContext(ctx)
	defer scr.state.RemoveContext()

	if err := scr.state.DoString(program); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

func checkPort(L *lua.LState, n int) uint16 {
	port := L.CheckInt64(n)
	if port < 0 || port > 0xffff {
		L.ArgError(n, fmt.Sprintf("port out of range (%#x)", port))
	}
	return uint16(port)
}

func (scr *Script) out(width int) lua.LGFunction {
	limit := int64(1)<<(width*8) - 1
	return func(L *lua.LState) int {
		port := checkPort(L, 1)
		value := L.CheckInt64(2)
		if value < 0 || value > limit {
			L.ArgError(2, fmt.Sprintf("value out of range (%#x)", value))
		}
		scr.machine.Bus.Write(port, width, uint32(value))
		return 0
	}
}

func (scr *Script) in(width int) lua.LGFunction {
	return func(L *lua.LState) int {
		port := checkPort(L, 1)
		L.Push(lua.LNumber(scr.machine.Bus.Read(port, width)))
		return 1
	}
}

// pause for the duration. returns false if the context is cancelled
func pause(ctx context.Context, d time.Duration) bool {
	if ctx == nil {
		time.Sleep(d)
		return true
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (scr *Script) sleep(L *lua.LState) int {
	ms := L.CheckNumber(1)
	if ms < 0 {
		L.ArgError(1, "negative duration")
	}
	if !pause(L.Context(), time.Duration(float64(ms)*float64(time.Millisecond))) {
		L.RaiseError("sleep: %v", L.Context().Err())
	}
	return 0
}

func (scr *Script) irq(L *lua.LState) int {
	L.Push(lua.LBool(scr.machine.IRQ.Level(L.CheckInt(1))))
	return 1
}

func (scr *Script) waitirq(L *lua.LState) int {
	n := L.CheckInt(1)
	timeout := time.Duration(float64(L.CheckNumber(2)) * float64(time.Millisecond))

	deadline := time.Now().Add(timeout)
	for !scr.machine.IRQ.Level(n) {
		if time.Now().After(deadline) {
			L.Push(lua.LFalse)
			return 1
		}
		if !pause(L.Context(), pollInterval) {
			L.RaiseError("waitirq: %v", L.Context().Err())
		}
	}

	L.Push(lua.LTrue)
	return 1
}

func (scr *Script) reset(L *lua.LState) int {
	scr.machine.Reset()
	return 0
}

func (scr *Script) devices(L *lua.LState) int {
	t := L.NewTable()
	for _, n := range scr.machine.Devices() {
		t.Append(lua.LString(n))
	}
	L.Push(t)
	return 1
}

func (scr *Script) log(L *lua.LState) int {
	s := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		v := L.Get(i)
		if n, ok := v.(lua.LNumber); ok && float64(n) == float64(int64(n)) {
			s = append(s, fmt.Sprintf("%#x", int64(n)))
			continue
		}
		s = append(s, v.String())
	}
	logger.Log(scr.env, "script", strings.Join(s, " "))
	return 0
}
