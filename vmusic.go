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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/bradleyjkemp/memviz"
	"golang.org/x/term"

	"github.com/vmusic/vmusic/environment"
	"github.com/vmusic/vmusic/guest"
	"github.com/vmusic/vmusic/hardware"
	"github.com/vmusic/vmusic/hardware/emu8k"
	"github.com/vmusic/vmusic/logger"
	"github.com/vmusic/vmusic/midi/hostmidi"
	"github.com/vmusic/vmusic/modalflag"
	"github.com/vmusic/vmusic/notifications"
	"github.com/vmusic/vmusic/prefs"
	"github.com/vmusic/vmusic/sampleload"
	"github.com/vmusic/vmusic/script"
	"github.com/vmusic/vmusic/statsview"
	"github.com/vmusic/vmusic/version"

	// the raw transport registers itself with the midi package
	_ "github.com/vmusic/vmusic/midi/rawmidi"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"
)

type stateRequest struct {
	req  stateReq
	args any
}

// communication between the main() function and the launch() function. the
// main thread owns the interrupt signal and cancels the context when ctrl-c is
// pressed. a second ctrl-c quits immediately
type mainSync struct {
	state chan stateRequest
	ctx   context.Context
}

// #mainthread
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sync := &mainSync{
		state: make(chan stateRequest),
		ctx:   ctx,
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync)

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Print("\r")
			if ctx.Err() != nil {
				exitVal = 1
				done = true
			}
			cancel()

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}
			}
		}
	}

	cancel()
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate that the program should quit.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "PROBE", "SAMPLE", "MIDIPORTS", "MEMVIZ", "PREFS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)

	case "PROBE":
		err = probe(md)

	case "SAMPLE":
		err = sample(md, sync)

	case "MIDIPORTS":
		err = midiPorts(md)

	case "MEMVIZ":
		err = memoryViz(md)

	case "PREFS":
		err = showPrefs(md)

	case "VERSION":
		fmt.Println(version.Version())
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// echo the central log to stdout. the log is coloured when stdout is a
// terminal
func echoLog(echo bool) {
	if !echo {
		logger.SetEcho(nil, false)
		return
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		logger.SetEcho(logger.NewColorizer(os.Stdout), false)
	} else {
		logger.SetEcho(os.Stdout, false)
	}
}

// printNotices implements the notifications.Notify interface
type printNotices struct {
	out io.Writer
}

func (n printNotices) Notify(notice notifications.Notice) error {
	_, err := fmt.Fprintf(n.out, "! %s\n", strings.TrimPrefix(string(notice), "Notify"))
	return err
}

// create the machine with the preferences found on disk and any preferences
// specified on the command line. the caller must call Destroy() on the machine
func newMachine(cmdlinePrefs string) (*environment.Environment, *hardware.Machine, error) {
	prefs.PushCommandLineStack(cmdlinePrefs)
	defer func() {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			fmt.Printf("* unused preferences: %s\n", unused)
		}
	}()

	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	if err != nil {
		return nil, nil, err
	}

	m, err := hardware.NewMachine(env)
	if err != nil {
		return nil, nil, err
	}

	return env, m, nil
}

func destroy(m *hardware.Machine) {
	if err := m.Destroy(); err != nil {
		fmt.Printf("* error destroying machine: %v\n", err)
	}
}

func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	md.AdditionalHelp("the script is a Lua program. see the script package for the available functions")

	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.DefaultAddress))
	log := md.AddBool("log", false, "echo log and device notices to stdout")
	cmdlinePrefs := md.AddString("prefs", "", "preferences for this run. eg. \"adlib.opl3::false; mpu401.irq::5\"")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("script required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	echoLog(*log)

	if *stats {
		stop := statsview.Launch(os.Stdout, "")
		defer stop()
	}

	env, m, err := newMachine(*cmdlinePrefs)
	if err != nil {
		return err
	}
	defer destroy(m)

	if *log {
		env.AttachNotifier(printNotices{out: os.Stdout})
	}

	scr := script.NewScript(env, m)
	defer scr.Close()

	err = scr.Run(sync.ctx, md.GetArg(0))
	m.PowerOff()

	return err
}

func probe(md *modalflag.Modes) error {
	md.NewMode()

	log := md.AddBool("log", false, "echo log to stdout")
	cmdlinePrefs := md.AddString("prefs", "", "preferences for this probe")
	adlibPort := md.AddPort("adlib", 0, "probe for the adlib at this port instead of the configured port")
	emuPort := md.AddPort("emu8000", 0, "probe for the emu8000 at this port instead of the configured port")
	mpuPort := md.AddPort("mpu401", 0, "probe for the mpu401 at this port instead of the configured port")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	echoLog(*log)

	env, m, err := newMachine(*cmdlinePrefs)
	if err != nil {
		return err
	}
	defer destroy(m)

	pr := env.Prefs

	// the probe port is the configured port unless the port flag is set
	port := func(flag uint16, configured uint16) uint16 {
		if flag != 0 {
			return flag
		}
		return configured
	}

	if pr.Adlib.Enabled.Get().(bool) {
		base := port(*adlibPort, pr.Adlib.Port.Get().(uint16))
		found, opl3 := guest.DetectAdlib(m.Bus, base)
		switch {
		case !found:
			fmt.Printf("adlib: not detected at %#04x\n", base)
		case opl3:
			fmt.Printf("adlib: OPL3 detected at %#04x\n", base)
		default:
			fmt.Printf("adlib: OPL2 detected at %#04x\n", base)
		}
	}

	if pr.EMU8000.Enabled.Get().(bool) {
		base := port(*emuPort, pr.EMU8000.Port.Get().(uint16))
		a := guest.SampleCount(m.Bus, base)
		time.Sleep(10 * time.Millisecond)
		b := guest.SampleCount(m.Bus, base)
		if a == b {
			fmt.Printf("emu8000: sample counter not running at %#04x\n", base)
		} else {
			fmt.Printf("emu8000: detected at %#04x (%d KiB)\n", base, pr.EMU8000.RAM.Get().(int))
		}
	}

	if pr.MPU401.Enabled.Get().(bool) {
		base := port(*mpuPort, pr.MPU401.Port.Get().(uint16))
		switch {
		case !guest.ResetMPU401(m.Bus, base):
			fmt.Printf("mpu401: no reset acknowledgement at %#04x\n", base)
		case !guest.EnterUART(m.Bus, base):
			fmt.Printf("mpu401: UART mode refused at %#04x\n", base)
		default:
			fmt.Printf("mpu401: detected at %#04x (irq %d)\n", base, pr.MPU401.IRQ.Get().(int))
			guest.ResetMPU401(m.Bus, base)
		}
	}

	return nil
}

// silence after the sample data. the loop points of a sample that is not
// looped cover this silence
const sampleTail = 32

func sample(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	loop := md.AddBool("loop", false, "loop the sample until ctrl-c")
	log := md.AddBool("log", false, "echo log to stdout")
	cmdlinePrefs := md.AddString("prefs", "", "preferences for this run")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("WAV or MP3 file required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	echoLog(*log)

	// the wavetable device is always enabled in this mode
	env, m, err := newMachine(*cmdlinePrefs + "; emu8000.enabled::true")
	if err != nil {
		return err
	}
	defer destroy(m)

	smp, err := sampleload.Load(env, md.GetArg(0))
	if err != nil {
		return err
	}
	fmt.Println(smp)

	base := env.Prefs.EMU8000.Port.Get().(uint16)
	words := env.Prefs.EMU8000.RAM.Get().(int)*512 - sampleTail
	if words <= 0 {
		return fmt.Errorf("no onboard RAM for the sample")
	}
	data := smp.Data
	if len(data) > words {
		fmt.Printf("* sample truncated to %d words\n", words)
		data = data[:words]
	}

	guest.Upload(m.Bus, base, emu8k.RAMBase, append(data, make([]int16, sampleTail)...))

	end := emu8k.RAMBase + uint32(len(data))
	v := guest.Voice{
		Start:     emu8k.RAMBase,
		LoopStart: end,
		LoopEnd:   end + sampleTail - 1,
		Pitch:     emu8k.Pitch(smp.Rate),
		Pan:       0x80,
	}
	if *loop {
		v.LoopStart = emu8k.RAMBase
		v.LoopEnd = end - 1
	}
	guest.Play(m.Bus, base, v)

	wait := smp.Duration()
	if *loop {
		wait = time.Duration(1<<63 - 1)
	}

	select {
	case <-time.After(wait):
	case <-sync.ctx.Done():
	}

	guest.Release(m.Bus, base, v.Channel)
	m.PowerOff()

	return nil
}

func midiPorts(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ins, outs, err := hostmidi.Ports()
	if err != nil {
		return err
	}

	fmt.Println("out:")
	for i, n := range outs {
		fmt.Printf("  %d: %s\n", i, n)
	}
	fmt.Println("in:")
	for i, n := range ins {
		fmt.Printf("  %d: %s\n", i, n)
	}

	return nil
}

func memoryViz(md *modalflag.Modes) error {
	md.NewMode()

	cmdlinePrefs := md.AddString("prefs", "", "preferences for the machine")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("output file required for %s mode", md)
	}

	_, m, err := newMachine(*cmdlinePrefs)
	if err != nil {
		return err
	}
	defer destroy(m)

	f, err := os.Create(md.GetArg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	memviz.Map(f, m)

	return nil
}

func showPrefs(md *modalflag.Modes) error {
	md.NewMode()

	cmdlinePrefs := md.AddString("prefs", "", "preferences to apply before printing")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prefs.PushCommandLineStack(*cmdlinePrefs)
	defer prefs.PopCommandLineStack()

	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	if err != nil {
		return err
	}
	fmt.Println(env.Prefs)

	return nil
}
