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

package render

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/vmusic/vmusic/hardware/worker"
	"github.com/vmusic/vmusic/logger"
	"github.com/vmusic/vmusic/notifications"
	"github.com/vmusic/vmusic/pcm"
)

// IdleTimeout is the default amount of time with no register activity after
// which the render thread exits.
const IdleTimeout = 5000 * time.Millisecond

// BlockDuration is the amount of audio rendered in each iteration of the
// render thread.
const BlockDuration = 5 * time.Millisecond

// Env is the context of the render thread.
type Env interface {
	logger.Permission
	notifications.Notify
}

// Chip is implemented by the synthesis chips. Render fills buf with frames of
// interleaved samples. It is always called with the device lock held.
type Chip interface {
	Render(buf []int16, frames int)
}

// Config describes the output of a render thread.
type Config struct {
	// name of the device. used as the tag for log entries
	Name string

	// name of the output device. see pcm.Select()
	Output string

	Rate     int
	Channels int

	// zero means IdleTimeout
	Idle time.Duration
}

// FramesPerBlock returns the number of frames rendered in each iteration of the
// render thread.
func (cfg Config) FramesPerBlock() int {
	return cfg.Rate * int(BlockDuration/time.Millisecond) / 1000
}

// Thread turns the state of a chip into a continuous stream of audio. The
// thread is started on demand by Wake() and exits on its own after a period of
// inactivity.
type Thread struct {
	env  Env
	cfg  Config
	crit sync.Locker
	chip Chip

	// called after each block has been rendered with the device lock still held
	afterBlock func()

	worker *worker.Worker
}

// NewThread is the preferred method of initialisation for the Thread type. The
// crit argument is the device lock which protects the chip.
func NewThread(env Env, cfg Config, crit sync.Locker, chip Chip) (*Thread, error) {
	if cfg.Rate <= 0 || cfg.Channels <= 0 {
		return nil, fmt.Errorf("render: %s: invalid format (%dHz, %d channels)", cfg.Name, cfg.Rate, cfg.Channels)
	}
	if cfg.FramesPerBlock() == 0 {
		return nil, fmt.Errorf("render: %s: sample rate too low (%dHz)", cfg.Name, cfg.Rate)
	}
	if cfg.Idle == 0 {
		cfg.Idle = IdleTimeout
	}

	thr := &Thread{
		env:  env,
		cfg:  cfg,
		crit: crit,
		chip: chip,
	}
	thr.worker = worker.NewWorker(env, cfg.Name, thr.run)

	return thr, nil
}

// AfterBlock sets a function to be called after each block is rendered. The
// function is called with the device lock held.
func (thr *Thread) AfterBlock(f func()) {
	thr.afterBlock = f
}

// Wake makes sure the render thread is running and resets the idle timer.
func (thr *Thread) Wake() error {
	return thr.worker.Wake()
}

// Stop the render thread. If wait is true then Stop() waits for the thread to
// exit.
func (thr *Thread) Stop(wait bool) error {
	return thr.worker.Stop(wait)
}

// Touch resets the idle timer without starting the render thread.
func (thr *Thread) Touch() {
	thr.worker.Touch()
}

// Worker returns the underlying worker. Useful for testing.
func (thr *Thread) Worker() *worker.Worker {
	return thr.worker
}

// Config returns the configuration of the render thread.
func (thr *Thread) Config() Config {
	return thr.cfg
}

func (thr *Thread) run() error {
	sink, device, err := pcm.Select(thr.cfg.Output)
	if err != nil {
		logger.Logf(thr.env, thr.cfg.Name, "%v", err)
		return err
	}

	err = sink.Open(device, thr.cfg.Rate, thr.cfg.Channels)
	if err != nil {
		logger.Logf(thr.env, thr.cfg.Name, "cannot open output: %v", err)
		return err
	}

	_ = thr.env.Notify(notifications.NotifyRenderStarted)

	frames := thr.cfg.FramesPerBlock()
	buf := make([]int16, frames*thr.cfg.Channels)

	var runErr error

	for !thr.worker.ShutdownRequested() && !thr.worker.Idle(thr.cfg.Idle) {
		thr.render(buf, frames)

		if _, err := sink.Write(buf); err != nil {
			logger.Logf(thr.env, thr.cfg.Name, "output error: %v", err)
			runErr = err
			break // for loop
		}

		runtime.Gosched()
	}

	if err := sink.Close(); err != nil {
		logger.Logf(thr.env, thr.cfg.Name, "cannot close output: %v", err)
		runErr = errors.Join(runErr, err)
	}

	_ = thr.env.Notify(notifications.NotifyRenderStopped)

	return runErr
}

func (thr *Thread) render(buf []int16, frames int) {
	thr.crit.Lock()
	defer thr.crit.Unlock()
	thr.chip.Render(buf, frames)
	if thr.afterBlock != nil {
		thr.afterBlock()
	}
}
