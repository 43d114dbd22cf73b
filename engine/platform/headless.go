package platform

import (
	"time"

	"github.com/spaghettifunk/gridflight/engine/core"
)

/**
 * @brief One frame of scripted input. Keys lists the keys held during the
 * frame; any key not listed is released.
 */
type HeadlessFrame struct {
	MouseDX, MouseDY float64
	Keys             []core.KeyCode
	// Resize, when set, reports a new framebuffer size.
	Resize *[2]uint32
	// Quit asks the engine to stop after this frame's events.
	Quit bool
}

/**
 * @brief A windowless platform that replays a fixed input script, one
 * HeadlessFrame per pump. After the script ends no keys are held and the
 * mouse stays still.
 */
type Headless struct {
	script  []HeadlessFrame
	frame   int
	mouseX  float64
	mouseY  float64
	held    map[core.KeyCode]bool
	now     func() time.Time
	start   time.Time
	slept   time.Duration
	started bool
}

var _ Platform = (*Headless)(nil)

func NewHeadless(script ...HeadlessFrame) *Headless {
	return &Headless{
		script: script,
		held:   make(map[core.KeyCode]bool),
		now:    time.Now,
	}
}

// WithClock replaces the wall clock, for deterministic frame timing.
func (h *Headless) WithClock(now func() time.Time) *Headless {
	h.now = now
	return h
}

func (h *Headless) Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error {
	h.start = h.now()
	h.started = true
	core.LogInfo("headless platform %q started at %dx%d with %d scripted frames", applicationName, width, height, len(h.script))
	return nil
}

func (h *Headless) Shutdown() error {
	h.started = false
	return nil
}

func (h *Headless) PumpMessages() bool {
	if !h.started {
		return false
	}
	var f HeadlessFrame
	if h.frame < len(h.script) {
		f = h.script[h.frame]
	}
	h.frame++

	if f.MouseDX != 0 || f.MouseDY != 0 {
		h.mouseX += f.MouseDX
		h.mouseY += f.MouseDY
		_ = core.InputProcessMouseMove(h.mouseX, h.mouseY)
	}

	down := make(map[core.KeyCode]bool, len(f.Keys))
	for _, k := range f.Keys {
		down[k] = true
	}
	for k := range h.held {
		if !down[k] {
			_ = core.InputProcessKey(k, false)
			delete(h.held, k)
		}
	}
	for k := range down {
		if !h.held[k] {
			_ = core.InputProcessKey(k, true)
			h.held[k] = true
		}
	}

	if f.Resize != nil {
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_RESIZED,
			Data: &core.SystemEvent{WindowWidth: f.Resize[0], WindowHeight: f.Resize[1]},
		})
	}
	return !f.Quit
}

func (h *Headless) GetAbsoluteTime() float64 {
	return h.now().Sub(h.start).Seconds()
}

// Sleep only accounts the requested time.
func (h *Headless) Sleep(ms float64) {
	h.slept += time.Duration(ms * float64(time.Millisecond))
}

// Frames is the number of pumps so far.
func (h *Headless) Frames() int {
	return h.frame
}

func (h *Headless) Slept() time.Duration {
	return h.slept
}
