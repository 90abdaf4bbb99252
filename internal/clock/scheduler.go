// Package clock paces a PPU-only frame loop against the GBA's real
//16.78MHz (2^24 Hz) master oscillator, the way the teacher's
// MasterClock scheduler paced CPU/PPU/APU stepping against a shared
// cycle counter — narrowed here to the single component this module
// actually drives.
package clock

import (
	"fmt"
	"time"
)

// masterClockHz is the real GBA system clock: 2^24 Hz.
const masterClockHz = 16777216

// CyclesPerScanline and TotalScanlines mirror internal/gba's timing
// constants; duplicated here rather than imported so clock stays free
// of a dependency on the gba package, the way the teacher's
// MasterClock took no dependency on cpu/ppu/apu beyond the step
// functions it was handed.
const (
	CyclesPerScanline = 1232
	TotalScanlines    = 228
	CyclesPerFrame    = CyclesPerScanline * TotalScanlines
)

// FrameDuration is the wall-clock time one real GBA frame takes at the
// true master clock rate (~59.73 Hz).
const FrameDuration = time.Second * CyclesPerFrame / masterClockHz

// Clock paces repeated calls to a frame-step function at the GBA's
// real frame rate, for a live presenter that wants to run no faster
// than real hardware. A turbo/headless run should call the step
// function directly instead and skip Clock entirely.
type Clock struct {
	Cycle uint64

	// PPUStep runs one full frame (VisibleScanlines DrawScanline calls
	// plus FinishFrame); Clock calls it once per RunFrame and paces the
	// interval between calls rather than stepping it dot by dot, since
	// this module's renderer has no mid-scanline observable state worth
	// scheduling around.
	PPUStep func() error
}

// NewClock creates a clock with no step function attached yet.
func NewClock() *Clock {
	return &Clock{}
}

// RunFrame invokes PPUStep once, sleeping out whatever's left of
// FrameDuration afterward so repeated calls land at the real GBA frame
// rate. Time spent inside PPUStep counts against the sleep, the same
// way the original scheduler let a slow component eat into the next
// component's budget rather than compounding drift.
func (c *Clock) RunFrame() error {
	if c.PPUStep == nil {
		return fmt.Errorf("clock: no PPUStep attached")
	}

	start := time.Now()
	if err := c.PPUStep(); err != nil {
		return fmt.Errorf("PPU step error: %w", err)
	}
	c.Cycle += CyclesPerFrame

	if elapsed := time.Since(start); elapsed < FrameDuration {
		time.Sleep(FrameDuration - elapsed)
	}
	return nil
}

// GetCycle returns the total number of master clock cycles elapsed
// across every RunFrame call so far.
func (c *Clock) GetCycle() uint64 {
	return c.Cycle
}

// Reset zeroes the cycle counter.
func (c *Clock) Reset() {
	c.Cycle = 0
}
