package gba

import "fmt"

// Clock is a dot/scanline/frame counter retimed to real GBA hardware
// (1232 cycles per scanline: 4 cycles per dot, 308 dots per scanline;
// 160 visible scanlines then 68 vblank scanlines per frame), adapted
// from the teacher's internal/clock.MasterClock cycle-scheduler shape
// and internal/ppu/scanline.go's dot-stepping state machine. Unlike the
// teacher's scanline driver, Clock does not render: it only calls back
// into whatever is driving the renderer, at the scanline boundaries
// spec.md §2/§4.4 require.
type Clock struct {
	Cycle    uint64
	Frame    uint64
	scanline int
	dot      int

	// OnScanlineStart is called once per visible scanline (y in
	// [0,160)), before that scanline's dots are stepped.
	OnScanlineStart func(y int)

	// OnFrameEnd is called once per frame, at the transition into
	// vblank (after the 160th visible scanline), matching the point in
	// the original where FinishFrame is invoked.
	OnFrameEnd func()
}

// NewClock creates a clock at the start of frame 0, scanline 0, dot 0.
func NewClock() *Clock {
	return &Clock{}
}

// CurrentScanline returns the scanline the clock is currently in,
// [0, TotalScanlines).
func (c *Clock) CurrentScanline() int { return c.scanline }

// CurrentDot returns the dot within the current scanline.
func (c *Clock) CurrentDot() int { return c.dot }

// Step advances the clock by the given number of master cycles,
// invoking OnScanlineStart/OnFrameEnd as scanline/frame boundaries are
// crossed.
func (c *Clock) Step(cycles uint64) error {
	if cycles == 0 {
		return nil
	}
	for i := uint64(0); i < cycles; i++ {
		if err := c.stepCycle(); err != nil {
			return fmt.Errorf("clock step error: %w", err)
		}
	}
	return nil
}

func (c *Clock) stepCycle() error {
	c.Cycle++
	if c.Cycle%CyclesPerDot != 0 {
		return nil
	}

	if c.dot == 0 && c.scanline < VisibleScanlines && c.OnScanlineStart != nil {
		c.OnScanlineStart(c.scanline)
	}

	c.dot++
	if c.dot >= DotsPerScanline {
		c.dot = 0
		c.scanline++

		if c.scanline == VisibleScanlines && c.OnFrameEnd != nil {
			c.OnFrameEnd()
		}
		if c.scanline >= TotalScanlines {
			c.scanline = 0
			c.Frame++
		}
	}
	return nil
}

// RunFrame steps the clock through exactly one full frame
// (TotalScanlines * DotsPerScanline * CyclesPerDot cycles), a
// convenience used by callers that don't need real-time pacing.
func (c *Clock) RunFrame() error {
	return c.Step(uint64(TotalScanlines) * uint64(DotsPerScanline) * uint64(CyclesPerDot))
}

// Reset returns the clock to frame 0, scanline 0, dot 0.
func (c *Clock) Reset() {
	c.Cycle = 0
	c.Frame = 0
	c.scanline = 0
	c.dot = 0
}
