package ppu

import "sync"

// frameSync hides the mutex/condvar handshake the original expresses
// with raw pthread_mutex_t/pthread_cond_t pairs (upCond signals a
// presenter that a frame is ready, downCond signals the renderer that
// the presenter is done with it), ported to sync.Mutex/sync.Cond.
// Turbo mode skips the wait on downCond entirely, matching
// GBAVideoSoftwareRendererFinishFrame.
type frameSync struct {
	mu   sync.Mutex
	up   *sync.Cond
	down *sync.Cond

	framesPending int
	frameskip     int
	turbo         bool
	closed        bool
}

func (s *frameSync) reset() {
	s.up = sync.NewCond(&s.mu)
	s.down = sync.NewCond(&s.mu)
	s.framesPending = 0
	s.frameskip = 0
	s.turbo = false
	s.closed = false
}

func (s *frameSync) shutdown() {
	s.mu.Lock()
	s.closed = true
	s.up.Broadcast()
	s.down.Broadcast()
	s.mu.Unlock()
}

// SetTurbo enables or disables turbo mode (run ahead without waiting
// for a presenter to consume each frame).
func (r *Renderer) SetTurbo(turbo bool) {
	r.sync.mu.Lock()
	r.sync.turbo = turbo
	r.sync.mu.Unlock()
}

// SetFrameskip sets the number of upcoming frames to drop: DrawScanline
// skips its raster work entirely for each of those frames, and
// FinishFrame skips the presenter handoff, matching
// GBAVideoSoftwareRendererDrawScanline/FinishFrame.
func (r *Renderer) SetFrameskip(n int) {
	r.sync.mu.Lock()
	r.sync.frameskip = n
	r.sync.mu.Unlock()
}

// skipFrame reports whether the current frame is being skipped, per
// frameskip, without consuming it (only FinishFrame decrements).
func (s *frameSync) skipFrame() bool {
	s.mu.Lock()
	skip := s.frameskip > 0
	s.mu.Unlock()
	return skip
}

// FinishFrame is the sole suspension point between the driving thread
// (whatever steps DrawScanline 160 times) and a presenter: it blocks
// the caller until the presenter hands the completed frame back via
// ReleaseFrame, unless frameskip or turbo says not to wait, then resets
// the two affine backgrounds' scan position from their reference
// points. Ported from GBAVideoSoftwareRendererFinishFrame.
func (r *Renderer) FinishFrame() {
	r.sync.mu.Lock()
	switch {
	case r.sync.closed:
	case r.sync.frameskip > 0:
		r.sync.frameskip--
	default:
		r.sync.framesPending++
		r.sync.up.Broadcast()
		if !r.sync.turbo {
			for r.sync.framesPending > 0 && !r.sync.closed {
				r.sync.down.Wait()
			}
		}
	}
	r.sync.mu.Unlock()

	r.bg[2].sx = r.bg[2].refx
	r.bg[2].sy = r.bg[2].refy
	r.bg[3].sx = r.bg[3].refx
	r.bg[3].sy = r.bg[3].refy
}

// AcquireFrame blocks until at least one frame is pending, then
// returns the output buffer for the presenter to read. The presenter
// must call ReleaseFrame once done reading it.
func (r *Renderer) AcquireFrame() []uint32 {
	r.sync.mu.Lock()
	for r.sync.framesPending == 0 && !r.sync.closed {
		r.sync.up.Wait()
	}
	r.sync.mu.Unlock()
	return r.outputBuffer
}

// ReleaseFrame marks the current frame consumed, waking any driving
// thread blocked in FinishFrame.
func (r *Renderer) ReleaseFrame() {
	r.sync.mu.Lock()
	if r.sync.framesPending > 0 {
		r.sync.framesPending--
	}
	r.sync.down.Broadcast()
	r.sync.mu.Unlock()
}
