//go:build sdl2

package main

import (
	"fmt"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"gba-core-dx/internal/clock"
	"gba-core-dx/internal/gba"
	"gba-core-dx/internal/gba/ppu"
)

// runLive drives the bus one real-time-paced frame at a time on a
// background goroutine via internal/clock.Clock, while the main
// goroutine streams completed frames to an SDL2 texture the way
// internal/ui/render_fixed.go streams its 320x200 canvas, scaled up by
// nearest-neighbor to an integer pixel size.
func runLive(bus *gba.Bus, renderer *ppu.Renderer, scale int) error {
	if scale < 1 {
		scale = 1
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl2 init: %w", err)
	}
	defer sdl.Quit()

	winW := int32(ppu.ScreenWidth * scale)
	winH := int32(ppu.ScreenHeight * scale)

	window, err := sdl.CreateWindow("gbacoredx", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		winW, winH, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("sdl2 create window: %w", err)
	}
	defer window.Destroy()

	sdlRenderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("sdl2 create renderer: %w", err)
	}
	defer sdlRenderer.Destroy()

	texture, err := sdlRenderer.CreateTexture(sdl.PIXELFORMAT_ARGB8888, sdl.TEXTUREACCESS_STREAMING,
		int32(ppu.ScreenWidth), int32(ppu.ScreenHeight))
	if err != nil {
		return fmt.Errorf("sdl2 create texture: %w", err)
	}
	defer texture.Destroy()

	gbaClock := clock.NewClock()
	gbaClock.PPUStep = bus.RunFrame

	errCh := make(chan error, 1)
	quit := make(chan struct{})
	go func() {
		for {
			select {
			case <-quit:
				return
			default:
			}
			if err := gbaClock.RunFrame(); err != nil {
				errCh <- err
				return
			}
		}
	}()

	pitch := ppu.ScreenWidth * 4
	argb := make([]uint32, ppu.ScreenWidth*ppu.ScreenHeight)
	rect := &sdl.Rect{X: 0, Y: 0, W: int32(ppu.ScreenWidth), H: int32(ppu.ScreenHeight)}

	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch event.(type) {
			case *sdl.QuitEvent:
				running = false
			}
		}

		select {
		case err := <-errCh:
			close(quit)
			return err
		default:
		}

		buffer := renderer.AcquireFrame()
		for i, c := range buffer {
			argb[i] = 0xFF000000 | (c & 0x00FFFFFF)
		}
		renderer.ReleaseFrame()

		if err := texture.Update(rect, unsafe.Pointer(&argb[0]), pitch); err != nil {
			close(quit)
			return fmt.Errorf("sdl2 texture update: %w", err)
		}

		sdlRenderer.Clear()
		sdlRenderer.Copy(texture, rect, &sdl.Rect{X: 0, Y: 0, W: winW, H: winH})
		sdlRenderer.Present()
	}

	close(quit)
	return nil
}
