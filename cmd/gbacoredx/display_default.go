//go:build !sdl2

package main

import (
	"errors"

	"gba-core-dx/internal/gba"
	"gba-core-dx/internal/gba/ppu"
)

// runLive is a stub for default builds; live display needs the real
// SDL2 bindings, which are only linked in under the sdl2 build tag.
func runLive(bus *gba.Bus, renderer *ppu.Renderer, scale int) error {
	return errors.New("live display requires building with -tags sdl2")
}
