package main

// Each build* function returns a complete .gscn scene script exercising
// one of the renderer's end-to-end scenarios: a plain backdrop fill, a
// mode 3 direct-color bitmap, sprite/sprite overlap ordering, an
// alpha-blend setup, a sprite drawn over a bitmap background, and
// forced blank. Named s1 through s6 after the scenario lettering the
// ppu package's tests use; s3-s5 build different layer setups than
// the tests of the same letter.

// buildBackdropScene (s1): no background or sprite layer enabled at
// all, so every pixel falls through to the palette-index-0 backdrop
// color DrawScanline seeds each line with.
func buildBackdropScene() []byte {
	s := newSceneBuilder("s1-backdrop")
	s.writePalette(0, 0, 0x001F) // red, BGR555
	s.writeVideoRegister(0, regDISPCNT, 0x0000)
	return s.bytes(1)
}

// buildMode3Scene (s2): BG2 in mode 3, a full 240x160 16bpp bitmap with
// no palette indirection. Affine registers are set to the identity
// transform (PA=PD=1.0, PB=PC=0, ref point 0,0) so the bitmap maps
// 1:1 onto the screen; the bitmap itself is a vertical gray ramp.
func buildMode3Scene() []byte {
	s := newSceneBuilder("s2-mode3")

	s.writeVideoRegister(0, regBG2PA, 0x0100)
	s.writeVideoRegister(0, regBG2PB, 0x0000)
	s.writeVideoRegister(0, regBG2PC, 0x0000)
	s.writeVideoRegister(0, regBG2PD, 0x0100)
	s.writeVideoRegister(0, regBG2XLO, 0x0000)
	s.writeVideoRegister(0, regBG2XHI, 0x0000)
	s.writeVideoRegister(0, regBG2YLO, 0x0000)
	s.writeVideoRegister(0, regBG2YHI, 0x0000)

	for y := 0; y < 160; y++ {
		shade := uint16(y * 31 / 159)
		color := shade | shade<<5 | shade<<10
		row := make([]byte, 240*2)
		for x := 0; x < 240; x++ {
			row[x*2] = byte(color)
			row[x*2+1] = byte(color >> 8)
		}
		s.writeVRAM(y, uint32(y*240*2), row)
	}

	s.writeVideoRegister(0, regDISPCNT, 0x0403) // mode 3, BG2 enable
	return s.bytes(1)
}

// buildPriorityScene (s3): two overlapping 8x8 sprites sharing one
// tile but different object palette banks. Sprite B's priority is
// numerically lower than sprite A's, but sprite A, at the lower OAM
// index, keeps the 4-pixel overlap: the renderer never overwrites a
// sprite pixel already claimed by an earlier OAM entry.
func buildPriorityScene() []byte {
	s := newSceneBuilder("s3-priority")

	s.writePalette(0, 0x111, 0x03E0) // bank 1 color 1: green
	s.writePalette(0, 0x121, 0x7C00) // bank 2 color 1: blue

	tile := make([]byte, 32)
	for i := range tile {
		tile[i] = 0x11
	}
	s.writeVRAM(0, 0x10000, tile)

	// Sprite A: palette bank 1, priority 1, at (100, 60).
	s.writeOAM(0, 0, 60)
	s.writeOAM(0, 2, 100)
	s.writeOAM(0, 4, uint16(1<<10)|(1<<12))

	// Sprite B: palette bank 2, priority 0, at (104, 60), overlapping
	// sprite A's right edge.
	s.writeOAM(0, 8, 60)
	s.writeOAM(0, 10, 104)
	s.writeOAM(0, 12, uint16(0<<10)|(2<<12))

	s.writeVideoRegister(0, regDISPCNT, 0x1000) // mode 0, OBJ enable only
	return s.bytes(1)
}

// buildBlendScene (s4): BG2's mode 3 bitmap is flagged as an alpha
// blend target1 layer and the backdrop as target2. The renderer's
// backdrop pixels carry no blend flags and are overwritten outright by
// the first layer drawn over them, so the bitmap's red lands unmixed.
func buildBlendScene() []byte {
	s := newSceneBuilder("s4-blend")

	s.writePalette(0, 0, 0x7FFF) // white backdrop

	s.writeVideoRegister(0, regBG2PA, 0x0100)
	s.writeVideoRegister(0, regBG2PB, 0x0000)
	s.writeVideoRegister(0, regBG2PC, 0x0000)
	s.writeVideoRegister(0, regBG2PD, 0x0100)
	s.writeVideoRegister(0, regBG2XLO, 0x0000)
	s.writeVideoRegister(0, regBG2XHI, 0x0000)
	s.writeVideoRegister(0, regBG2YLO, 0x0000)
	s.writeVideoRegister(0, regBG2YHI, 0x0000)

	row := make([]byte, 240*2)
	for x := 0; x < 240; x++ {
		row[x*2] = 0x1F // pure red, BGR555 0x001F little-endian
		row[x*2+1] = 0x00
	}
	for y := 0; y < 160; y++ {
		s.writeVRAM(y, uint32(y*240*2), row)
	}

	s.writeVideoRegister(0, regBLDCNT, 0x2044)   // BG2 target1, backdrop target2, alpha effect
	s.writeVideoRegister(0, regBLDALPHA, 0x0810) // target1 weight 16, target2 weight 8
	s.writeVideoRegister(0, regDISPCNT, 0x0403)  // mode 3, BG2 enable
	return s.bytes(1)
}

// buildSpriteScene (s5): the original demo fixture, a mode 4 paletted
// bitmap backdrop with one 16-color sprite drawn over it.
func buildSpriteScene() []byte {
	s := newSceneBuilder("s5-sprite")

	s.writePalette(0, 0, 0x4000) // dark blue backdrop, BGR555
	s.writePalette(0, 1, 0x03FF) // yellow band
	s.writePalette(0, 0x111, 0x03FF)

	for y := 0; y < 160; y++ {
		row := make([]byte, 240)
		for x := range row {
			if x%32 < 8 {
				row[x] = 0
			} else {
				row[x] = 1
			}
		}
		s.writeVRAM(y, uint32(y*240), row)
	}

	tile := make([]byte, 32)
	for i := range tile {
		tile[i] = 0x11
	}
	s.writeVRAM(0, 0x10000, tile)

	s.writeOAM(0, 0, 60)
	s.writeOAM(0, 2, 100)
	s.writeOAM(0, 4, 1<<12)

	s.writeVideoRegister(0, regDISPCNT, 0x1404) // mode 4, OBJ enable, BG2 enable
	return s.bytes(1)
}

// buildForcedBlankScene (s6): DISPCNT's forced-blank bit set and
// nothing else, so DrawScanline fills every line white and skips
// backgrounds and sprites entirely regardless of what else is wired up.
func buildForcedBlankScene() []byte {
	s := newSceneBuilder("s6-forcedblank")
	s.writePalette(0, 0, 0x001F) // would be red if forced blank didn't win
	s.writeVideoRegister(0, regDISPCNT, 0x0080)
	return s.bytes(1)
}
