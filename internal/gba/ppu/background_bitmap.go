package ppu

// bitmapIterate advances the affine scan position by one pixel and
// reports whether the resulting sample point lands inside a W x H
// bitmap plane, ported from BACKGROUND_BITMAP_ITERATE.
func bitmapIterate(x, y *int32, dx, dy int32, w, h int32) (localX, localY int32, ok bool) {
	*x += dx
	*y += dy
	if *x < 0 || *y < 0 || (*x>>8) >= w || (*y>>8) >= h {
		return 0, 0, false
	}
	return *x, *y, true
}

// drawBackgroundMode3 rasterizes BG2 in mode 3: a full 240x160 16bpp
// bitmap, one frame only (no double buffering). Ported from
// _drawBackgroundMode3.
func (r *Renderer) drawBackgroundMode3(bg *background, y int) {
	x := bg.sx - bg.dx
	yy := bg.sy - bg.dy
	flags, variant := r.bitmapFlags(bg)

	for outX := 0; outX < ScreenWidth; outX++ {
		localX, localY, ok := bitmapIterate(&x, &yy, bg.dx, bg.dy, ScreenWidth, ScreenHeight)
		if !ok {
			continue
		}
		if r.row[outX]&flagFinalized != 0 {
			continue
		}

		color := r.readVRAMHalf16(uint32(localX>>8)*2 + uint32(localY>>8)*ScreenWidth*2)
		color32 := expandColor555(color)

		r.compositeBitmapSample(outX, color32, flags, variant)
	}
}

// drawBackgroundMode4 rasterizes BG2 in mode 4: a 240x160 8bpp
// paletted bitmap, double-buffered via DISPCNT's frame-select bit.
// Ported from _drawBackgroundMode4.
func (r *Renderer) drawBackgroundMode4(bg *background, y int) {
	x := bg.sx - bg.dx
	yy := bg.sy - bg.dy
	flags, variant := r.bitmapFlags(bg)

	var frameOffset uint32
	if r.dispcnt.frameSelect {
		frameOffset = 0xA000
	}

	for outX := 0; outX < ScreenWidth; outX++ {
		localX, localY, ok := bitmapIterate(&x, &yy, bg.dx, bg.dy, ScreenWidth, ScreenHeight)
		if !ok {
			continue
		}
		if r.row[outX]&flagFinalized != 0 {
			continue
		}

		index := r.readVRAMByte(frameOffset + uint32(localX>>8) + uint32(localY>>8)*ScreenWidth)
		if index == 0 {
			continue
		}
		color, paletteOK := r.paletteLookup(variant, uint32(index))
		if paletteOK {
			r.composite(outX, color|flags)
		}
	}
}

// drawBackgroundMode5 rasterizes BG2 in mode 5: a 160x128 16bpp
// bitmap, double-buffered via DISPCNT's frame-select bit, occupying
// only the top-left corner of the visible screen. Ported from
// _drawBackgroundMode5.
func (r *Renderer) drawBackgroundMode5(bg *background, y int) {
	const modeWidth, modeHeight = 160, 128

	x := bg.sx - bg.dx
	yy := bg.sy - bg.dy
	flags, variant := r.bitmapFlags(bg)

	var frameOffset uint32
	if r.dispcnt.frameSelect {
		frameOffset = 0xA000
	}

	for outX := 0; outX < ScreenWidth; outX++ {
		localX, localY, ok := bitmapIterate(&x, &yy, bg.dx, bg.dy, modeWidth, modeHeight)
		if !ok {
			continue
		}
		if r.row[outX]&flagFinalized != 0 {
			continue
		}

		color := r.readVRAMHalf16(frameOffset + uint32(localX>>8)*2 + uint32(localY>>8)*modeWidth*2)
		color32 := expandColor555(color)

		r.compositeBitmapSample(outX, color32, flags, variant)
	}
}

// compositeBitmapSample composites one full-color (mode 3/5) bitmap
// sample, applying the brighten/darken variant directly (these modes
// have no underlying palette index to pre-bake a variant from, so the
// effect is computed on the fly exactly once per pixel, as in
// _drawBackgroundMode3/5).
func (r *Renderer) compositeBitmapSample(outX int, color32, flags uint32, variant bool) {
	switch {
	case !variant:
		r.composite(outX, color32|flags)
	case r.blend.effect == BlendBrighten:
		r.composite(outX, brighten(color32, r.blend.bldy)|flags)
	case r.blend.effect == BlendDarken:
		r.composite(outX, darken(color32, r.blend.bldy)|flags)
	}
}
