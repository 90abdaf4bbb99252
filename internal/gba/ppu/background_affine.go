package ppu

// bitmapFlags returns the priority/target flags shared by every
// affine and bitmap-mode background rasterizer, and whether the
// brighten/darken variant palette applies (alpha blending is instead
// tagged per-pixel via flagTarget1/2 and resolved later in composite).
func (r *Renderer) bitmapFlags(bg *background) (flags uint32, variant bool) {
	flags = priorityFlag(bg.priority) | flagIsBackground
	if bg.target1 && r.blend.effect == BlendAlpha {
		flags |= flagTarget1
	}
	if bg.target2 {
		flags |= flagTarget2
	}
	variant = bg.target1 && (r.blend.effect == BlendBrighten || r.blend.effect == BlendDarken)
	return
}

// drawBackgroundMode2 rasterizes one scanline of an affine tiled
// background (BG2/BG3 in modes 1/2), ported from _drawBackgroundMode2.
func (r *Renderer) drawBackgroundMode2(bg *background, y int) {
	sizeAdjusted := int32(0x8000) << uint(bg.size)

	x := bg.sx - bg.dx
	yy := bg.sy - bg.dy
	flags, variant := r.bitmapFlags(bg)

	for outX := 0; outX < ScreenWidth; outX++ {
		x += bg.dx
		yy += bg.dy

		var localX, localY int32
		if bg.overflow {
			localX = x & (sizeAdjusted - 1)
			localY = yy & (sizeAdjusted - 1)
		} else if x < 0 || yy < 0 || x >= sizeAdjusted || yy >= sizeAdjusted {
			continue
		} else {
			localX = x
			localY = yy
		}

		mapOffset := bg.screenBase + uint32(localX>>11) + ((uint32(localY>>7) & 0x7F0) << uint(bg.size))
		mapData := r.readVRAMByte(mapOffset)
		charOffset := bg.charBase + uint32(mapData)<<6 + (uint32(localY&0x700) >> 5) + (uint32(localX&0x700) >> 8)
		tileData := r.readVRAMByte(charOffset)

		if tileData != 0 && r.row[outX]&flagFinalized == 0 {
			color, ok := r.paletteLookup(variant, uint32(tileData))
			if ok {
				r.composite(outX, color|flags)
			}
		}
	}
}
