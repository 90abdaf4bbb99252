package ppu

// drawBackgroundMode0 rasterizes one scanline of a text-mode (tiled,
// non-affine) background, used by BG0/BG1 in modes 0 and 1 and by
// BG2/BG3 in mode 0. Ported from _drawBackgroundMode0's per-pixel
// semantics (BACKGROUND_TEXT_SELECT_CHARACTER / BACKGROUND_DRAW_PIXEL_
// 16/256): the original fetches a whole 32-bit tile row at a time and
// unrolls the 8-pixel inner loop with separate prologue/epilogue
// handling for a horizontally-scrolled first/last tile; this walks
// one output column at a time instead; the addressing arithmetic
// (screen block lookup, char base, per-row/per-column shift into the
// packed tile data) is identical, just evaluated per pixel rather than
// amortized across 8.
func (r *Renderer) drawBackgroundMode0(bg *background, y int) {
	inY := y + int(bg.y)

	yBase := uint32(inY) & 0xF8
	switch bg.size {
	case 2:
		yBase += uint32(inY) & 0x100
	case 3:
		yBase += (uint32(inY) & 0x100) << 1
	}

	flags := priorityFlag(bg.priority) | flagIsBackground
	if bg.target1 && r.blend.effect == BlendAlpha {
		flags |= flagTarget1
	}
	if bg.target2 {
		flags |= flagTarget2
	}
	variant := bg.target1 && (r.blend.effect == BlendBrighten || r.blend.effect == BlendDarken)

	for outX := r.start; outX < r.end; outX++ {
		if r.row[outX]&flagFinalized != 0 {
			continue
		}

		inX := (int(bg.x) + outX) & 0x1FF
		localX := uint32(inX)
		xBase := localX & 0xF8
		if bg.size&1 != 0 {
			xBase += (localX & 0x100) << 5
		}

		screenBase := (bg.screenBase >> 1) + (xBase >> 3) + (yBase << 2)
		mapData := decodeTextMapEntry(r.readVRAMHalf16(screenBase * 2))

		var localY int
		if !mapData.vflip {
			localY = inY & 0x7
		} else {
			localY = 7 - (inY & 0x7)
		}

		var pixelColor uint32
		var ok bool

		if !bg.multipalette {
			charBase := ((bg.charBase + uint32(mapData.tile<<5)) >> 2) + uint32(localY)
			tileData := r.readVRAMWord32(charBase)
			if tileData != 0 {
				shift := inX & 0x7
				if mapData.hflip {
					shift = 7 - shift
				}
				pixelData := (tileData >> (4 * uint32(shift))) & 0xF
				if pixelData != 0 {
					paletteData := uint32(mapData.palette) << 4
					pixelColor, ok = r.paletteLookup(variant, pixelData|paletteData)
				}
			}
		} else {
			charBase := ((bg.charBase + uint32(mapData.tile<<6)) >> 2) + uint32(localY<<1)
			shift := inX & 0x7
			if mapData.hflip {
				shift = 7 - shift
			}
			word := charBase
			if shift >= 4 {
				word++
			}
			tileData := r.readVRAMWord32(word)
			pixelData := (tileData >> (8 * uint32(shift&0x3))) & 0xFF
			if pixelData != 0 {
				pixelColor, ok = r.paletteLookup(variant, pixelData)
			}
		}

		if ok {
			r.composite(outX, pixelColor|flags)
		}
	}
}

func (r *Renderer) paletteLookup(variant bool, index uint32) (uint32, bool) {
	if int(index) >= len(r.normalPalette) {
		if r.DebugBoundsCheck {
			panic("ppu: palette lookup out of range")
		}
		return 0, false
	}
	if variant {
		return r.variantPalette[index], true
	}
	return r.normalPalette[index], true
}
