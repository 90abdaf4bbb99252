package ppu

// OBJ tile base addresses: sprite tile N is read from 0x10000 + N*0x20
// in every display mode. In bitmap modes 3-5 the bitmap occupies VRAM
// up to 0x14000, so only tile indices from 512 (objTileBaseBitmap) up
// hold sprite data there; the renderer does not enforce that and reads
// whatever VRAM holds at the computed address. Computed locally rather
// than imported from package gba, since this package only ever sees
// raw VRAM/OAM byte views, never gba's address-space constants.
const (
	objTileBaseLow    = 0x10000
	objTileBaseBitmap = 0x14000
)

func (r *Renderer) objTileBase() uint32 {
	return objTileBaseLow
}

// preprocessSprites walks every OAM-enabled sprite in ascending index
// order and draws it into the per-scanline scratch buffer
// spriteLayer, ported from the sprite-preprocessing block at the top
// of _drawScanline. Sprites are not drawn directly into the row
// buffer: a pixel already claimed in spriteLayer by a lower-index
// sprite is never overwritten by a higher-index one, matching real
// hardware's "lowest OAM index wins" sprite-sprite tiebreak.
func (r *Renderer) preprocessSprites(y int) {
	for i := range r.spriteLayer {
		r.spriteLayer[i] = 0
	}
	if !r.dispcnt.objEnable {
		return
	}
	for word := 0; word < 4; word++ {
		bitmap := r.enabled[word]
		if bitmap == 0 {
			continue
		}
		for i := word * 32; i < (word+1)*32 && i < numSprites; i++ {
			if bitmap&1 != 0 {
				o := decodeOBJ(r.oam, i)
				if o.transformed {
					r.preprocessTransformedSprite(o, y)
				} else {
					r.preprocessSprite(o, y)
				}
			}
			bitmap >>= 1
		}
	}
}

func (r *Renderer) spriteFlags(o objAttrs) uint32 {
	flags := priorityFlag(o.priority) | flagFinalized
	if (r.blend.target1Obj && r.blend.effect == BlendAlpha) || o.mode == ObjModeSemitransparent {
		flags |= flagTarget1
	}
	if r.blend.target2Obj {
		flags |= flagTarget2
	}
	return flags
}

func (r *Renderer) spriteVariant() bool {
	return r.blend.target1Obj && (r.blend.effect == BlendBrighten || r.blend.effect == BlendDarken)
}

// spritePixel looks up one sprite texel, given its 16-color or
// 256-color tile data and palette bank, ported from the
// SPRITE_DRAW_PIXEL_16/256_NORMAL/VARIANT macros.
func (r *Renderer) spritePixel(multipalette bool, palette int, variant bool, tileData uint32) (uint32, bool) {
	if tileData == 0 {
		return 0, false
	}
	var index uint32
	if multipalette {
		index = 0x100 | tileData
	} else {
		index = 0x100 | tileData | uint32(palette<<4)
	}
	return r.paletteLookup(variant, index)
}

// preprocessSprite draws one plain (non-affine) sprite's visible row
// into spriteLayer, ported from _preprocessSprite.
func (r *Renderer) preprocessSprite(o objAttrs, y int) {
	width, height := spriteDims(o)
	start, end := r.start, r.end

	wraps := o.y+height-256 >= 0
	if (y < o.y && (!wraps || y >= o.y+height-256)) || y >= o.y+height {
		return
	}

	flags := r.spriteFlags(o)
	variant := r.spriteVariant()
	x := o.x

	inY := y - o.y
	if wraps {
		inY += 256
	}
	if o.vflip {
		inY = height - inY - 1
	}

	charBase := r.objTileBase() + uint32(o.tile)*0x20

	from := x
	if from < start {
		from = start
	}
	to := x + width
	if to > end {
		to = end
	}

	for outX := from; outX < to; outX++ {
		if r.row[outX]&flagUnwritten == 0 {
			continue
		}

		inX := outX - x
		if o.hflip {
			inX = width - inX - 1
		}

		var tileData uint32
		if !o.multipalette {
			xBase := uint32(inX&^0x7)*4 + uint32((inX>>1)&2)
			yBase := spriteYBase16(r.dispcnt.objCharacterMapping, width, inY)
			word := (yBase + charBase + xBase) >> 1
			half := r.readVRAMHalf16(word * 2)
			tileData = uint32((half >> uint((inX&3)<<2)) & 0xF)
		} else {
			xBase := uint32(inX&^0x7)*8 + uint32(inX&6)
			yBase := spriteYBase256(r.dispcnt.objCharacterMapping, width, inY)
			word := (yBase + charBase + xBase) >> 1
			half := r.readVRAMHalf16(word * 2)
			tileData = uint32((half >> uint((inX&1)<<3)) & 0xFF)
		}

		if r.spriteLayer[outX] != 0 {
			continue
		}
		if color, ok := r.spritePixel(o.multipalette, o.palette, variant, tileData); ok {
			r.spriteLayer[outX] = color | flags
		}
	}
}

// preprocessTransformedSprite draws one affine sprite's visible row
// into spriteLayer, ported from _preprocessTransformedSprite.
func (r *Renderer) preprocessTransformedSprite(o objAttrs, y int) {
	width, height := spriteDims(o)
	totalWidth, totalHeight := width, height
	if o.doublesize {
		totalWidth <<= 1
		totalHeight <<= 1
	}
	start, end := r.start, r.end

	wraps := o.y+totalHeight-256 >= 0
	if (y < o.y && (!wraps || y >= o.y+totalHeight-256)) || y >= o.y+totalHeight {
		return
	}

	flags := r.spriteFlags(o)
	variant := r.spriteVariant()
	x := o.x
	charBase := r.objTileBase() + uint32(o.tile)*0x20
	a, b, c, d := affineMatrix(r.oam, o.matIndex)

	inY := y - o.y
	if inY < 0 {
		inY += 256
	}

	from := x
	if from < start {
		from = start
	}
	to := x + totalWidth
	if to > end {
		to = end
	}

	for outX := from; outX < to; outX++ {
		if r.row[outX]&flagUnwritten == 0 {
			continue
		}

		inX := outX - x
		localX := int(((a*int32(inX-totalWidth/2) + b*int32(inY-totalHeight/2)) >> 8)) + width/2
		localY := int(((c*int32(inX-totalWidth/2) + d*int32(inY-totalHeight/2)) >> 8)) + height/2

		if localX < 0 || localX >= width || localY < 0 || localY >= height {
			continue
		}

		var tileData uint32
		if !o.multipalette {
			xBase := uint32(localX&^0x7)*4 + uint32((localX>>1)&2)
			yBase := spriteYBase16(r.dispcnt.objCharacterMapping, width, localY)
			word := (yBase + charBase + xBase) >> 1
			half := r.readVRAMHalf16(word * 2)
			tileData = uint32((half >> uint((localX&3)<<2)) & 0xF)
		} else {
			xBase := uint32(localX&^0x7)*8 + uint32(localX&6)
			yBase := spriteYBase256(r.dispcnt.objCharacterMapping, width, localY)
			word := (yBase + charBase + xBase) >> 1
			half := r.readVRAMHalf16(word * 2)
			tileData = uint32((half >> uint((localX&1)<<3)) & 0xFF)
		}

		if r.spriteLayer[outX] != 0 {
			continue
		}
		if color, ok := r.spritePixel(o.multipalette, o.palette, variant, tileData); ok {
			r.spriteLayer[outX] = color | flags
		}
	}
}

func spriteYBase16(objCharacterMapping bool, width, localY int) uint32 {
	stride := 0x80
	if objCharacterMapping {
		stride = width >> 1
	}
	return uint32(localY&^0x7)*uint32(stride) + uint32(localY&0x7)*4
}

func spriteYBase256(objCharacterMapping bool, width, localY int) uint32 {
	stride := 0x80
	if objCharacterMapping {
		stride = width
	}
	return uint32(localY&^0x7)*uint32(stride) + uint32(localY&0x7)*8
}

// postprocessSprite composites every spriteLayer entry matching
// priority into the real row buffer, ported bit-for-bit from
// _postprocessSprite. The scratch buffer's flagFinalized bit just
// means "a sprite claimed this pixel"; it's stripped before handing
// the color to composite, which assigns the row buffer's own
// finalized bit as appropriate.
func (r *Renderer) postprocessSprite(priority int) {
	for x := 0; x < ScreenWidth; x++ {
		color := r.spriteLayer[x]
		if color&flagFinalized != 0 && extractPriority(color) == priority && r.row[x]&flagFinalized == 0 {
			r.composite(x, color&^flagFinalized)
		}
	}
}
