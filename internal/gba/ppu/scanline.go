package ppu

// DrawScanline renders one scanline (0-159) into the output buffer,
// ported from GBAVideoSoftwareRendererDrawScanline. A frame being
// skipped per SetFrameskip short-circuits before any raster work runs,
// same as the original's own frameskip check. Forced blank fills the
// line with white and skips everything else, matching real hardware's
// blanking behavior; otherwise the line is seeded with the backdrop
// color (palette index 0, brightened/darkened if the backdrop
// participates in a brighten/darken effect) before any layer composites
// over it.
func (r *Renderer) DrawScanline(y int) {
	if y < 0 || y >= ScreenHeight {
		return
	}
	if r.sync.skipFrame() {
		return
	}
	row := r.outputBuffer[y*r.outputStride : y*r.outputStride+ScreenWidth]

	if r.dispcnt.forcedBlank {
		for x := range row {
			row[x] = colorWhite
		}
		return
	}

	backdrop := flagUnwritten | flagPriorityMask | flagIsBackground
	if !r.blend.target1Bd || r.blend.effect == BlendNone || r.blend.effect == BlendAlpha {
		backdrop |= r.normalPalette[0]
	} else {
		backdrop |= r.variantPalette[0]
	}
	for x := range row {
		row[x] = backdrop
	}

	r.row = row
	r.start = 0
	r.end = ScreenWidth

	r.drawScanline(y)
}

const colorWhite uint32 = 0x00FFFFFF

func (r *Renderer) drawScanline(y int) {
	r.preprocessSprites(y)

	for priority := 0; priority < 4; priority++ {
		r.postprocessSprite(priority)

		if r.bg[0].enabled && r.bg[0].priority == priority && r.dispcnt.mode < 2 {
			r.drawBackgroundMode0(&r.bg[0], y)
		}
		if r.bg[1].enabled && r.bg[1].priority == priority && r.dispcnt.mode < 2 {
			r.drawBackgroundMode0(&r.bg[1], y)
		}
		if r.bg[2].enabled && r.bg[2].priority == priority {
			switch r.dispcnt.mode {
			case 0:
				r.drawBackgroundMode0(&r.bg[2], y)
			case 1, 2:
				r.drawBackgroundMode2(&r.bg[2], y)
			case 3:
				r.drawBackgroundMode3(&r.bg[2], y)
			case 4:
				r.drawBackgroundMode4(&r.bg[2], y)
			case 5:
				r.drawBackgroundMode5(&r.bg[2], y)
			}
			r.bg[2].sx += r.bg[2].dmx
			r.bg[2].sy += r.bg[2].dmy
		}
		if r.bg[3].enabled && r.bg[3].priority == priority {
			switch r.dispcnt.mode {
			case 0:
				r.drawBackgroundMode0(&r.bg[3], y)
			case 2:
				r.drawBackgroundMode2(&r.bg[3], y)
			}
			r.bg[3].sx += r.bg[3].dmx
			r.bg[3].sy += r.bg[3].dmy
		}
	}
}
