package ppu

// composite merges an incoming layer pixel into the row buffer at
// offset, ported bit-for-bit from _composite. Priority lives in the
// color's high bits so a single unsigned comparison both orders
// drawing priority and, via FlagUnwritten/FlagIsBackground sitting
// above it, resolves the "first write always lands, sprites tie-break
// above backgrounds at equal priority" rules without any extra branch
// on layer kind.
func (r *Renderer) composite(offset int, color uint32) {
	current := r.row[offset]

	if color < current {
		switch {
		case current&flagUnwritten != 0:
			r.row[offset] = color
		case color&flagTarget1 == 0 || current&flagTarget2 == 0:
			r.row[offset] = color | flagFinalized
		default:
			r.row[offset] = mix(int(r.blend.bldb), current, int(r.blend.blda), color) | flagFinalized
		}
		return
	}

	if current&flagTarget1 != 0 && color&flagTarget2 != 0 {
		r.row[offset] = mix(int(r.blend.blda), current, int(r.blend.bldb), color) | flagFinalized
	} else {
		r.row[offset] = current | flagFinalized
	}
}
