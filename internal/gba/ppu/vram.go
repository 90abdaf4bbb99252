package ppu

import "encoding/binary"

// readVRAMWord32 reads one little-endian 32-bit word from VRAM at the
// given word index, matching the original's `((uint32_t*)vram)[index]`
// access pattern used by the mode 0 tile fetchers.
func (r *Renderer) readVRAMWord32(wordIndex uint32) uint32 {
	off := wordIndex * 4
	if int(off)+4 > len(r.vram) {
		if r.DebugBoundsCheck {
			panic("ppu: VRAM word32 read out of range")
		}
		return 0
	}
	return binary.LittleEndian.Uint32(r.vram[off : off+4])
}

func (r *Renderer) readVRAMByte(offset uint32) byte {
	if int(offset) >= len(r.vram) {
		if r.DebugBoundsCheck {
			panic("ppu: VRAM byte read out of range")
		}
		return 0
	}
	return r.vram[offset]
}

func (r *Renderer) readVRAMHalf16(offset uint32) uint16 {
	if int(offset)+2 > len(r.vram) {
		if r.DebugBoundsCheck {
			panic("ppu: VRAM half16 read out of range")
		}
		return 0
	}
	return binary.LittleEndian.Uint16(r.vram[offset : offset+2])
}

// textMapEntry is one 16-bit screen-block entry in text-mode (0/1) BG
// tilemaps: 10-bit tile index, h/v flip bits, 4-bit palette bank.
type textMapEntry struct {
	tile    int
	hflip   bool
	vflip   bool
	palette int
}

func decodeTextMapEntry(packed uint16) textMapEntry {
	return textMapEntry{
		tile:    int(packed & 0x3FF),
		hflip:   packed&0x400 != 0,
		vflip:   packed&0x800 != 0,
		palette: int((packed >> 12) & 0xF),
	}
}
