package ppu

import "encoding/binary"

// numSprites is the number of OAM sprite attribute entries (128 slots,
// each 8 bytes: attr0, attr1, attr2, and a padding word that doubles as
// one parameter of the affine matrix shared by every 4 consecutive
// entries).
const numSprites = 128

// objAttrs is a sprite's decoded OAM attributes. Computed on demand
// from the raw byte view rather than cached, since OAM is small (1KiB)
// and sprite preprocessing already walks it once per scanline.
type objAttrs struct {
	y            int
	transformed  bool
	doublesize   bool // valid only when transformed
	disable      bool // valid only when !transformed
	mode         int
	mosaic       bool
	multipalette bool
	shape        int

	x        int
	matIndex int  // valid only when transformed
	hflip    bool // valid only when !transformed
	vflip    bool // valid only when !transformed
	size     int

	tile     int
	priority int
	palette  int
}

func decodeOBJ(oam []byte, index int) objAttrs {
	base := index * 8
	attr0 := binary.LittleEndian.Uint16(oam[base : base+2])
	attr1 := binary.LittleEndian.Uint16(oam[base+2 : base+4])
	attr2 := binary.LittleEndian.Uint16(oam[base+4 : base+6])

	o := objAttrs{
		y:            int(attr0 & 0xFF),
		transformed:  attr0&0x100 != 0,
		mode:         int((attr0 >> 10) & 0x3),
		mosaic:       attr0&0x1000 != 0,
		multipalette: attr0&0x2000 != 0,
		shape:        int((attr0 >> 14) & 0x3),

		x:    int(attr1 & 0x1FF),
		size: int((attr1 >> 14) & 0x3),

		tile:     int(attr2 & 0x3FF),
		priority: int((attr2 >> 10) & 0x3),
		palette:  int((attr2 >> 12) & 0xF),
	}

	if o.transformed {
		o.doublesize = attr0&0x200 != 0
		o.matIndex = int((attr1 >> 9) & 0x1F)
	} else {
		o.disable = attr0&0x200 != 0
		o.hflip = attr1&0x1000 != 0
		o.vflip = attr1&0x2000 != 0
	}

	// No sign-extension is done here. The 8-bit Y coordinate is
	// treated as a position on a 256-line wraparound plane by the
	// sprite preprocessing step itself (it adds 256 back in when the
	// sprite straddles the wrap point); see preprocessSprite's
	// inY/sprite.y handling. The 9-bit X coordinate is used as-is
	// (0-511): a sprite that runs past X=511 is not wrapped back to
	// the left edge of the screen.
	return o
}

func spriteDims(o objAttrs) (width, height int) {
	idx := o.shape*8 + o.size*2
	return objSizes[idx], objSizes[idx+1]
}

// affineMatrix reads one 2x2 OAM-resident affine matrix. Every group
// of 4 consecutive OAM entries shares one matrix, the parameters
// living in the padding word (byte offset 6) of each of those 4
// entries in pa,pb,pc,pd order - the real hardware layout spec.md §3/
// §6 describes as "32 affine matrices aliased into attribute-entry
// high bits at indices 3,7,11,...,127".
func affineMatrix(oam []byte, matIndex int) (a, b, c, d int32) {
	base := matIndex * 4
	a = int32(readPad(oam, base+0))
	b = int32(readPad(oam, base+1))
	c = int32(readPad(oam, base+2))
	d = int32(readPad(oam, base+3))
	return
}

func readPad(oam []byte, entryIndex int) int16 {
	off := entryIndex*8 + 6
	return int16(binary.LittleEndian.Uint16(oam[off : off+2]))
}

// enabledBitmap tracks which of the 128 OAM slots currently reference
// a drawable sprite (affine, or plain-and-not-disabled), maintained
// incrementally on every OAM write rather than recomputed per scanline
// scan of all 128 entries, per spec.md §4's OAM-enabled-bitmap rule.
type enabledBitmap [4]uint32

func (e *enabledBitmap) update(oam []byte, spriteIndex int) {
	o := decodeOBJ(oam, spriteIndex)
	enabled := o.transformed || !o.disable
	word := spriteIndex >> 5
	bit := uint(spriteIndex & 0x1F)
	if enabled {
		e[word] |= 1 << bit
	} else {
		e[word] &^= 1 << bit
	}
}
