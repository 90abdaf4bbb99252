// Package ppu implements a software scanline renderer for a GBA-class
// 2D PPU: given VRAM, OAM, palette RAM and video-control register
// writes, it produces a 240x160 framebuffer one scanline at a time.
// The renderer itself never returns an error from its hot path
// (Init/WriteVideoRegister/WritePalette/WriteOAM/DrawScanline/
// FinishFrame all match the original hardware's no-error-return
// contract); masked writes and unknown registers are handled silently
// or logged, never rejected.
package ppu

// Screen geometry.
const (
	ScreenWidth  = 240
	ScreenHeight = 160
)

// Pixel flag bits, packed into the top byte of a 32-bit 0x00BBGGRR
// color alongside the RGB888 payload so that a single unsigned "<"
// comparison orders compositing priority. Ordering of significance
// (most to least) is load-bearing:
//
//	FlagUnwritten   - any real layer beats a virgin backdrop pixel
//	                  regardless of its own priority value
//	FlagFinalized   - gates re-compositing; inert for ordering since a
//	                  finalized pixel is never passed through composite
//	                  again (callers guard on it first)
//	priority (2b)   - lower value wins
//	FlagIsBackground - sprites and backgrounds tie-break at equal
//	                  priority in favor of sprites, purely because a
//	                  background's flag bit here is set and a sprite's
//	                  is not, making the background numerically larger
//	FlagTarget1/2   - blend membership, doesn't affect ordering
const (
	flagUnwritten    uint32 = 1 << 31
	flagFinalized    uint32 = 1 << 30
	priorityShift           = 28
	flagPriorityMask uint32 = 0x3 << priorityShift
	flagIsBackground uint32 = 1 << 27
	flagTarget1      uint32 = 1 << 26
	flagTarget2      uint32 = 1 << 25

	colorMask uint32 = 0x00FFFFFF
)

func priorityFlag(priority int) uint32 {
	return uint32(priority&0x3) << priorityShift
}

func extractPriority(color uint32) int {
	return int((color & flagPriorityMask) >> priorityShift)
}

// BlendEffect is the BLDCNT-selected color effect.
type BlendEffect int

const (
	BlendNone BlendEffect = iota
	BlendAlpha
	BlendBrighten
	BlendDarken
)

// Sprite OBJ modes (attr0 bits 10-11).
const (
	ObjModeNormal = iota
	ObjModeSemitransparent
	ObjModeWindow
)

// dispcnt is the decoded LCD control register. Bitfields are modeled
// as plain integers rather than Go struct bitfields (which don't
// exist); each write decodes the packed value into these named
// fields once, the way the teacher's register writes decode into
// struct fields rather than re-masking on every read.
type dispcnt struct {
	packed uint16

	mode               int
	frameSelect        bool
	objCharacterMapping bool
	forcedBlank        bool
	bg0Enable          bool
	bg1Enable          bool
	bg2Enable          bool
	bg3Enable          bool
	objEnable          bool
}

// REG_DISPCNT writes are masked with 0xFFF7 before latching them: bit
// 3 (the CGB-mode flag) is not writable, while all three mode bits
// are, so modes 4 and 5 stay selectable.
const dispcntWriteMask = 0xFFF7

func decodeDispcnt(value uint16) dispcnt {
	return dispcnt{
		packed:              value,
		mode:                int(value & 0x7),
		frameSelect:         value&0x10 != 0,
		objCharacterMapping: value&0x40 != 0,
		forcedBlank:         value&0x80 != 0,
		bg0Enable:           value&0x100 != 0,
		bg1Enable:           value&0x200 != 0,
		bg2Enable:           value&0x400 != 0,
		bg3Enable:           value&0x800 != 0,
		objEnable:           value&0x1000 != 0,
	}
}

// background holds one of the four BG layers' decoded register state
// plus its affine scan position, named and shaped after the teacher's
// internal/ppu BackgroundLayer but carrying the real GBA BGCNT/BGPA-D/
// BGX/BGY fields instead of the teacher's invented SNES-style layout.
type background struct {
	index int

	enabled bool

	priority     int
	charBase     uint32
	mosaic       bool
	multipalette bool
	screenBase   uint32
	overflow     bool
	size         int

	target1 bool
	target2 bool

	// Text-mode (0/1) scroll registers, 9-bit.
	x uint16
	y uint16

	// Affine (mode 2, BG2/BG3 only) parameters: dx/dmx/dy/dmy are 8.8
	// fixed point; refx/refy are 20.8 fixed point reference points;
	// sx/sy are the per-scanline running position, reset from refx/
	// refy at the start of every frame in FinishFrame.
	dx, dmx, dy, dmy int32
	refx, refy       int32
	sx, sy           int32
}

const bgcntWriteMask = 0xFFCF
const bgOffsetWriteMask = 0x01FF

func (bg *background) writeBGCNT(value uint16) {
	bg.priority = int(value & 0x3)
	bg.charBase = uint32(value&0xC) << 12 // (value>>2&0x3) << 14
	bg.mosaic = value&0x40 != 0
	bg.multipalette = value&0x80 != 0
	bg.screenBase = uint32(value&0x1F00) << 3 // (value>>8&0x1F) << 11
	bg.overflow = value&0x2000 != 0
	bg.size = int((value >> 14) & 0x3)
}

func (bg *background) writeBGPA(value uint16) { bg.dx = int32(int16(value)) }
func (bg *background) writeBGPB(value uint16) { bg.dmx = int32(int16(value)) }
func (bg *background) writeBGPC(value uint16) { bg.dy = int32(int16(value)) }
func (bg *background) writeBGPD(value uint16) { bg.dmy = int32(int16(value)) }

// writeBGX_LO/HI and writeBGY_LO/HI reconstruct the 32-bit reference
// point from two 16-bit writes and sign-extend it from its real 28-bit
// width. The original does this with `refx <<= 4; refx >>= 4` relying
// on a signed left-shift overflow that is undefined behavior in C but
// happens to work on every compiler that matters; Go defines signed
// shifts (left shift discards overflow bits, right shift sign-extends)
// so the same two-line idiom is well-defined here and is kept as-is
// rather than replaced with an explicit bit-27 test, to stay a literal
// port of the original arithmetic.
func (bg *background) writeBGX_LO(value uint16) {
	bg.refx = (bg.refx &^ 0xFFFF) | int32(value)
	bg.sx = bg.refx
}

func (bg *background) writeBGX_HI(value uint16) {
	bg.refx = (bg.refx & 0xFFFF) | (int32(value) << 16)
	bg.refx = (bg.refx << 4) >> 4
	bg.sx = bg.refx
}

func (bg *background) writeBGY_LO(value uint16) {
	bg.refy = (bg.refy &^ 0xFFFF) | int32(value)
	bg.sy = bg.refy
}

func (bg *background) writeBGY_HI(value uint16) {
	bg.refy = (bg.refy & 0xFFFF) | (int32(value) << 16)
	bg.refy = (bg.refy << 4) >> 4
	bg.sy = bg.refy
}

// blendState is the decoded BLDCNT/BLDALPHA/BLDY state.
type blendState struct {
	effect BlendEffect

	target1Obj bool
	target1Bd  bool
	target2Obj bool
	target2Bd  bool

	blda uint16
	bldb uint16
	bldy uint16
}

// objSizes maps (shape*8 + size*2) to {width, height} for the 4 shapes
// x 4 sizes GBA sprites support; reserved shape 3 entries are zeroed,
// producing 0x0 sprites per spec.md's "reserved pairs render nothing".
var objSizes = [32]int{
	8, 8,
	16, 16,
	32, 32,
	64, 64,
	16, 8,
	32, 8,
	32, 16,
	64, 32,
	8, 16,
	8, 32,
	16, 32,
	32, 64,
	0, 0,
	0, 0,
	0, 0,
	0, 0,
}
