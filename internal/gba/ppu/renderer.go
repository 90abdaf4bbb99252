package ppu

import (
	"fmt"

	"gba-core-dx/internal/debug"
)

// Real GBA I/O register offsets (within the 0x04000000 I/O page) this
// renderer responds to; every other offset is a silently-ignored stub,
// logged at trace level rather than rejected.
const (
	regDISPCNT = 0x000
	regBG0CNT  = 0x008
	regBG1CNT  = 0x00A
	regBG2CNT  = 0x00C
	regBG3CNT  = 0x00E
	regBG0HOFS = 0x010
	regBG0VOFS = 0x012
	regBG1HOFS = 0x014
	regBG1VOFS = 0x016
	regBG2HOFS = 0x018
	regBG2VOFS = 0x01A
	regBG3HOFS = 0x01C
	regBG3VOFS = 0x01E
	regBG2PA   = 0x020
	regBG2PB   = 0x022
	regBG2PC   = 0x024
	regBG2PD   = 0x026
	regBG2XLO  = 0x028
	regBG2XHI  = 0x02A
	regBG2YLO  = 0x02C
	regBG2YHI  = 0x02E
	regBG3PA   = 0x030
	regBG3PB   = 0x032
	regBG3PC   = 0x034
	regBG3PD   = 0x036
	regBG3XLO  = 0x038
	regBG3XHI  = 0x03A
	regBG3YLO  = 0x03C
	regBG3YHI  = 0x03E
	regBLDCNT  = 0x050
	regBLDALPHA = 0x052
	regBLDY    = 0x054
)

// Renderer is a GBA-class software PPU: it owns no memory of its own
// besides derived/cached state (decoded registers, the expanded
// palette cache, the OAM-enabled bitmap, and per-scanline scratch
// buffers) and is handed read-only views of VRAM and OAM by whatever
// owns them (internal/gba.Bus). Palette RAM is not viewed directly;
// every write is mirrored into normalPalette/variantPalette via
// WritePalette, the way the original pre-expands RGB555 into RGB888
// once per write rather than per pixel.
type Renderer struct {
	vram []byte
	oam  []byte

	dispcnt dispcnt
	bg      [4]background
	blend   blendState

	normalPalette  [512]uint32
	variantPalette [512]uint32
	enabled        enabledBitmap

	row         []uint32
	spriteLayer []uint32
	start, end  int

	outputBuffer []uint32
	outputStride int

	// DebugBoundsCheck toggles a panic on out-of-range VRAM reads
	// instead of silently clamping/ignoring them; off by default to
	// match the hot path's no-error-return contract (spec.md §7).
	DebugBoundsCheck bool

	logger *debug.Logger

	sync frameSync
}

// NewRenderer constructs a renderer with VRAM/OAM read-only views and
// an optional logger, mirroring the teacher's NewPPU(logger) shape.
func NewRenderer(vram, oam []byte, logger *debug.Logger) *Renderer {
	r := &Renderer{
		vram:         vram,
		oam:          oam,
		spriteLayer:  make([]uint32, ScreenWidth),
		outputBuffer: make([]uint32, ScreenWidth*ScreenHeight),
		outputStride: ScreenWidth,
		start:        0,
		end:          ScreenWidth,
		logger:       logger,
	}
	r.Init()
	return r
}

// Init resets all renderer state to power-on defaults, matching
// GBAVideoSoftwareRendererInit.
func (r *Renderer) Init() {
	r.dispcnt = decodeDispcnt(0x0080)

	r.blend = blendState{}
	for i := range r.normalPalette {
		r.normalPalette[i] = 0
		r.variantPalette[i] = 0
	}
	r.enabled = enabledBitmap{}

	for i := range r.bg {
		r.bg[i] = background{
			index: i,
			dx:    256,
			dmy:   256,
		}
	}

	r.sync.reset()
}

// Deinit releases anything FinishFrame callers might be blocked on, so
// a presenter goroutine doesn't hang forever if the renderer is torn
// down mid-frame.
func (r *Renderer) Deinit() {
	r.sync.shutdown()
}

// WriteVideoRegister decodes one 16-bit I/O register write, applying
// the same per-register masks as the original, and returns the masked
// value actually latched (spec.md §6's external interface contract).
func (r *Renderer) WriteVideoRegister(address uint32, value uint16) uint16 {
	switch address {
	case regDISPCNT:
		value &= dispcntWriteMask
		r.dispcnt = decodeDispcnt(value)
		r.updateDISPCNT()
	case regBG0CNT:
		value &= bgcntWriteMask
		r.bg[0].writeBGCNT(value)
	case regBG1CNT:
		value &= bgcntWriteMask
		r.bg[1].writeBGCNT(value)
	case regBG2CNT:
		value &= bgcntWriteMask
		r.bg[2].writeBGCNT(value)
	case regBG3CNT:
		value &= bgcntWriteMask
		r.bg[3].writeBGCNT(value)
	case regBG0HOFS:
		value &= bgOffsetWriteMask
		r.bg[0].x = value
	case regBG0VOFS:
		value &= bgOffsetWriteMask
		r.bg[0].y = value
	case regBG1HOFS:
		value &= bgOffsetWriteMask
		r.bg[1].x = value
	case regBG1VOFS:
		value &= bgOffsetWriteMask
		r.bg[1].y = value
	case regBG2HOFS:
		value &= bgOffsetWriteMask
		r.bg[2].x = value
	case regBG2VOFS:
		value &= bgOffsetWriteMask
		r.bg[2].y = value
	case regBG3HOFS:
		value &= bgOffsetWriteMask
		r.bg[3].x = value
	case regBG3VOFS:
		value &= bgOffsetWriteMask
		r.bg[3].y = value
	case regBG2PA:
		r.bg[2].writeBGPA(value)
	case regBG2PB:
		r.bg[2].writeBGPB(value)
	case regBG2PC:
		r.bg[2].writeBGPC(value)
	case regBG2PD:
		r.bg[2].writeBGPD(value)
	case regBG2XLO:
		r.bg[2].writeBGX_LO(value)
	case regBG2XHI:
		r.bg[2].writeBGX_HI(value)
	case regBG2YLO:
		r.bg[2].writeBGY_LO(value)
	case regBG2YHI:
		r.bg[2].writeBGY_HI(value)
	case regBG3PA:
		r.bg[3].writeBGPA(value)
	case regBG3PB:
		r.bg[3].writeBGPB(value)
	case regBG3PC:
		r.bg[3].writeBGPC(value)
	case regBG3PD:
		r.bg[3].writeBGPD(value)
	case regBG3XLO:
		r.bg[3].writeBGX_LO(value)
	case regBG3XHI:
		r.bg[3].writeBGX_HI(value)
	case regBG3YLO:
		r.bg[3].writeBGY_LO(value)
	case regBG3YHI:
		r.bg[3].writeBGY_HI(value)
	case regBLDCNT:
		r.writeBLDCNT(value)
	case regBLDALPHA:
		r.blend.blda = clampBlendWeight(value & 0x1F)
		r.blend.bldb = clampBlendWeight((value >> 8) & 0x1F)
	case regBLDY:
		r.blend.bldy = clampBlendWeight(value & 0x1F)
		r.updatePalettes()
	default:
		if r.logger != nil {
			r.logger.LogPPUf(debug.LogLevelTrace, "stub video register write: 0x%03X", address)
		}
	}
	return value
}

func clampBlendWeight(v uint16) uint16 {
	if v > 0x10 {
		return 0x10
	}
	return v
}

func (r *Renderer) updateDISPCNT() {
	r.bg[0].enabled = r.dispcnt.bg0Enable
	r.bg[1].enabled = r.dispcnt.bg1Enable
	r.bg[2].enabled = r.dispcnt.bg2Enable
	r.bg[3].enabled = r.dispcnt.bg3Enable
}

func (r *Renderer) writeBLDCNT(value uint16) {
	old := r.blend.effect

	r.bg[0].target1 = value&0x1 != 0
	r.bg[1].target1 = value&0x2 != 0
	r.bg[2].target1 = value&0x4 != 0
	r.bg[3].target1 = value&0x8 != 0
	r.blend.target1Obj = value&0x10 != 0
	r.blend.target1Bd = value&0x20 != 0

	r.blend.effect = BlendEffect((value >> 6) & 0x3)

	r.bg[0].target2 = value&0x100 != 0
	r.bg[1].target2 = value&0x200 != 0
	r.bg[2].target2 = value&0x400 != 0
	r.bg[3].target2 = value&0x800 != 0
	r.blend.target2Obj = value&0x1000 != 0
	r.blend.target2Bd = value&0x2000 != 0

	if old != r.blend.effect {
		r.updatePalettes()
	}
}

// WritePalette mirrors one 16-bit palette RAM write into the pre-
// expanded normal/variant caches, ported from
// GBAVideoSoftwareRendererWritePalette.
func (r *Renderer) WritePalette(address uint32, value uint16) {
	color32 := expandColor555(value)
	idx := address >> 1
	if int(idx) >= len(r.normalPalette) {
		if r.DebugBoundsCheck {
			panic(fmt.Sprintf("ppu: palette write out of range: address=0x%X", address))
		}
		return
	}
	r.normalPalette[idx] = color32
	switch r.blend.effect {
	case BlendBrighten:
		r.variantPalette[idx] = brighten(color32, r.blend.bldy)
	case BlendDarken:
		r.variantPalette[idx] = darken(color32, r.blend.bldy)
	}
}

// WriteOAM refreshes the OAM-enabled bitmap for the sprite touched by
// a 16-bit OAM write, ported from GBAVideoSoftwareRendererWriteOAM.
// wordIndex is the OAM address divided by 2 (a 16-bit word index into
// the 1KiB OAM region); writes to the 4th word of any entry (the
// affine-matrix-parameter slot) don't touch a sprite's enabled state
// and are ignored here.
func (r *Renderer) WriteOAM(wordIndex uint32) {
	if wordIndex&0x3 == 0x3 {
		return
	}
	spriteIndex := int(wordIndex >> 2)
	if spriteIndex >= numSprites {
		if r.DebugBoundsCheck {
			panic(fmt.Sprintf("ppu: OAM write out of range: sprite index %d", spriteIndex))
		}
		return
	}
	r.enabled.update(r.oam, spriteIndex)
}

func (r *Renderer) updatePalettes() {
	switch r.blend.effect {
	case BlendBrighten:
		for i := range r.normalPalette {
			r.variantPalette[i] = brighten(r.normalPalette[i], r.blend.bldy)
		}
	case BlendDarken:
		for i := range r.normalPalette {
			r.variantPalette[i] = darken(r.normalPalette[i], r.blend.bldy)
		}
	default:
		copy(r.variantPalette[:], r.normalPalette[:])
	}
}

// OutputBuffer returns the full framebuffer, row-major, 0x00BBGGRR
// pixels with the residual flag byte still present (spec.md §6: the
// flag byte is part of the documented output format, callers mask it
// off if they only want RGB).
func (r *Renderer) OutputBuffer() []uint32 { return r.outputBuffer }

// Stride returns the configured row stride of OutputBuffer.
func (r *Renderer) Stride() int { return r.outputStride }
