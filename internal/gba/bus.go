package gba

import (
	"fmt"

	"gba-core-dx/internal/debug"
)

// VideoRenderer is the subset of internal/gba/ppu.Renderer the bus
// drives. Matching it as an interface here (rather than importing the
// concrete type) keeps gba free to run against a fake renderer in bus
// tests, the way the teacher's Bus took an IOHandler rather than a
// concrete PPU.
type VideoRenderer interface {
	WriteVideoRegister(address uint32, value uint16) uint16
	WritePalette(address uint32, value uint16)
	WriteOAM(wordIndex uint32)
	DrawScanline(y int)
	FinishFrame()
}

// Bus owns the three memory regions the renderer borrows read-only
// views of (VRAM, OAM) or mirrors on write (palette RAM), and routes
// CPU-side writes to the renderer the way the teacher's Bus routed
// register writes to its IOHandler implementations.
type Bus struct {
	VRAM    [VRAMSize]byte
	Palette [PaletteRAMSize]byte
	OAM     [OAMSize]byte

	Cartridge *Cartridge
	Renderer  VideoRenderer

	logger *debug.Logger
}

// NewBus creates a bus with no cartridge or renderer attached yet.
func NewBus() *Bus {
	return &Bus{}
}

// SetLogger sets the logger used for bus-level debug logging.
func (b *Bus) SetLogger(logger *debug.Logger) {
	b.logger = logger
}

// Attach wires the renderer in. The renderer's read-only views of VRAM
// and OAM come from VRAMView/OAMView at its construction, not from
// Attach. Palette RAM is not handed over by reference: every write is
// mirrored into the renderer's own palette cache via WritePalette, the
// way real palette RAM writes also update mGBA's pre-expanded cache.
func (b *Bus) Attach(renderer VideoRenderer) {
	b.Renderer = renderer
}

// VRAMView returns a read-only view of VRAM for the renderer to attach
// to at construction time.
func (b *Bus) VRAMView() []byte { return b.VRAM[:] }

// OAMView returns a read-only view of OAM for the renderer to attach to
// at construction time.
func (b *Bus) OAMView() []byte { return b.OAM[:] }

// Write16 dispatches a 16-bit write to the appropriate memory region by
// absolute address, mirroring raw storage locally and forwarding to the
// renderer where the renderer keeps derived state (registers, palette
// cache, OAM enabled bitmap).
func (b *Bus) Write16(address uint32, value uint16) {
	switch {
	case address >= IOBase && address < IOBase+IOSize:
		offset := address - IOBase
		if b.Renderer != nil {
			masked := b.Renderer.WriteVideoRegister(offset, value)
			if b.logger != nil {
				b.logger.LogBusf(debug.LogLevelTrace, "video register write: addr=0x%03X value=0x%04X masked=0x%04X", offset, value, masked)
			}
		}

	case address >= PaletteBase && address < PaletteBase+PaletteRAMSize:
		offset := address - PaletteBase
		b.Palette[offset] = byte(value)
		b.Palette[offset+1] = byte(value >> 8)
		if b.Renderer != nil {
			b.Renderer.WritePalette(offset, value)
		}

	case address >= VRAMBase && address < VRAMBase+VRAMSize:
		offset := address - VRAMBase
		b.VRAM[offset] = byte(value)
		b.VRAM[offset+1] = byte(value >> 8)
		// VRAM carries no renderer-side cache; rasterizers read it
		// live during DrawScanline, so no notification is needed.

	case address >= OAMBase && address < OAMBase+OAMSize:
		offset := address - OAMBase
		b.OAM[offset] = byte(value)
		b.OAM[offset+1] = byte(value >> 8)
		if b.Renderer != nil {
			b.Renderer.WriteOAM(offset / 2)
		}

	default:
		if b.logger != nil {
			b.logger.LogBusf(debug.LogLevelWarning, "write to unmapped address 0x%08X", address)
		}
	}
}

// Write8 writes a single byte. Palette RAM and OAM are only ever
// written 16 bits at a time on real hardware; a lone byte write there
// is folded into a 16-bit read-modify-write against the existing
// value, matching the bus-level behavior spec.md §6 describes for
// palette/OAM ports.
func (b *Bus) Write8(address uint32, value byte) {
	switch {
	case address >= VRAMBase && address < VRAMBase+VRAMSize:
		b.VRAM[address-VRAMBase] = value

	case address >= PaletteBase && address < PaletteBase+PaletteRAMSize:
		aligned := address &^ 1
		existing := uint16(b.Palette[aligned-PaletteBase]) | uint16(b.Palette[aligned-PaletteBase+1])<<8
		if address&1 == 0 {
			existing = (existing &^ 0x00FF) | uint16(value)
		} else {
			existing = (existing &^ 0xFF00) | uint16(value)<<8
		}
		b.Write16(aligned, existing)

	case address >= OAMBase && address < OAMBase+OAMSize:
		aligned := address &^ 1
		existing := uint16(b.OAM[aligned-OAMBase]) | uint16(b.OAM[aligned-OAMBase+1])<<8
		if address&1 == 0 {
			existing = (existing &^ 0x00FF) | uint16(value)
		} else {
			existing = (existing &^ 0xFF00) | uint16(value)<<8
		}
		b.Write16(aligned, existing)

	case address >= IOBase && address < IOBase+IOSize:
		aligned := address &^ 1
		var existing uint16
		if address&1 != 0 {
			existing = uint16(value) << 8
		} else {
			existing = uint16(value)
		}
		b.Write16(aligned, existing)

	default:
		if b.logger != nil {
			b.logger.LogBusf(debug.LogLevelWarning, "byte write to unmapped address 0x%08X", address)
		}
	}
}

// LoadCartridge parses and attaches a cartridge, matching the teacher's
// wrapped-error idiom for ROM loading.
func (b *Bus) LoadCartridge(data []byte) error {
	cart := NewCartridge()
	if err := cart.Load(data); err != nil {
		return fmt.Errorf("failed to load cartridge: %w", err)
	}
	b.Cartridge = cart
	return nil
}

// RunFrame replays one frame's worth of scene commands against the bus
// and renderer, driven by a dot-accurate Clock so the scanline/frame
// boundaries line up with real GBA timing rather than a bare Go loop:
// Clock calls back into applyCommand+DrawScanline at each visible
// scanline's first dot, then FinishFrame at the vblank transition. It
// runs as fast as the host can; a live presenter wraps it in
// internal/clock.Clock.RunFrame to pace repeated calls to the real GBA
// frame rate instead of calling it bare in a tight loop the way a
// headless snapshot run does.
func (b *Bus) RunFrame() error {
	if b.Cartridge == nil {
		return fmt.Errorf("no cartridge loaded")
	}
	if b.Renderer == nil {
		return fmt.Errorf("no renderer attached")
	}

	dotClock := NewClock()
	dotClock.OnScanlineStart = func(y int) {
		for _, cmd := range b.Cartridge.ScanlineCommands(y) {
			b.applyCommand(cmd)
		}
		b.Renderer.DrawScanline(y)
	}
	dotClock.OnFrameEnd = func() {
		b.Renderer.FinishFrame()
	}

	return dotClock.RunFrame()
}

func (b *Bus) applyCommand(cmd SceneCommand) {
	switch cmd.Op {
	case OpWriteVideoRegister:
		b.Write16(IOBase+uint32(cmd.Address), cmd.Value)
	case OpWritePalette:
		b.Write16(PaletteBase+uint32(cmd.Address), cmd.Value)
	case OpWriteOAM:
		b.Write16(OAMBase+uint32(cmd.Address), cmd.Value)
	case OpWriteVRAM:
		for i, v := range cmd.Bytes {
			b.VRAM[int(cmd.Address)+i] = v
		}
	}
}
