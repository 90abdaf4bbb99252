// Package gba implements the memory, bus, clock and cartridge plumbing
// that drives the GBA-class PPU renderer in internal/gba/ppu.
package gba

// Real GBA memory region sizes. VRAM and OAM are handed to the renderer
// as read-only views; palette RAM is mirrored into the renderer's own
// cache on every write (see ppu.Renderer.WritePalette).
const (
	VRAMSize       = 0x18000 // 96KiB: 64KiB BG char/map data + 32KiB OBJ tiles
	PaletteRAMSize = 0x400   // 1KiB: 256 BG entries + 256 OBJ entries, 2 bytes each
	OAMSize        = 0x400   // 1KiB: 128 sprite entries * 8 bytes

	// Base addresses of the memory-mapped regions, matching real
	// hardware so the cartridge's scene-script addressing lines up with
	// the register offsets used throughout the renderer.
	IOBase      = 0x04000000
	IOSize      = 0x0400
	PaletteBase = 0x05000000
	VRAMBase    = 0x06000000
	OAMBase     = 0x07000000

	// OBJ tile data starts partway into VRAM; the first 0x10000 bytes
	// are background character/map data in modes 0-2, or bitmap
	// framebuffer data in modes 3-5.
	OBJTileBase = 0x10000
)
