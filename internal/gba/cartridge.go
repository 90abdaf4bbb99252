package gba

import (
	"encoding/binary"
	"fmt"
)

// VisibleScanlines is the number of scanlines DrawScanline is called
// for per frame; VBlankScanlines follow before the next frame's first
// DrawScanline call.
const (
	VisibleScanlines = 160
	VBlankScanlines  = 68
	TotalScanlines   = VisibleScanlines + VBlankScanlines

	CyclesPerDot     = 4
	DotsPerScanline  = 308
	CyclesPerScanline = CyclesPerDot * DotsPerScanline
)

// Scene command opcodes. A cartridge is a tiny script of memory writes
// scheduled per scanline, standing in for the CPU-executable ROM the
// teacher's cartridge loader expected: there is no CPU in this module,
// so the "program" a cartridge runs is just the sequence of register/
// palette/OAM/VRAM writes a real ROM's interrupt handlers would have
// issued between scanlines.
const (
	OpWriteVideoRegister = 0x01
	OpWritePalette       = 0x02
	OpWriteOAM           = 0x03
	OpWriteVRAM          = 0x04
	OpEnd                = 0xFF
)

// SceneCommand is one decoded write from a scene script.
type SceneCommand struct {
	Op      byte
	Address uint32
	Value   uint16
	Bytes   []byte
}

const sceneMagic = "GSCN"

// Cartridge holds a decoded scene script: a header plus a list of
// memory writes scheduled against specific scanlines. Adapted from the
// teacher's internal/memory/cartridge.go header-parsing and wrapped-
// error idiom, retargeted from machine code to this scene format.
type Cartridge struct {
	Version   uint16
	Name      string
	commands  map[int][]SceneCommand
	numWrites int
}

// NewCartridge returns an empty, unloaded cartridge.
func NewCartridge() *Cartridge {
	return &Cartridge{commands: make(map[int][]SceneCommand)}
}

// Load parses a scene script. The format is:
//
//	bytes 0-3:   magic "GSCN"
//	bytes 4-5:   version (uint16 LE)
//	bytes 6-21:  name (16 bytes, NUL-padded)
//	bytes 22+:   records until OpEnd:
//	  opcode(1) scanline(uint16 LE) address(uint16 LE, uint32 LE for VRAM) value/length...
func (c *Cartridge) Load(data []byte) error {
	const headerSize = 22
	if len(data) < headerSize {
		return fmt.Errorf("scene script too small: %d bytes", len(data))
	}
	if string(data[0:4]) != sceneMagic {
		return fmt.Errorf("invalid scene script magic: %q", data[0:4])
	}

	version := binary.LittleEndian.Uint16(data[4:6])
	if version > 1 {
		return fmt.Errorf("unsupported scene script version: %d", version)
	}

	name := trimNUL(data[6:headerSize])

	commands := make(map[int][]SceneCommand)
	numWrites := 0
	pos := headerSize

	for pos < len(data) {
		op := data[pos]
		pos++
		if op == OpEnd {
			break
		}

		if pos+2 > len(data) {
			return fmt.Errorf("truncated scene script at offset %d", pos)
		}
		scanline := int(binary.LittleEndian.Uint16(data[pos : pos+2]))
		pos += 2
		if scanline >= VisibleScanlines {
			scanline = VisibleScanlines - 1
		}

		var cmd SceneCommand
		cmd.Op = op

		switch op {
		case OpWriteVideoRegister, OpWritePalette, OpWriteOAM:
			if pos+4 > len(data) {
				return fmt.Errorf("truncated write record at offset %d", pos)
			}
			cmd.Address = uint32(binary.LittleEndian.Uint16(data[pos : pos+2]))
			cmd.Value = binary.LittleEndian.Uint16(data[pos+2 : pos+4])
			pos += 4

		case OpWriteVRAM:
			if pos+6 > len(data) {
				return fmt.Errorf("truncated VRAM write header at offset %d", pos)
			}
			cmd.Address = binary.LittleEndian.Uint32(data[pos : pos+4])
			length := int(binary.LittleEndian.Uint16(data[pos+4 : pos+6]))
			pos += 6
			if pos+length > len(data) {
				return fmt.Errorf("truncated VRAM write payload at offset %d", pos)
			}
			if cmd.Address >= VRAMSize || int(cmd.Address)+length > VRAMSize {
				return fmt.Errorf("VRAM write out of range: address=0x%X length=%d", cmd.Address, length)
			}
			cmd.Bytes = append([]byte(nil), data[pos:pos+length]...)
			pos += length

		default:
			return fmt.Errorf("unknown scene script opcode 0x%02X at offset %d", op, pos-1)
		}

		commands[scanline] = append(commands[scanline], cmd)
		numWrites++
	}

	c.Version = version
	c.Name = name
	c.commands = commands
	c.numWrites = numWrites
	return nil
}

// ScanlineCommands returns the writes scheduled before scanline y is
// drawn, in script order.
func (c *Cartridge) ScanlineCommands(y int) []SceneCommand {
	return c.commands[y]
}

// NumWrites returns the total number of decoded write commands, for
// diagnostics and tests.
func (c *Cartridge) NumWrites() int { return c.numWrites }

func trimNUL(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
