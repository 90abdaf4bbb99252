package main

import "encoding/binary"

// Scene command opcodes, mirrored from internal/gba's cartridge format
// rather than imported, since the format is a small on-disk contract
// shared between writer (this tool) and reader (internal/gba.Cartridge.Load).
const (
	opWriteVideoRegister = 0x01
	opWritePalette       = 0x02
	opWriteOAM           = 0x03
	opWriteVRAM          = 0x04
	opEnd                = 0xFF
)

// GBA video I/O register offsets, relative to IOBase, for the records
// this tool emits.
const (
	regDISPCNT = 0x000
	regBG0CNT  = 0x008
	regBG1CNT  = 0x00A
	regBG2CNT  = 0x00C
	regBG3CNT  = 0x00E
	regBG2PA   = 0x020
	regBG2PB   = 0x022
	regBG2PC   = 0x024
	regBG2PD   = 0x026
	regBG2XLO  = 0x028
	regBG2XHI  = 0x02A
	regBG2YLO  = 0x02C
	regBG2YHI  = 0x02E
	regBLDCNT  = 0x050
	regBLDALPHA = 0x052
	regBLDY    = 0x054
)

// sceneBuilder accumulates scanline-scheduled writes and serializes
// them into the "GSCN" scene script format, the write-side counterpart
// to internal/gba.Cartridge.Load.
type sceneBuilder struct {
	name string
	buf  []byte
}

func newSceneBuilder(name string) *sceneBuilder {
	if len(name) > 16 {
		name = name[:16]
	}
	return &sceneBuilder{name: name}
}

func (s *sceneBuilder) writeVideoRegister(scanline int, reg uint16, value uint16) {
	s.record(opWriteVideoRegister, scanline, uint32(reg), value, nil)
}

func (s *sceneBuilder) writePalette(scanline int, index uint16, value uint16) {
	s.record(opWritePalette, scanline, uint32(index)*2, value, nil)
}

func (s *sceneBuilder) writeOAM(scanline int, byteOffset uint16, value uint16) {
	s.record(opWriteOAM, scanline, uint32(byteOffset), value, nil)
}

func (s *sceneBuilder) writeVRAM(scanline int, address uint32, data []byte) {
	s.record(opWriteVRAM, scanline, address, 0, data)
}

func (s *sceneBuilder) record(op byte, scanline int, address uint32, value uint16, data []byte) {
	s.buf = append(s.buf, op)
	s.buf = appendUint16(s.buf, uint16(scanline))

	switch op {
	case opWriteVRAM:
		s.buf = appendUint32(s.buf, address)
		s.buf = appendUint16(s.buf, uint16(len(data)))
		s.buf = append(s.buf, data...)
	default:
		s.buf = appendUint16(s.buf, uint16(address))
		s.buf = appendUint16(s.buf, value)
	}
}

// bytes serializes the full header plus every recorded command,
// terminated by opEnd.
func (s *sceneBuilder) bytes(version uint16) []byte {
	out := make([]byte, 0, 22+len(s.buf)+1)
	out = append(out, 'G', 'S', 'C', 'N')
	out = appendUint16(out, version)

	nameField := make([]byte, 16)
	copy(nameField, s.name)
	out = append(out, nameField...)

	out = append(out, s.buf...)
	out = append(out, opEnd)
	return out
}

func appendUint16(b []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendUint32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}
