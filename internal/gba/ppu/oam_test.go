package ppu

import "encoding/binary"

func writeOBJAttrs(oam []byte, index int, attr0, attr1, attr2 uint16) {
	base := index * 8
	binary.LittleEndian.PutUint16(oam[base:], attr0)
	binary.LittleEndian.PutUint16(oam[base+2:], attr1)
	binary.LittleEndian.PutUint16(oam[base+4:], attr2)
}
