package gba

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildScene(t *testing.T, version uint16, name string, records func(buf *[]byte)) []byte {
	t.Helper()
	data := []byte{'G', 'S', 'C', 'N'}
	data = appendU16(data, version)
	nameField := make([]byte, 16)
	copy(nameField, name)
	data = append(data, nameField...)
	if records != nil {
		records(&data)
	}
	data = append(data, OpEnd)
	return data
}

func appendU16(b []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendU32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

func TestCartridgeLoadRejectsBadMagic(t *testing.T) {
	data := buildScene(t, 1, "bad", nil)
	data[0] = 'X'

	c := NewCartridge()
	require.Error(t, c.Load(data))
}

func TestCartridgeLoadRejectsTooSmall(t *testing.T) {
	c := NewCartridge()
	require.Error(t, c.Load([]byte{'G', 'S', 'C', 'N'}))
}

func TestCartridgeLoadRejectsUnsupportedVersion(t *testing.T) {
	data := buildScene(t, 2, "future", nil)
	c := NewCartridge()
	require.Error(t, c.Load(data))
}

func TestCartridgeLoadDecodesWritesByScanline(t *testing.T) {
	data := buildScene(t, 1, "demo", func(buf *[]byte) {
		// Scanline 0: video register write.
		*buf = append(*buf, OpWriteVideoRegister)
		*buf = appendU16(*buf, 0)
		*buf = appendU16(*buf, 0x0000) // DISPCNT offset
		*buf = appendU16(*buf, 0x1404)

		// Scanline 5: palette write.
		*buf = append(*buf, OpWritePalette)
		*buf = appendU16(*buf, 5)
		*buf = appendU16(*buf, 0x0000)
		*buf = appendU16(*buf, 0x7C00)

		// Scanline 5: VRAM write.
		*buf = append(*buf, OpWriteVRAM)
		*buf = appendU16(*buf, 5)
		*buf = appendU32(*buf, 0x1000)
		*buf = appendU16(*buf, 2)
		*buf = append(*buf, 0xAB, 0xCD)
	})

	c := NewCartridge()
	require.NoError(t, c.Load(data))
	require.Equal(t, "demo", c.Name)
	require.Equal(t, 3, c.NumWrites())

	scan0 := c.ScanlineCommands(0)
	require.Len(t, scan0, 1)
	require.Equal(t, byte(OpWriteVideoRegister), scan0[0].Op)
	require.Equal(t, uint16(0x1404), scan0[0].Value)

	scan5 := c.ScanlineCommands(5)
	require.Len(t, scan5, 2)
	require.Equal(t, byte(OpWritePalette), scan5[0].Op)
	require.Equal(t, uint16(0x7C00), scan5[0].Value)
	require.Equal(t, byte(OpWriteVRAM), scan5[1].Op)
	require.Equal(t, uint32(0x1000), scan5[1].Address)
	require.Len(t, scan5[1].Bytes, 2)
}

func TestCartridgeLoadRejectsOutOfRangeVRAMWrite(t *testing.T) {
	data := buildScene(t, 1, "oob", func(buf *[]byte) {
		*buf = append(*buf, OpWriteVRAM)
		*buf = appendU16(*buf, 0)
		*buf = appendU32(*buf, uint32(VRAMSize-1))
		*buf = appendU16(*buf, 4)
		*buf = append(*buf, 0, 0, 0, 0)
	})

	c := NewCartridge()
	require.Error(t, c.Load(data))
}

func TestCartridgeLoadClampsScanlineBeyondVisibleRange(t *testing.T) {
	data := buildScene(t, 1, "clamp", func(buf *[]byte) {
		*buf = append(*buf, OpWriteVideoRegister)
		*buf = appendU16(*buf, 9000)
		*buf = appendU16(*buf, 0)
		*buf = appendU16(*buf, 0)
	})

	c := NewCartridge()
	require.NoError(t, c.Load(data))
	require.Len(t, c.ScanlineCommands(VisibleScanlines-1), 1)
}
