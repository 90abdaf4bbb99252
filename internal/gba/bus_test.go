package gba

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeRenderer records every call the bus routes to it, standing in
// for ppu.Renderer so bus tests don't depend on the renderer package.
type fakeRenderer struct {
	videoWrites   []uint32
	paletteWrites []uint32
	oamWrites     []uint32
	drawnLines    []int
	finished      int
}

func (f *fakeRenderer) WriteVideoRegister(address uint32, value uint16) uint16 {
	f.videoWrites = append(f.videoWrites, address)
	return value
}
func (f *fakeRenderer) WritePalette(address uint32, value uint16) {
	f.paletteWrites = append(f.paletteWrites, address)
}
func (f *fakeRenderer) WriteOAM(wordIndex uint32) {
	f.oamWrites = append(f.oamWrites, wordIndex)
}
func (f *fakeRenderer) DrawScanline(y int) { f.drawnLines = append(f.drawnLines, y) }
func (f *fakeRenderer) FinishFrame()       { f.finished++ }

func TestRunFrameFailsWithoutCartridge(t *testing.T) {
	b := NewBus()
	b.Attach(&fakeRenderer{})
	require.Error(t, b.RunFrame())
}

func TestRunFrameFailsWithoutRenderer(t *testing.T) {
	b := NewBus()
	require.NoError(t, b.LoadCartridge(buildScene(t, 1, "x", nil)))
	require.Error(t, b.RunFrame())
}

func TestRunFrameDrawsEveryVisibleScanlineInOrderThenFinishes(t *testing.T) {
	b := NewBus()
	renderer := &fakeRenderer{}
	b.Attach(renderer)
	require.NoError(t, b.LoadCartridge(buildScene(t, 1, "x", nil)))
	require.NoError(t, b.RunFrame())

	require.Len(t, renderer.drawnLines, VisibleScanlines)
	for i, y := range renderer.drawnLines {
		require.Equal(t, i, y)
	}
	require.Equal(t, 1, renderer.finished)
}

func TestRunFrameAppliesSceneCommandsBeforeTheirScanlineDraws(t *testing.T) {
	data := buildScene(t, 1, "applied", func(buf *[]byte) {
		*buf = append(*buf, OpWriteVideoRegister)
		*buf = appendU16(*buf, 3)
		*buf = appendU16(*buf, 0x0000)
		*buf = appendU16(*buf, 0x1404)
	})

	b := NewBus()
	renderer := &fakeRenderer{}
	b.Attach(renderer)
	require.NoError(t, b.LoadCartridge(data))
	require.NoError(t, b.RunFrame())

	require.Len(t, renderer.videoWrites, 1)
	require.Equal(t, uint32(0x0000), renderer.videoWrites[0])
}

func TestWrite16RoutesByAddressRangeAndMirrorsStorage(t *testing.T) {
	b := NewBus()
	renderer := &fakeRenderer{}
	b.Attach(renderer)

	b.Write16(PaletteBase+4, 0x7C00)
	require.Equal(t, byte(0x00), b.Palette[4])
	require.Equal(t, byte(0x7C), b.Palette[5])
	require.Len(t, renderer.paletteWrites, 1)
	require.Equal(t, uint32(4), renderer.paletteWrites[0])

	b.Write16(VRAMBase+8, 0xBEEF)
	require.Equal(t, byte(0xEF), b.VRAM[8])
	require.Equal(t, byte(0xBE), b.VRAM[9])

	b.Write16(OAMBase+16, 0x1234)
	require.Len(t, renderer.oamWrites, 1)
	require.Equal(t, uint32(8), renderer.oamWrites[0])
}
