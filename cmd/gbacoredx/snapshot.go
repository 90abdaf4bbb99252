package main

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// savePNG writes a packed 0x00BBGGRR framebuffer (the flag byte, if
// any, masked off) to a PNG file, used for headless snapshotting.
// scale upscales the native 240x160 canvas by nearest-neighbor before
// encoding, since a 1:1 GBA frame is too small to inspect comfortably
// on a modern display.
func savePNG(path string, buffer []uint32, stride, height, scale int) error {
	native := image.NewRGBA(image.Rect(0, 0, stride, height))
	for y := 0; y < height; y++ {
		for x := 0; x < stride; x++ {
			c := buffer[y*stride+x] & 0x00FFFFFF
			native.Set(x, y, color.RGBA{
				R: byte(c & 0xFF),
				G: byte((c >> 8) & 0xFF),
				B: byte((c >> 16) & 0xFF),
				A: 0xFF,
			})
		}
	}

	if scale < 1 {
		scale = 1
	}
	out := native
	if scale > 1 {
		scaled := image.NewRGBA(image.Rect(0, 0, stride*scale, height*scale))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), native, native.Bounds(), draw.Over, nil)
		out = scaled
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, out)
}
