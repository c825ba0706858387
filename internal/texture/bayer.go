// Package texture builds small camouflage tiles for pasting over the spare
// error-correction budget of a Qash symbol.
package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// BayerTile renders a size x size image tiled from a 2x2 Bayer-ordered
// dither pattern — dark in three of the four cells, light in the fourth —
// the same W/K checkerboard-with-a-twist pattern the Python original's
// BayerFilter.pix array stamps out by recursively hstack/vstack-doubling a
// 2x2 seed; here the periodic tiling is computed directly by indexing
// (x%2, y%2) since the recursive doubling and a flat modulo produce the
// identical repeating pattern.
func BayerTile(size int, dark, light color.Color) image.Image {
	if size < 0 {
		size = 0
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	// pix = [[R, G], [G, B]] in the original; for a monochrome camouflage
	// tile one corner (top-left) is light and the other three are dark,
	// matching qash.py main()'s own override
	// (f.pix = [[W, K], [K, K]]) which is itself a monochrome two-tone
	// choice rather than the RGGB seed.
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := dark
			if x%2 == 0 && y%2 == 0 {
				c = light
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// Paste overlays tile onto base with its top-left corner at the module
// coordinate (moduleX, moduleY), scaled by moduleSize pixels per module —
// the Go analogue of the original's Image.paste(pixel, (x*box_size,
// y*box_size)). It is the caller's job (see cmd/misqr's qash command) to
// have already confirmed that module isn't Reserved on the source symbol.
func Paste(base draw.Image, tile image.Image, moduleX, moduleY, moduleSize int) error {
	if moduleSize <= 0 {
		return fmt.Errorf("texture.Paste: moduleSize %d must be positive", moduleSize)
	}
	origin := image.Pt(moduleX*moduleSize, moduleY*moduleSize)
	dstRect := tile.Bounds().Sub(tile.Bounds().Min).Add(origin)
	draw.Draw(base, dstRect, tile, tile.Bounds().Min, draw.Src)
	return nil
}
