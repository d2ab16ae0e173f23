package spectrum

import (
	"image"
	"image/color"
)

// RGB is one raster column colour.
type RGB struct {
	R, G, B uint8
}

// Opaque converts c to a fully opaque color.RGBA.
func (c RGB) Opaque() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Raster is a rendered spectrum. Every row repeats the same column colours,
// so only one row is stored. Raster implements image.Image.
type Raster struct {
	Width  int
	Height int

	// Columns holds the colour of each column.
	Columns []RGB

	// Levels holds the brightness multiplier applied to each column's hue,
	// between 0 and 1.
	Levels []float64

	// Peak is the maximum summed line intensity over all columns and Gain
	// the normalization derived from it.
	Peak float64
	Gain float64
}

// ColorModel implements image.Image.
func (r *Raster) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (r *Raster) Bounds() image.Rectangle { return image.Rect(0, 0, r.Width, r.Height) }

// At implements image.Image.
func (r *Raster) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(r.Bounds())) {
		return color.RGBA{}
	}
	return r.Columns[x].Opaque()
}

// Column returns the colour of column x.
func (r *Raster) Column(x int) RGB { return r.Columns[x] }

// RGBA expands the raster into a full image, broadcasting each column down
// every row.
func (r *Raster) RGBA() *image.RGBA {
	img := image.NewRGBA(r.Bounds())
	if r.Height == 0 {
		return img
	}
	row := img.Pix[:4*r.Width]
	for x, c := range r.Columns {
		row[4*x+0] = c.R
		row[4*x+1] = c.G
		row[4*x+2] = c.B
		row[4*x+3] = 0xff
	}
	for y := 1; y < r.Height; y++ {
		copy(img.Pix[y*img.Stride:], row)
	}
	return img
}
