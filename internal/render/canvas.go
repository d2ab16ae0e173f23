package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype/truetype"
	"github.com/rook-computer/spectroscope/internal/assets"
	"github.com/rook-computer/spectroscope/internal/render/layout"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Canvas is an offscreen RGBA surface implementing Drawer. It is not safe
// for concurrent use.
type Canvas struct {
	img    *image.RGBA
	ttFont *truetype.Font
	faces  map[int]font.Face
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
}

// NewCanvas allocates a width x height canvas and parses the embedded font.
// If the font cannot be parsed, text falls back to basicfont.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		faces: make(map[int]font.Face),
	}
	if tt, err := truetype.Parse(assets.FontTTF); err == nil {
		c.ttFont = tt
	}
	return c
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) FillBackground() {
	c.FillRect(c.img.Bounds(), Background)
}

func (c *Canvas) FillRect(rect image.Rectangle, col color.Color) {
	draw.Draw(c.img, rect, &image.Uniform{C: col}, image.Point{}, draw.Src)
}

func (c *Canvas) face(size int) font.Face {
	if size <= 0 {
		size = DefaultFontSize
	}
	if c.ttFont == nil {
		return basicfont.Face7x13
	}
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(c.ttFont, &truetype.Options{Size: float64(size), DPI: 72, Hinting: font.HintingFull})
	c.faces[size] = f
	return f
}

func (c *Canvas) MeasureText(text string, style TextStyle) TextMetrics {
	face := c.face(style.Size)
	metrics := face.Metrics()
	width := font.MeasureString(face, text).Ceil()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	return TextMetrics{
		Width:      width,
		Height:     ascent + descent,
		Ascent:     ascent,
		Descent:    descent,
		LineHeight: metrics.Height.Ceil(),
	}
}

func (c *Canvas) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	m := c.MeasureText(text, style)
	switch style.Align {
	case TextAlignCenter:
		x -= m.Width / 2
	case TextAlignRight:
		x -= m.Width
	}
	fg := style.Color
	if fg == nil {
		fg = Foreground
	}
	drawer := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(fg),
		Face: c.face(style.Size),
		Dot:  fixed.P(x, y+m.Ascent),
	}
	drawer.DrawString(text)
	return m
}

func (c *Canvas) DrawTextCentered(text string) {
	w, h := c.Size()
	m := c.MeasureText(text, TextStyle{})
	c.DrawText(text, w/2, (h-m.Height)/2, TextStyle{Align: TextAlignCenter})
}

func (c *Canvas) ImageSize(img image.Image) (int, int) {
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) DrawImage(img image.Image, x, y int, opts ImageOpts) {
	if img == nil {
		return
	}
	b := img.Bounds()
	draw.Draw(c.img, image.Rect(x, y, x+b.Dx(), y+b.Dy()), img, b.Min, draw.Over)
}

// DrawImageInRect scales img into rect. Stretch ignores the aspect ratio,
// Fit letterboxes and Fill crops to rect.
func (c *Canvas) DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode) {
	if img == nil || rect.Empty() {
		return
	}
	src := img.Bounds()
	target := rect
	switch mode {
	case ScaleModeFit:
		target = layout.FitAspect(rect, src.Dx(), src.Dy())
	case ScaleModeFill:
		target = layout.FillAspect(rect, src.Dx(), src.Dy())
	}
	if target.Empty() {
		return
	}
	dst := c.img.SubImage(rect).(*image.RGBA)
	if target.Size() == src.Size() {
		draw.Draw(dst, target, img, src.Min, draw.Over)
		return
	}
	xdraw.NearestNeighbor.Scale(dst, target, img, src, xdraw.Over, nil)
}
