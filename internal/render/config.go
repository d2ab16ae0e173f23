package render

import "image/color"

// Global render configuration for colors and logical canvas.
var (
	Foreground = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF} // #e0e0e0
	Muted      = color.RGBA{R: 0x80, G: 0x80, B: 0x88, A: 0xFF} // #808088
	Background = color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xFF} // #101014

	// Logical canvas size; scaled to framebuffer.
	CanvasWidth  = 1920
	CanvasHeight = 1080

	// DefaultFontSize is used when TextStyle.Size is 0.
	DefaultFontSize = 32
)
