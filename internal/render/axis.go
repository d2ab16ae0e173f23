package render

import (
	"fmt"
	"image"

	"github.com/aclements/go-moremath/scale"
)

// Tick is one labelled mark on the wavelength axis.
type Tick struct {
	Wavelength float64
	X          int
	Label      string
}

// WavelengthTicks lays out at most maxTicks major ticks for [start,end]
// across band, which is the rectangle the spectrum raster is drawn into.
func WavelengthTicks(start, end float64, band image.Rectangle, maxTicks int) []Tick {
	if maxTicks <= 0 || !(end > start) || band.Dx() <= 0 {
		return nil
	}
	axis := scale.Linear{Min: start, Max: end}
	major, _ := axis.Ticks(scale.TickOptions{Max: maxTicks})

	ticks := make([]Tick, 0, len(major))
	for _, w := range major {
		if w < start || w > end {
			continue
		}
		x := band.Min.X + int(axis.Map(w)*float64(band.Dx()))
		x = min(x, band.Max.X-1)
		ticks = append(ticks, Tick{Wavelength: w, X: x, Label: fmt.Sprintf("%.0f", w)})
	}
	return ticks
}

// DrawWavelengthAxis draws tick marks and labels below band.
func DrawWavelengthAxis(d Drawer, band image.Rectangle, start, end float64, maxTicks int, style TextStyle) {
	const tickHeight = 12
	style.Align = TextAlignCenter
	if style.Color == nil {
		style.Color = Muted
	}
	for _, t := range WavelengthTicks(start, end, band, maxTicks) {
		d.FillRect(image.Rect(t.X-1, band.Max.Y, t.X+1, band.Max.Y+tickHeight), style.Color)
		d.DrawText(t.Label, t.X, band.Max.Y+tickHeight+4, style)
	}
}
