package spectrum

import "math"

// Anchor maps a normalized spectral position to a reference colour.
type Anchor struct {
	Position float64
	R, G, B  uint8
}

// anchors runs violet, blue, cyan, green, yellow, red and fades to near
// black at both ends. Positions increase strictly from 0 to 1.
var anchors = [...]Anchor{
	{Position: 0, R: 0, G: 0, B: 8},
	{Position: 0.188235294, R: 0, G: 0, B: 255},
	{Position: 0.376470588, R: 0, G: 255, B: 255},
	{Position: 0.501960784, R: 0, G: 255, B: 0},
	{Position: 0.62745098, R: 255, G: 255, B: 0},
	{Position: 0.811764706, R: 255, G: 0, B: 0},
	{Position: 1, R: 8, G: 0, B: 0},
}

// Anchors returns a copy of the hue ramp.
func Anchors() []Anchor {
	out := make([]Anchor, len(anchors))
	copy(out, anchors[:])
	return out
}

// Hue interpolates the anchor ramp at position, clamped to [0,1]. The first
// anchor whose position is >= the input closes the segment, so a position
// sitting exactly on an anchor yields that anchor's colour.
func Hue(position float64) (r, g, b float64) {
	position = clampUnit(position)
	for k := 1; k < len(anchors); k++ {
		upper := anchors[k]
		if position > upper.Position {
			continue
		}
		lower := anchors[k-1]
		fraction := (position - lower.Position) / (upper.Position - lower.Position)
		r = lerp(fraction, lower.R, upper.R)
		g = lerp(fraction, lower.G, upper.G)
		b = lerp(fraction, lower.B, upper.B)
		return r, g, b
	}
	last := anchors[len(anchors)-1]
	return float64(last.R), float64(last.G), float64(last.B)
}

func lerp(fraction float64, from, to uint8) float64 {
	return fraction*(float64(to)-float64(from)) + float64(from)
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
