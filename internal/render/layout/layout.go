package layout

import "image"

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	out := image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
	return Normalize(out)
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// SplitVertical splits rect into left and right parts.
// leftWidthPx is clamped to [0, rect.Dx()].
func SplitVertical(rect image.Rectangle, leftWidthPx int) (left image.Rectangle, right image.Rectangle) {
	rect = Normalize(rect)
	leftWidthPx = clamp(leftWidthPx, 0, rect.Dx())
	left = image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+leftWidthPx, rect.Max.Y)
	right = image.Rect(rect.Min.X+leftWidthPx, rect.Min.Y, rect.Max.X, rect.Max.Y)
	return left, right
}

// SplitHorizontal splits rect into top and bottom parts.
// topHeightPx is clamped to [0, rect.Dy()].
func SplitHorizontal(rect image.Rectangle, topHeightPx int) (top image.Rectangle, bottom image.Rectangle) {
	rect = Normalize(rect)
	topHeightPx = clamp(topHeightPx, 0, rect.Dy())
	top = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+topHeightPx)
	bottom = image.Rect(rect.Min.X, rect.Min.Y+topHeightPx, rect.Max.X, rect.Max.Y)
	return top, bottom
}

// SpectrumBand returns the strip at the top of rect that holds a spectrum
// raster: full width, heightPx tall. A heightPx <= 0 uses a tenth of the
// width, the raster's own default aspect.
func SpectrumBand(rect image.Rectangle, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	if heightPx <= 0 {
		heightPx = rect.Dx() / 10
	}
	band, _ := SplitHorizontal(rect, heightPx)
	return band
}

// Center returns a (widthPx,heightPx) rectangle centered in rect. The size
// is clamped to rect.
func Center(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	widthPx = clamp(widthPx, 0, rect.Dx())
	heightPx = clamp(heightPx, 0, rect.Dy())
	x := rect.Min.X + (rect.Dx()-widthPx)/2
	y := rect.Min.Y + (rect.Dy()-heightPx)/2
	return image.Rect(x, y, x+widthPx, y+heightPx)
}

// FitAspect returns the largest rectangle with the aspect ratio of
// (srcW,srcH) that fits into rect, centered.
func FitAspect(rect image.Rectangle, srcW, srcH int) image.Rectangle {
	rect = Normalize(rect)
	if srcW <= 0 || srcH <= 0 {
		return image.Rectangle{Min: rect.Min, Max: rect.Min}
	}
	w, h := rect.Dx(), srcH*rect.Dx()/srcW
	if h > rect.Dy() {
		w, h = srcW*rect.Dy()/srcH, rect.Dy()
	}
	return Center(rect, w, h)
}

// FillAspect returns the smallest rectangle with the aspect ratio of
// (srcW,srcH) that covers rect, centered on it. The result may extend past
// rect; callers clip.
func FillAspect(rect image.Rectangle, srcW, srcH int) image.Rectangle {
	rect = Normalize(rect)
	if srcW <= 0 || srcH <= 0 {
		return image.Rectangle{Min: rect.Min, Max: rect.Min}
	}
	w, h := rect.Dx(), srcH*rect.Dx()/srcW
	if h < rect.Dy() {
		w, h = srcW*rect.Dy()/srcH, rect.Dy()
	}
	x := rect.Min.X + (rect.Dx()-w)/2
	y := rect.Min.Y + (rect.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// FitSquare returns the largest square that fits into rect, anchored at the
// bottom-right.
func FitSquare(rect image.Rectangle) image.Rectangle {
	rect = Normalize(rect)
	size := min(rect.Dx(), rect.Dy())
	return image.Rect(rect.Max.X-size, rect.Max.Y-size, rect.Max.X, rect.Max.Y)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
