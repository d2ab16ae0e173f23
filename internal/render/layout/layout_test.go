package layout

import (
	"image"
	"testing"
)

func TestInsetAndNormalize(t *testing.T) {
	got := Inset(image.Rect(0, 0, 100, 50), 10)
	if want := image.Rect(10, 10, 90, 40); got != want {
		t.Fatalf("Inset=%v want=%v", got, want)
	}
	if got := Inset(image.Rect(0, 0, 10, 10), 0); got != image.Rect(0, 0, 10, 10) {
		t.Fatalf("zero padding changed rect: %v", got)
	}
	raw := image.Rectangle{Min: image.Pt(10, 20), Max: image.Pt(0, 5)}
	if got := Normalize(raw); got.Min != image.Pt(0, 5) || got.Max != image.Pt(10, 20) {
		t.Fatalf("Normalize=%v", got)
	}
}

func TestSplits(t *testing.T) {
	rect := image.Rect(0, 0, 200, 100)

	top, bottom := SplitHorizontal(rect, 30)
	if top != image.Rect(0, 0, 200, 30) || bottom != image.Rect(0, 30, 200, 100) {
		t.Fatalf("SplitHorizontal=%v,%v", top, bottom)
	}
	top, bottom = SplitHorizontal(rect, 500)
	if top != rect || !bottom.Empty() {
		t.Fatalf("SplitHorizontal overflow=%v,%v", top, bottom)
	}

	left, right := SplitVertical(rect, -5)
	if !left.Empty() || right != rect {
		t.Fatalf("SplitVertical underflow=%v,%v", left, right)
	}
}

func TestSpectrumBand(t *testing.T) {
	rect := image.Rect(40, 100, 1840, 900)
	if got := SpectrumBand(rect, 0); got != image.Rect(40, 100, 1840, 280) {
		t.Fatalf("default band=%v", got)
	}
	if got := SpectrumBand(rect, 64); got != image.Rect(40, 100, 1840, 164) {
		t.Fatalf("explicit band=%v", got)
	}
}

func TestFitAndFillAspect(t *testing.T) {
	rect := image.Rect(0, 0, 400, 400)

	if got := FitAspect(rect, 800, 80); got != image.Rect(0, 180, 400, 220) {
		t.Fatalf("FitAspect wide=%v", got)
	}
	if got := FitAspect(rect, 100, 200); got != image.Rect(100, 0, 300, 400) {
		t.Fatalf("FitAspect tall=%v", got)
	}
	if got := FillAspect(rect, 800, 80); got != image.Rect(-1800, 0, 2200, 400) {
		t.Fatalf("FillAspect wide=%v", got)
	}
	if got := FitAspect(rect, 0, 10); !got.Empty() {
		t.Fatalf("FitAspect degenerate=%v", got)
	}
}

func TestCenterAndFitSquare(t *testing.T) {
	if got := Center(image.Rect(0, 0, 100, 100), 20, 40); got != image.Rect(40, 30, 60, 70) {
		t.Fatalf("Center=%v", got)
	}
	if got := FitSquare(image.Rect(0, 0, 300, 100)); got != image.Rect(200, 0, 300, 100) {
		t.Fatalf("FitSquare=%v", got)
	}
}
