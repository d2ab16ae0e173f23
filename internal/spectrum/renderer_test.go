package spectrum

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/rook-computer/spectroscope/internal/testutil"
)

func TestRenderDimensions(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		wantHeight int
	}{
		{"single column", 1, 0, 0},
		{"below ten", 9, 0, 0},
		{"ten", 10, 0, 1},
		{"default height", 333, 0, 33},
		{"explicit height", 100, 7, 7},
		{"negative height", 250, -3, 25},
		{"wide", 1000, 0, 100},
	}

	lines := []Line{{Wavelength: 5000, Strength: 1}, {Wavelength: 6500, Strength: 0.3}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raster, err := Render(lines, tc.width, tc.height)
			if err != nil {
				t.Fatalf("Render error: %v", err)
			}
			if raster.Width != tc.width || len(raster.Columns) != tc.width || len(raster.Levels) != tc.width {
				t.Fatalf("width mismatch: raster=%d columns=%d levels=%d want=%d",
					raster.Width, len(raster.Columns), len(raster.Levels), tc.width)
			}
			if raster.Height != tc.wantHeight {
				t.Fatalf("height=%d want=%d", raster.Height, tc.wantHeight)
			}

			img := raster.RGBA()
			if img.Bounds().Dx() != tc.width || img.Bounds().Dy() != tc.wantHeight {
				t.Fatalf("image bounds=%v", img.Bounds())
			}
			for y := 0; y < tc.wantHeight; y++ {
				for x := 0; x < tc.width; x++ {
					if got, want := img.RGBAAt(x, y), raster.Column(x).Opaque(); got != want {
						t.Fatalf("pixel (%d,%d)=%v want column colour %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestRenderInvalidWidth(t *testing.T) {
	for _, width := range []int{0, -1, -640} {
		raster, err := Render(nil, width, 10)
		if !errors.Is(err, ErrInvalidWidth) {
			t.Fatalf("width %d: err=%v want ErrInvalidWidth", width, err)
		}
		if raster != nil {
			t.Fatalf("width %d: expected nil raster", width)
		}
	}
}

func TestRenderIdempotent(t *testing.T) {
	lines := Lines([]float64{4340.5, 4861.3, 6562.8}, []float64{0.2, 0.4, 1})

	a, err := Render(lines, 720, 0)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	b, err := Render(lines, 720, 0)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated renders differ")
	}
}

func TestRenderParallelMatchesSerial(t *testing.T) {
	lines := Lines(
		[]float64{4046.6, 4358.3, 5460.7, 5769.6, 5790.7},
		[]float64{0.18, 0.4, 1, 0.1, 0.12},
	)

	serial, err := New(WithWorkers(1)).Render(lines, 1500, 20)
	if err != nil {
		t.Fatalf("serial render error: %v", err)
	}
	parallel, err := New(WithWorkers(7)).Render(lines, 1500, 20)
	if err != nil {
		t.Fatalf("parallel render error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, parallel.Levels, serial.Levels, 0)
	if !reflect.DeepEqual(serial, parallel) {
		t.Fatalf("parallel render differs from serial render")
	}
}

func TestRenderContinuumOnly(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
	}{
		{"nil", nil},
		{"zero strengths", []Line{{4000, 0}, {7000, 0}}},
		{"mismatched arrays", Lines([]float64{5000, 6000}, nil)},
		{"non-finite strength", []Line{{5000, math.NaN()}, {5200, math.Inf(1)}}},
		{"non-finite wavelength", []Line{{math.NaN(), 1}}},
	}

	r := New()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raster, err := r.Render(tc.lines, 100, 0)
			if err != nil {
				t.Fatalf("Render error: %v", err)
			}
			if raster.Peak != 0 {
				t.Fatalf("peak=%v want=0", raster.Peak)
			}
			testutil.RequireNear(t, "gain", raster.Gain, (1-DefaultContinuum)*DefaultContrast, 0)

			for i, got := range raster.Columns {
				if raster.Levels[i] != DefaultContinuum {
					t.Fatalf("column %d: level=%v want=%v", i, raster.Levels[i], DefaultContinuum)
				}
				red, green, blue := Hue(r.Position(r.Config().Wavelength(i, 100)))
				want := RGB{
					R: uint8(math.Floor(DefaultContinuum * red)),
					G: uint8(math.Floor(DefaultContinuum * green)),
					B: uint8(math.Floor(DefaultContinuum * blue)),
				}
				if got != want {
					t.Fatalf("column %d: got %v want %v", i, got, want)
				}
			}

			if got := raster.Column(0); got != (RGB{R: 0, G: 0, B: 4}) {
				t.Fatalf("column 0=%v want {0 0 4}", got)
			}
		})
	}
}

func TestRenderPeakReachesFullContrast(t *testing.T) {
	raster, err := Render([]Line{{Wavelength: 5500, Strength: 1}}, 300, 0)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	peakColumn := 0
	for i, v := range raster.Levels {
		if v > raster.Levels[peakColumn] {
			peakColumn = i
		}
	}
	if peakColumn != 150 {
		t.Fatalf("brightest column=%d want=150", peakColumn)
	}
	if raster.Levels[150] != 1 {
		t.Fatalf("peak level=%v want=1", raster.Levels[150])
	}
	if raster.Peak != 1 {
		t.Fatalf("peak intensity=%v want=1", raster.Peak)
	}
	if got := raster.Column(150); got != (RGB{R: 0, G: 255, B: 3}) {
		t.Fatalf("peak column=%v want {0 255 3}", got)
	}
	for _, far := range []int{0, 100, 149, 151, 299} {
		if raster.Levels[far] != DefaultContinuum {
			t.Fatalf("column %d: level=%v want continuum", far, raster.Levels[far])
		}
	}
}

func TestRenderMidpointLineIsLocalMaximum(t *testing.T) {
	const width = 600
	mid := (DefaultStart + DefaultEnd) / 2
	raster, err := Render([]Line{{Wavelength: mid, Strength: 3.5}}, width, 0)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	center := width / 2
	if raster.Levels[center] <= raster.Levels[center-1] || raster.Levels[center] <= raster.Levels[center+1] {
		t.Fatalf("center is not a local maximum: %v %v %v",
			raster.Levels[center-1], raster.Levels[center], raster.Levels[center+1])
	}
	for _, far := range []int{0, center - 10, center + 10, width - 1} {
		if raster.Levels[center] <= raster.Levels[far] {
			t.Fatalf("center level %v not brighter than column %d (%v)", raster.Levels[center], far, raster.Levels[far])
		}
	}
}

func TestRenderLevelsStayInRange(t *testing.T) {
	lines := []Line{{4500, 2}, {4501, 2}, {6000, -5}, {6800, 0.001}}
	raster, err := Render(lines, 3000, 1)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	testutil.RequireFinite(t, raster.Levels)
	for i, v := range raster.Levels {
		if v < 0 || v > 1 {
			t.Fatalf("column %d: level %v out of [0,1]", i, v)
		}
	}
}

func TestPositionClamps(t *testing.T) {
	r := New()
	tests := []struct {
		wave float64
		want float64
	}{
		{1000, 0},
		{DefaultStart, 0},
		{5500, 0.5},
		{DefaultEnd, 1},
		{9000, 1},
	}
	for _, tc := range tests {
		if got := r.Position(tc.wave); got != tc.want {
			t.Fatalf("Position(%v)=%v want=%v", tc.wave, got, tc.want)
		}
	}
}

func TestRenderCustomRange(t *testing.T) {
	r := New(WithRange(6000, 7000))
	raster, err := r.Render([]Line{{Wavelength: 6500, Strength: 1}}, 100, 0)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if raster.Levels[50] != 1 {
		t.Fatalf("level at 6500 = %v want 1", raster.Levels[50])
	}
	if got := r.Position(5000); got != 0 {
		t.Fatalf("Position below custom range = %v", got)
	}
}

func BenchmarkRender(b *testing.B) {
	lines := Lines(
		[]float64{4046.6, 4358.3, 5460.7, 5769.6, 5790.7, 6149.5, 6907.2},
		[]float64{0.18, 0.4, 1, 0.1, 0.12, 0.02, 0.01},
	)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Render(lines, 1920, 0); err != nil {
			b.Fatal(err)
		}
	}
}
