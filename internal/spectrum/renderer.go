package spectrum

import (
	"math"
	"runtime"
	"sync"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/stats"
	"github.com/cwbudde/algo-vecmath"
)

// minColumnsPerWorker keeps narrow rasters on a single goroutine.
const minColumnsPerWorker = 64

// Renderer renders spectra with a fixed Config. It is safe for concurrent
// use.
type Renderer struct {
	cfg Config
}

// New returns a Renderer configured by opts on top of DefaultConfig.
func New(opts ...Option) *Renderer {
	return &Renderer{cfg: ApplyOptions(opts...)}
}

var defaultRenderer = New()

// Render renders lines with the default configuration.
func Render(lines []Line, width, height int) (*Raster, error) {
	return defaultRenderer.Render(lines, width, height)
}

// Config returns the renderer configuration.
func (r *Renderer) Config() Config { return r.cfg }

// Position maps a wavelength to its normalized place in the rendered range,
// clamped to [0,1].
func (r *Renderer) Position(wave float64) float64 {
	return r.positionScale().Map(wave)
}

func (r *Renderer) positionScale() scale.Linear {
	return scale.Linear{Min: r.cfg.Start, Max: r.cfg.End, Clamp: true}
}

// Render produces a width x height raster of lines. A height <= 0 selects
// DefaultHeight(width). Only width <= 0 is an error; empty or degenerate
// line sets render the bare continuum.
func (r *Renderer) Render(lines []Line, width, height int) (*Raster, error) {
	if err := validateWidth(width); err != nil {
		return nil, err
	}
	if height <= 0 {
		height = DefaultHeight(width)
	}
	cfg := r.cfg

	intensity := make([]float64, width)
	r.parallel(width, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			intensity[i] = cfg.Intensity(lines, cfg.Wavelength(i, width))
		}
	})

	// Every worker has joined, so the peak is final from here on.
	_, peak := stats.Bounds(intensity)
	gain := cfg.Gain(peak)

	position := r.positionScale()
	levels := make([]float64, width)
	red := make([]float64, width)
	green := make([]float64, width)
	blue := make([]float64, width)
	r.parallel(width, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			red[i], green[i], blue[i] = Hue(position.Map(cfg.Wavelength(i, width)))
			levels[i] = level(cfg.Continuum + gain*intensity[i])
		}
	})

	vecmath.MulBlockInPlace(red, levels)
	vecmath.MulBlockInPlace(green, levels)
	vecmath.MulBlockInPlace(blue, levels)

	columns := make([]RGB, width)
	for i := range columns {
		columns[i] = RGB{R: channel(red[i]), G: channel(green[i]), B: channel(blue[i])}
	}

	return &Raster{
		Width:   width,
		Height:  height,
		Columns: columns,
		Levels:  levels,
		Peak:    peak,
		Gain:    gain,
	}, nil
}

// parallel splits [0,n) into contiguous chunks and runs fn on each, returning
// once all chunks are done.
func (r *Renderer) parallel(n int, fn func(lo, hi int)) {
	workers := r.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, (n+minColumnsPerWorker-1)/minColumnsPerWorker)
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(lo, hi)
		}()
	}
	wg.Wait()
}

// level caps the brightness at 1. Negative strengths may push it below
// zero, which is clamped so channels stay in range.
func level(plot float64) float64 {
	if math.IsNaN(plot) || plot < 0 {
		return 0
	}
	return math.Min(plot, 1)
}

func channel(v float64) uint8 {
	v = math.Floor(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
