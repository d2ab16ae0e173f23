package spectrum

import "math"

// Default rendering constants. Wavelengths are in angstroms.
const (
	DefaultStart     = 4000.0
	DefaultEnd       = 7000.0
	DefaultLineWidth = 1.0
	DefaultContrast  = 10.0
	DefaultContinuum = 0.5
)

// Config holds the rendering constants.
type Config struct {
	// Start and End bound the rendered wavelength range.
	Start, End float64

	// LineWidth is the Gaussian half-width applied to every line.
	LineWidth float64

	// Contrast scales normalized intensity above the continuum.
	Contrast float64

	// Continuum is the baseline brightness in [0,1] shown without lines.
	Continuum float64

	// Workers bounds the number of goroutines per render. Zero means
	// GOMAXPROCS.
	Workers int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the reference constants.
func DefaultConfig() Config {
	return Config{
		Start:     DefaultStart,
		End:       DefaultEnd,
		LineWidth: DefaultLineWidth,
		Contrast:  DefaultContrast,
		Continuum: DefaultContinuum,
	}
}

// WithRange sets the rendered wavelength range.
func WithRange(start, end float64) Option {
	return func(cfg *Config) {
		if isFinite(start) && isFinite(end) && end > start {
			cfg.Start = start
			cfg.End = end
		}
	}
}

// WithLineWidth sets the Gaussian line half-width.
func WithLineWidth(width float64) Option {
	return func(cfg *Config) {
		if isFinite(width) && width > 0 {
			cfg.LineWidth = width
		}
	}
}

// WithContrast sets the contrast gain.
func WithContrast(contrast float64) Option {
	return func(cfg *Config) {
		if isFinite(contrast) && contrast > 0 {
			cfg.Contrast = contrast
		}
	}
}

// WithContinuum sets the continuum floor.
func WithContinuum(continuum float64) Option {
	return func(cfg *Config) {
		if continuum >= 0 && continuum <= 1 {
			cfg.Continuum = continuum
		}
	}
}

// WithWorkers bounds render parallelism.
func WithWorkers(workers int) Option {
	return func(cfg *Config) {
		if workers > 0 {
			cfg.Workers = workers
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// DefaultHeight is the raster height used when the caller leaves it unset.
func DefaultHeight(width int) int {
	return width / 10
}

// Wavelength returns the wavelength sampled by column i of a raster that is
// width columns wide.
func (c Config) Wavelength(i, width int) float64 {
	dwave := (c.End - c.Start) / float64(width)
	return float64(i)*dwave + c.Start
}

// Intensity sums the Gaussian contributions of lines at wave. Lines with a
// non-finite wavelength or strength contribute nothing.
func (c Config) Intensity(lines []Line, wave float64) float64 {
	width2 := c.LineWidth * c.LineWidth
	sum := 0.0
	for _, line := range lines {
		if !isFinite(line.Wavelength) || !isFinite(line.Strength) {
			continue
		}
		delta := line.Wavelength - wave
		sum += line.Strength * math.Exp(-delta*delta/width2)
	}
	return sum
}

// Gain derives the normalization applied to intensities from their maximum.
// A zero or non-finite peak normalizes against 1, which leaves a line-free
// raster at the continuum.
func (c Config) Gain(peak float64) float64 {
	denominator := peak
	if peak == 0 || !isFinite(peak) {
		denominator = 1
	}
	return (1 - c.Continuum) * c.Contrast / denominator
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
