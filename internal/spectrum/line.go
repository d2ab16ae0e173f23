package spectrum

// Line is a single emission line.
type Line struct {
	Wavelength float64 // angstroms
	Strength   float64 // relative, unitless
}

// Lines pairs wavelengths with strengths. Entries past the shorter slice are
// dropped.
func Lines(wavelengths, strengths []float64) []Line {
	n := min(len(wavelengths), len(strengths))
	if n == 0 {
		return nil
	}
	out := make([]Line, n)
	for i := range out {
		out[i] = Line{Wavelength: wavelengths[i], Strength: strengths[i]}
	}
	return out
}
