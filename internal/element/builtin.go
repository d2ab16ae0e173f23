package element

import (
	"sync"

	"github.com/rook-computer/spectroscope/internal/spectrum"
)

// Relative strengths are illustrative, normalized to the strongest visible
// line of each element.
var builtinElements = []Element{
	{Number: 2, Symbol: "He", Name: "Helium",
		Wavelengths: []float64{4026.2, 4471.5, 4713.1, 4921.9, 5015.7, 5875.6, 6678.2, 7065.2},
		Strengths:   []float64{0.1, 0.4, 0.06, 0.1, 0.2, 1, 0.4, 0.3}},
	{Number: 3, Symbol: "Li", Name: "Lithium",
		Wavelengths: []float64{4602.9, 6103.6, 6707.8},
		Strengths:   []float64{0.05, 0.2, 1}},
	{Number: 10, Symbol: "Ne", Name: "Neon",
		Wavelengths: []float64{5852.5, 5881.9, 5944.8, 6143.1, 6266.5, 6334.4, 6402.2, 6506.5, 6678.3, 6929.5},
		Strengths:   []float64{0.5, 0.2, 0.1, 0.2, 0.3, 0.2, 1, 0.3, 0.2, 0.2}},
	{Number: 11, Symbol: "Na", Name: "Sodium",
		Wavelengths: []float64{4982.8, 5682.6, 5688.2, 5889.95, 5895.92, 6154.2, 6160.7},
		Strengths:   []float64{0.01, 0.02, 0.03, 1, 0.5, 0.01, 0.02}},
	{Number: 12, Symbol: "Mg", Name: "Magnesium",
		Wavelengths: []float64{4571.1, 4703.0, 5167.3, 5172.7, 5183.6, 5528.4},
		Strengths:   []float64{0.02, 0.05, 0.3, 0.6, 1, 0.1}},
	{Number: 19, Symbol: "K", Name: "Potassium",
		Wavelengths: []float64{4044.1, 4047.2, 5801.8, 6911.1, 6938.8},
		Strengths:   []float64{0.2, 0.1, 0.01, 0.03, 0.03}},
	{Number: 20, Symbol: "Ca", Name: "Calcium",
		Wavelengths: []float64{4226.7, 4454.8, 5588.8, 6122.2, 6162.2, 6439.1},
		Strengths:   []float64{1, 0.2, 0.1, 0.2, 0.2, 0.15}},
	{Number: 29, Symbol: "Cu", Name: "Copper",
		Wavelengths: []float64{5105.5, 5153.2, 5218.2, 5782.1},
		Strengths:   []float64{0.3, 0.5, 1, 0.2}},
	{Number: 36, Symbol: "Kr", Name: "Krypton",
		Wavelengths: []float64{4319.6, 4376.1, 5570.3, 5870.9, 6456.3},
		Strengths:   []float64{0.1, 0.1, 1, 0.8, 0.05}},
	{Number: 48, Symbol: "Cd", Name: "Cadmium",
		Wavelengths: []float64{4678.1, 4799.9, 5085.8, 6438.5},
		Strengths:   []float64{0.3, 0.5, 0.8, 1}},
	{Number: 54, Symbol: "Xe", Name: "Xenon",
		Wavelengths: []float64{4501.0, 4624.3, 4671.2, 4734.2, 4807.0, 4923.2},
		Strengths:   []float64{0.2, 0.5, 1, 0.3, 0.2, 0.2}},
	{Number: 55, Symbol: "Cs", Name: "Caesium",
		Wavelengths: []float64{4555.3, 4593.2, 6723.3},
		Strengths:   []float64{1, 0.5, 0.05}},
	{Number: 80, Symbol: "Hg", Name: "Mercury",
		Wavelengths: []float64{4046.6, 4077.8, 4358.3, 5460.7, 5769.6, 5790.7},
		Strengths:   []float64{0.18, 0.05, 0.4, 1, 0.1, 0.12}},
}

// balmerStrengths weights H-alpha through H-epsilon.
var balmerStrengths = []float64{1, 0.35, 0.17, 0.09, 0.05}

var (
	builtinOnce    sync.Once
	builtinCatalog *Catalog
)

// Builtin returns the catalog shipped with the binary. Hydrogen is derived
// from the Balmer series.
func Builtin() *Catalog {
	builtinOnce.Do(func() {
		elements := append([]Element{hydrogen()}, builtinElements...)
		c, err := NewCatalog(elements)
		if err != nil {
			panic(err)
		}
		builtinCatalog = c
	})
	return builtinCatalog
}

func hydrogen() Element {
	h := Element{Number: 1, Symbol: "H", Name: "Hydrogen"}
	for i, strength := range balmerStrengths {
		wave, err := spectrum.RydbergWavelength(1, 2, i+3)
		if err != nil {
			continue
		}
		h.Wavelengths = append(h.Wavelengths, wave)
		h.Strengths = append(h.Strengths, strength)
	}
	return h
}
