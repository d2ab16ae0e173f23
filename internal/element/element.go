// Package element supplies emission line data keyed by atomic number.
package element

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rook-computer/spectroscope/internal/spectrum"
)

// ErrNotFound is returned when no element matches the requested number.
var ErrNotFound = errors.New("element not found")

// Element is one catalog entry. Wavelengths (angstroms) and Strengths are
// paired by index; surplus entries of the longer slice are ignored.
type Element struct {
	Number      int       `json:"number"`
	Symbol      string    `json:"symbol"`
	Name        string    `json:"name"`
	Wavelengths []float64 `json:"wavelengths"`
	Strengths   []float64 `json:"strengths"`
}

// Lines returns the element's emission lines.
func (e Element) Lines() []spectrum.Line {
	return spectrum.Lines(e.Wavelengths, e.Strengths)
}

// Source looks up elements by atomic number.
type Source interface {
	Element(ctx context.Context, number int) (Element, error)
	Elements(ctx context.Context) ([]Element, error)
}

// Catalog is an immutable in-memory Source.
type Catalog struct {
	byNumber map[int]Element
	numbers  []int
}

// NewCatalog indexes elements. Numbers must be positive and unique.
func NewCatalog(elements []Element) (*Catalog, error) {
	c := &Catalog{byNumber: make(map[int]Element, len(elements))}
	for _, e := range elements {
		if e.Number <= 0 {
			return nil, fmt.Errorf("element %q: atomic number must be > 0: %d", e.Symbol, e.Number)
		}
		if _, dup := c.byNumber[e.Number]; dup {
			return nil, fmt.Errorf("element %q: duplicate atomic number %d", e.Symbol, e.Number)
		}
		c.byNumber[e.Number] = clone(e)
		c.numbers = append(c.numbers, e.Number)
	}
	sort.Ints(c.numbers)
	return c, nil
}

// Element implements Source.
func (c *Catalog) Element(ctx context.Context, number int) (Element, error) {
	if err := ctx.Err(); err != nil {
		return Element{}, err
	}
	e, ok := c.byNumber[number]
	if !ok {
		return Element{}, fmt.Errorf("%w: %d", ErrNotFound, number)
	}
	return clone(e), nil
}

// Elements implements Source. Elements are ordered by atomic number.
func (c *Catalog) Elements(ctx context.Context) ([]Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Element, 0, len(c.numbers))
	for _, n := range c.numbers {
		out = append(out, clone(c.byNumber[n]))
	}
	return out, nil
}

// Len returns the number of elements in the catalog.
func (c *Catalog) Len() int { return len(c.numbers) }

// Merge returns a catalog holding c's elements replaced or extended by
// other's.
func (c *Catalog) Merge(other *Catalog) (*Catalog, error) {
	merged := make([]Element, 0, len(c.numbers)+len(other.numbers))
	for _, n := range c.numbers {
		if _, replaced := other.byNumber[n]; !replaced {
			merged = append(merged, c.byNumber[n])
		}
	}
	for _, n := range other.numbers {
		merged = append(merged, other.byNumber[n])
	}
	out, err := NewCatalog(merged)
	if err != nil {
		return nil, fmt.Errorf("merge catalogs: %w", err)
	}
	return out, nil
}

// Neighbor returns the atomic number step places away from number in
// elements, wrapping around at either end. If number is absent the first
// element is returned; an empty list yields 0.
func Neighbor(elements []Element, number, step int) int {
	if len(elements) == 0 {
		return 0
	}
	idx := -1
	for i, e := range elements {
		if e.Number == number {
			idx = i
			break
		}
	}
	if idx < 0 {
		return elements[0].Number
	}
	n := len(elements)
	return elements[((idx+step)%n+n)%n].Number
}

func clone(e Element) Element {
	e.Wavelengths = append([]float64(nil), e.Wavelengths...)
	e.Strengths = append([]float64(nil), e.Strengths...)
	return e
}
