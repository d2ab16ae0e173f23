package web

import (
	"context"
	"errors"
	"fmt"

	"github.com/rook-computer/spectroscope/internal/element"
	"github.com/rook-computer/spectroscope/internal/spectrum"
	"github.com/rook-computer/spectroscope/internal/state"
)

// ErrSelectionUnsupported is returned by NoopSelection.
var ErrSelectionUnsupported = errors.New("selection not configured")

// SpectrumRenderer is satisfied by *spectrum.Renderer.
type SpectrumRenderer interface {
	Render(lines []spectrum.Line, width, height int) (*spectrum.Raster, error)
	Config() spectrum.Config
	Position(wave float64) float64
}

// SelectionController reads and changes the element shown on the display.
type SelectionController interface {
	Selection() state.Selection
	SelectElement(ctx context.Context, number int) (state.Selection, error)
}

type APIV1Deps struct {
	Elements  element.Source
	Renderer  SpectrumRenderer
	Selection SelectionController
	Logger    logger
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Elements == nil {
		out.Elements = element.Builtin()
	}
	if out.Renderer == nil {
		out.Renderer = spectrum.New()
	}
	if out.Selection == nil {
		out.Selection = NoopSelection{}
	}
	return out
}

type NoopSelection struct{}

func (NoopSelection) Selection() state.Selection { return state.Selection{} }

func (NoopSelection) SelectElement(context.Context, int) (state.Selection, error) {
	return state.Selection{}, ErrSelectionUnsupported
}

// StoreSelection validates element numbers against Elements and records the
// choice in Store, which display renderers redraw from.
type StoreSelection struct {
	Store    *state.Store
	Elements element.Source
}

func (s StoreSelection) Selection() state.Selection {
	return s.Store.Snapshot().Selection
}

func (s StoreSelection) SelectElement(ctx context.Context, number int) (state.Selection, error) {
	el, err := s.Elements.Element(ctx, number)
	if err != nil {
		return state.Selection{}, fmt.Errorf("select element: %w", err)
	}
	sel := state.Selection{Number: el.Number, Symbol: el.Symbol, Name: el.Name}
	s.Store.Select(sel)
	return sel, nil
}
