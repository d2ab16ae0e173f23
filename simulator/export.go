package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/rook-computer/spectroscope/internal/app/screens"
	"github.com/rook-computer/spectroscope/internal/element"
	"github.com/rook-computer/spectroscope/internal/render"
	"github.com/rook-computer/spectroscope/internal/spectrum"
	"github.com/rook-computer/spectroscope/internal/state"
)

// renderCard draws the device screen for one element into an image of the
// given size.
func renderCard(ctx context.Context, source element.Source, spectra *spectrum.Renderer, number, width, height int) (*image.RGBA, error) {
	el, err := source.Element(ctx, number)
	if err != nil {
		return nil, err
	}
	screen := screens.NewSpectrumScreen(source, spectra, nil)
	screen.ShowQR = false
	if err := screen.Start(ctx); err != nil {
		return nil, err
	}
	defer screen.Stop()

	canvas := render.NewCanvas(width, height)
	screen.Draw(canvas, state.State{
		Phase:     state.READY,
		Selection: state.Selection{Number: el.Number, Symbol: el.Symbol, Name: el.Name},
	})
	return canvas.Image(), nil
}

type encoder func(w io.Writer, img image.Image) error

// encoderFor picks PNG or BMP from the file extension.
func encoderFor(path string) (encoder, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return png.Encode, nil
	case ".bmp":
		return bmp.Encode, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q (use .png or .bmp)", ext)
	}
}

func exportCard(ctx context.Context, source element.Source, spectra *spectrum.Renderer, number, width, height int, path string) error {
	encode, err := encoderFor(path)
	if err != nil {
		return err
	}
	img, err := renderCard(ctx, source, spectra, number, width, height)
	if err != nil {
		return fmt.Errorf("render element %d: %w", number, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
