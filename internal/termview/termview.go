// Package termview previews emission spectra in a true-colour terminal.
package termview

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/gdamore/tcell/v2"

	"github.com/rook-computer/spectroscope/internal/element"
	"github.com/rook-computer/spectroscope/internal/render"
	"github.com/rook-computer/spectroscope/internal/spectrum"
)

const (
	axisTicks = 7
	help      = "left/right: element  q: quit"
)

var (
	textStyle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xe0, 0xe0, 0xe0)).Background(tcell.ColorBlack)
	mutedStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x80, 0x80, 0x88)).Background(tcell.ColorBlack)
)

// View draws one element at a time: a title row, the spectrum band and a
// wavelength axis.
type View struct {
	Screen   tcell.Screen
	Elements element.Source
	Renderer *spectrum.Renderer

	number int
}

func New(screen tcell.Screen, elements element.Source, renderer *spectrum.Renderer) *View {
	if renderer == nil {
		renderer = spectrum.New()
	}
	return &View{Screen: screen, Elements: elements, Renderer: renderer}
}

// Number returns the atomic number on display.
func (v *View) Number() int { return v.number }

// Select shows the element with the given atomic number; 0 picks the first.
func (v *View) Select(ctx context.Context, number int) error {
	if number == 0 {
		return v.Step(ctx, 0)
	}
	if _, err := v.Elements.Element(ctx, number); err != nil {
		return err
	}
	v.number = number
	return nil
}

// Step moves delta places through the catalog, wrapping at either end.
func (v *View) Step(ctx context.Context, delta int) error {
	elements, err := v.Elements.Elements(ctx)
	if err != nil {
		return err
	}
	next := element.Neighbor(elements, v.number, delta)
	if next == 0 {
		return errors.New("element catalog is empty")
	}
	v.number = next
	return nil
}

// Run draws and handles keys until the user quits or ctx is canceled. The
// screen must already be initialized; Run does not call Fini.
func (v *View) Run(ctx context.Context) error {
	if v.number == 0 {
		if err := v.Step(ctx, 0); err != nil {
			return err
		}
	}

	stop := context.AfterFunc(ctx, func() { _ = v.Screen.PostEvent(tcell.NewEventInterrupt(nil)) })
	defer stop()

	for {
		if err := v.Draw(ctx); err != nil {
			return err
		}
		switch ev := v.Screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			return ctx.Err()
		case *tcell.EventResize:
			v.Screen.Sync()
		case *tcell.EventKey:
			quit, err := v.HandleKey(ctx, ev)
			if quit || err != nil {
				return err
			}
		}
	}
}

// HandleKey applies one key press and reports whether the view should close.
func (v *View) HandleKey(ctx context.Context, ev *tcell.EventKey) (bool, error) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyRight, tcell.KeyDown:
		return false, v.Step(ctx, 1)
	case tcell.KeyLeft, tcell.KeyUp:
		return false, v.Step(ctx, -1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true, nil
		case ' ', 'n':
			return false, v.Step(ctx, 1)
		case 'p':
			return false, v.Step(ctx, -1)
		}
	}
	return false, nil
}

// Draw renders the current element across the full terminal width. Terminal
// cells are roughly twice as tall as wide, so the band uses half of the
// default raster height in rows.
func (v *View) Draw(ctx context.Context) error {
	w, h := v.Screen.Size()
	v.Screen.Clear()
	if w <= 0 || h < 4 {
		v.Screen.Show()
		return nil
	}

	el, err := v.Elements.Element(ctx, v.number)
	if err != nil {
		return fmt.Errorf("element %d: %w", v.number, err)
	}
	rows := min(max(spectrum.DefaultHeight(w)/2, 1), h-3)
	raster, err := v.Renderer.Render(el.Lines(), w, rows)
	if err != nil {
		return err
	}

	putString(v.Screen, 0, 0, fmt.Sprintf("%d %s %s", el.Number, el.Symbol, el.Name), textStyle)
	putString(v.Screen, w-len(help), 0, help, mutedStyle)

	for x, c := range raster.Columns {
		style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		for y := 1; y <= rows; y++ {
			v.Screen.SetContent(x, y, ' ', nil, style)
		}
	}

	cfg := v.Renderer.Config()
	band := image.Rect(0, 1, w, 1+rows)
	for _, t := range render.WavelengthTicks(cfg.Start, cfg.End, band, axisTicks) {
		v.Screen.SetContent(t.X, band.Max.Y, '|', nil, mutedStyle)
		x := min(max(t.X-len(t.Label)/2, 0), w-len(t.Label))
		putString(v.Screen, x, band.Max.Y+1, t.Label, mutedStyle)
	}

	v.Screen.Show()
	return nil
}

func putString(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		if x+i >= 0 {
			s.SetContent(x+i, y, r, nil, style)
		}
	}
}
