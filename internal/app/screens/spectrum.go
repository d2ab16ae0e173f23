package screens

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/rook-computer/spectroscope/internal/element"
	"github.com/rook-computer/spectroscope/internal/render"
	"github.com/rook-computer/spectroscope/internal/render/layout"
	"github.com/rook-computer/spectroscope/internal/spectrum"
	"github.com/rook-computer/spectroscope/internal/state"
)

const axisTicks = 7

type cachedSpectrum struct {
	number, width, height int
	element               element.Element
	raster                *spectrum.Raster
}

type cachedQR struct {
	url  string
	size int
	img  image.Image
}

// SpectrumScreen shows the selected element's emission spectrum with a
// wavelength axis and, when a URL is known, a QR code pointing at the web UI.
type SpectrumScreen struct {
	Source   element.Source
	Renderer *spectrum.Renderer
	Logger   Logger
	ShowQR   bool

	mu       sync.Mutex
	ctx      context.Context
	spectrum cachedSpectrum
	qr       cachedQR
}

func NewSpectrumScreen(source element.Source, renderer *spectrum.Renderer, logger Logger) *SpectrumScreen {
	if renderer == nil {
		renderer = spectrum.New()
	}
	return &SpectrumScreen{Source: source, Renderer: renderer, Logger: logger, ShowQR: true}
}

func (s *SpectrumScreen) Start(ctx context.Context) error {
	if s.Source == nil {
		return fmt.Errorf("no element source configured")
	}
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
	return nil
}

func (s *SpectrumScreen) Stop() error { return nil }

func (s *SpectrumScreen) Draw(d render.Drawer, st state.State) {
	d.FillBackground()
	if st.Phase == state.ERROR && st.Err != "" {
		d.DrawTextCentered(st.Err)
		return
	}
	if st.Selection.Number == 0 {
		d.DrawTextCentered("no element selected")
		return
	}

	w, h := d.Size()
	area := layout.Inset(image.Rect(0, 0, w, h), w/40)
	header, body := layout.SplitHorizontal(area, h/8)
	band := layout.SpectrumBand(body, 0)

	el, raster, err := s.render(st.Selection.Number, band.Dx(), band.Dy())
	if err != nil {
		if s.Logger != nil {
			s.Logger.Errorf("screen", "render element %d: %v", st.Selection.Number, err)
		}
		d.DrawTextCentered("spectrum unavailable")
		return
	}

	d.DrawText(fmt.Sprintf("%d  %s  %s", el.Number, el.Symbol, el.Name), header.Min.X, header.Min.Y,
		render.TextStyle{Size: h / 16})
	d.DrawImageInRect(raster, band, render.ScaleModeStretch)

	cfg := s.Renderer.Config()
	small := render.TextStyle{Size: max(h/40, 8), Color: render.Muted}
	render.DrawWavelengthAxis(d, band, cfg.Start, cfg.End, axisTicks, small)

	_, below := layout.SplitHorizontal(body, band.Dy()+h/10)
	d.DrawText(fmt.Sprintf("%d lines, %.0f to %.0f angstrom", len(el.Lines()), cfg.Start, cfg.End),
		below.Min.X, below.Min.Y, small)

	if s.ShowQR && st.Network.URL != "" {
		s.drawQR(d, below, st.Network.URL, small)
	}
}

func (s *SpectrumScreen) drawQR(d render.Drawer, region image.Rectangle, url string, style render.TextStyle) {
	square := layout.FitSquare(region)
	size := min(square.Dx(), region.Dy()*3/4)
	if size <= 0 {
		return
	}
	img, err := s.qrImage(url, size)
	if err != nil || img == nil {
		if err != nil && s.Logger != nil {
			s.Logger.Errorf("screen", "qr code: %v", err)
		}
		return
	}
	x := region.Max.X - size
	y := region.Max.Y - size
	d.DrawImage(img, x, y, render.ImageOpts{})
	style.Align = render.TextAlignRight
	m := d.MeasureText(url, style)
	d.DrawText(url, region.Max.X, y-m.LineHeight, style)
}

// render returns the element and a raster of exactly width x height,
// re-rendering only when the selection or the band size changed.
func (s *SpectrumScreen) render(number, width, height int) (element.Element, *spectrum.Raster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.spectrum
	if c.raster != nil && c.number == number && c.width == width && c.height == height {
		return c.element, c.raster, nil
	}

	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	el, err := s.Source.Element(ctx, number)
	if err != nil {
		return element.Element{}, nil, err
	}
	raster, err := s.Renderer.Render(el.Lines(), width, height)
	if err != nil {
		return element.Element{}, nil, err
	}
	s.spectrum = cachedSpectrum{number: number, width: width, height: height, element: el, raster: raster}
	return el, raster, nil
}

func (s *SpectrumScreen) qrImage(url string, size int) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.qr.img != nil && s.qr.url == url && s.qr.size == size {
		return s.qr.img, nil
	}
	img, err := render.GenerateQRCodeImage(url, size)
	if err != nil {
		return nil, err
	}
	s.qr = cachedQR{url: url, size: size, img: img}
	return img, nil
}
