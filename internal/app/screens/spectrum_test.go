package screens

import (
	"context"
	"fmt"
	"image"
	"strings"
	"sync"
	"testing"

	"github.com/rook-computer/spectroscope/internal/element"
	"github.com/rook-computer/spectroscope/internal/render"
	"github.com/rook-computer/spectroscope/internal/render/layout"
	"github.com/rook-computer/spectroscope/internal/spectrum"
	"github.com/rook-computer/spectroscope/internal/state"
)

type recordingLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) Infof(component, format string, args ...interface{}) {}
func (l *recordingLogger) Errorf(component, format string, args ...interface{}) {
	l.mu.Lock()
	l.errors = append(l.errors, component+": "+fmt.Sprintf(format, args...))
	l.mu.Unlock()
}

func selected(number int) state.State {
	return state.State{Phase: state.READY, Selection: state.Selection{Number: number}}
}

func TestSpectrumScreenDrawsRasterIntoBand(t *testing.T) {
	const w, h = 960, 540
	screen := NewSpectrumScreen(element.Builtin(), spectrum.New(), nil)
	if err := screen.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	canvas := render.NewCanvas(w, h)
	screen.Draw(canvas, selected(11))

	area := layout.Inset(image.Rect(0, 0, w, h), w/40)
	_, body := layout.SplitHorizontal(area, h/8)
	band := layout.SpectrumBand(body, 0)

	na, _ := element.Builtin().Element(context.Background(), 11)
	want, err := spectrum.New().Render(na.Lines(), band.Dx(), band.Dy())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	for _, x := range []int{0, band.Dx() / 3, band.Dx() - 1} {
		got := canvas.Image().RGBAAt(band.Min.X+x, band.Min.Y+band.Dy()/2)
		if got != want.Column(x).Opaque() {
			t.Fatalf("column %d: got %v want %v", x, got, want.Column(x).Opaque())
		}
	}
}

func TestSpectrumScreenCachesRaster(t *testing.T) {
	screen := NewSpectrumScreen(element.Builtin(), nil, nil)
	canvas := render.NewCanvas(640, 360)

	screen.Draw(canvas, selected(80))
	first := screen.spectrum.raster
	screen.Draw(canvas, selected(80))
	if screen.spectrum.raster != first {
		t.Fatalf("unchanged selection re-rendered the raster")
	}

	screen.Draw(canvas, selected(1))
	if screen.spectrum.raster == first || screen.spectrum.number != 1 {
		t.Fatalf("selection change did not re-render")
	}
}

func TestSpectrumScreenUnknownElement(t *testing.T) {
	logger := &recordingLogger{}
	screen := NewSpectrumScreen(element.Builtin(), nil, logger)
	screen.Draw(render.NewCanvas(320, 180), selected(117))

	if len(logger.errors) != 1 || !strings.Contains(logger.errors[0], "element not found") {
		t.Fatalf("errors=%v", logger.errors)
	}
	if screen.spectrum.raster != nil {
		t.Fatalf("raster cached for unknown element")
	}
}

func TestSpectrumScreenQRCodeCached(t *testing.T) {
	screen := NewSpectrumScreen(element.Builtin(), nil, nil)
	st := selected(2)
	st.Network.URL = "http://10.1.2.3:8080/"

	canvas := render.NewCanvas(960, 540)
	screen.Draw(canvas, st)
	if screen.qr.img == nil || screen.qr.url != st.Network.URL {
		t.Fatalf("qr code not generated: %+v", screen.qr)
	}
	first := screen.qr.img
	screen.Draw(canvas, st)
	if screen.qr.img != first {
		t.Fatalf("qr code regenerated for unchanged url")
	}
}

func TestSpectrumScreenRequiresSource(t *testing.T) {
	screen := &SpectrumScreen{}
	if err := screen.Start(context.Background()); err == nil {
		t.Fatalf("expected error without source")
	}
}
