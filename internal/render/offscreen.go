package render

import (
	"context"
	"image"
	"image/draw"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/spectroscope/internal/state"
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// OffscreenRenderer draws the current screen into an in-memory canvas. It is
// the display of the simulator and the drawing half of FBRenderer.
type OffscreenRenderer struct {
	Width, Height int
	Logger        logger
	Debug         bool

	// OnFrame, when set, is called with the canvas after every redraw.
	OnFrame func(frame *image.RGBA)

	// component names this renderer in log lines.
	component string

	mu          sync.Mutex
	canvas      *Canvas
	current     Screen
	lastVersion uint64
	drawn       bool
	frames      uint64
	running     atomic.Bool
}

func NewOffscreenRenderer(width, height int) *OffscreenRenderer {
	if width <= 0 || height <= 0 {
		width, height = CanvasWidth, CanvasHeight
	}
	return &OffscreenRenderer{Width: width, Height: height, component: "display"}
}

func (r *OffscreenRenderer) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.component == "" {
		r.component = "display"
	}
	r.canvas = NewCanvas(r.Width, r.Height)
	r.canvas.Logger = r.Logger
	if r.canvas.ttFont == nil && r.Logger != nil {
		r.Logger.Errorf(r.component, "font parse failed, using basicfont")
	}
	r.drawn = false
	r.running.Store(true)
	return nil
}

func (r *OffscreenRenderer) Stop() error {
	r.running.Store(false)
	return nil
}

// SetScreen sets the current logical screen to be drawn.
func (r *OffscreenRenderer) SetScreen(screen Screen) {
	r.mu.Lock()
	r.current = screen
	r.drawn = false
	r.mu.Unlock()
}

// RedrawWithState draws the current screen unconditionally.
func (r *OffscreenRenderer) RedrawWithState(snap state.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redrawLocked(snap)
}

func (r *OffscreenRenderer) redrawLocked(snap state.State) {
	if !r.running.Load() || r.current == nil || r.canvas == nil {
		return
	}
	r.canvas.FillBackground()
	r.current.Draw(r.canvas, snap)
	if r.OnFrame != nil {
		r.OnFrame(r.canvas.Image())
	}
	r.lastVersion = snap.Version
	r.drawn = true
	r.frames++
	if r.Debug && r.Logger != nil {
		r.Logger.Infof(r.component, "redraw done, phase=%s version=%d", snap.Phase, snap.Version)
	}
}

// RunLoop polls the store at ~30 FPS and redraws when the state changed.
func (r *OffscreenRenderer) RunLoop(ctx context.Context, store *state.Store) {
	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()
	lastLog := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Tick(store.Snapshot())
			if r.Debug && r.Logger != nil && time.Since(lastLog) > time.Second {
				r.Logger.Infof(r.component, "heartbeat, frames=%d", r.Frames())
				lastLog = time.Now()
			}
		}
	}
}

// Tick redraws if snap differs from the last drawn state. It reports
// whether a frame was produced.
func (r *OffscreenRenderer) Tick(snap state.State) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.drawn && snap.Version == r.lastVersion {
		return false
	}
	r.redrawLocked(snap)
	return r.drawn
}

// Frames returns the number of redraws so far.
func (r *OffscreenRenderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Frame returns a copy of the last drawn frame, or nil before the first.
func (r *OffscreenRenderer) Frame() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.drawn || r.canvas == nil {
		return nil
	}
	src := r.canvas.Image()
	out := image.NewRGBA(src.Bounds())
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
	return out
}
