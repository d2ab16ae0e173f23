package render

import (
	"context"
	"image"
	"image/color"

	fb "github.com/gonutz/framebuffer"
	"github.com/rook-computer/spectroscope/internal/state"
)

const DefaultDevice = "/dev/fb0"

// FBRenderer renders to the Linux framebuffer using an offscreen logical canvas.
type FBRenderer struct {
	Device string
	Logger logger
	Debug  bool

	fbDev     *fb.Device
	offscreen *OffscreenRenderer
}

func NewFBRenderer(device string) *FBRenderer {
	if device == "" {
		device = DefaultDevice
	}
	return &FBRenderer{Device: device}
}

func (r *FBRenderer) Start(ctx context.Context) error {
	dev, err := fb.Open(r.Device)
	if err != nil {
		return err
	}
	r.fbDev = dev
	if r.Logger != nil {
		bounds := dev.Bounds()
		r.Logger.Infof("fb", "framebuffer %s open, bounds=%dx%d", r.Device, bounds.Dx(), bounds.Dy())
	}

	r.offscreen = &OffscreenRenderer{
		Width:     CanvasWidth,
		Height:    CanvasHeight,
		Logger:    r.Logger,
		Debug:     r.Debug,
		component: "fb",
		OnFrame:   func(frame *image.RGBA) { blitToFB(dev, frame) },
	}
	return r.offscreen.Start(ctx)
}

func (r *FBRenderer) Stop() error {
	if r.offscreen != nil {
		_ = r.offscreen.Stop()
	}
	if r.fbDev != nil {
		r.fbDev.Close()
		r.fbDev = nil
	}
	return nil
}

// SetScreen sets the current logical screen to be drawn.
func (r *FBRenderer) SetScreen(screen Screen) {
	if r.offscreen != nil {
		r.offscreen.SetScreen(screen)
	}
}

// RedrawWithState draws the current screen and blits it.
func (r *FBRenderer) RedrawWithState(snap state.State) {
	if r.offscreen != nil {
		r.offscreen.RedrawWithState(snap)
	}
}

// RunLoop polls the store at ~30 FPS and redraws when the state changed.
func (r *FBRenderer) RunLoop(ctx context.Context, store *state.Store) {
	if r.offscreen != nil {
		r.offscreen.RunLoop(ctx, store)
	}
}

// blitToFB writes canvas to the framebuffer via nearest-neighbor scaling.
func blitToFB(dev *fb.Device, canvas *image.RGBA) {
	if dev == nil {
		return
	}
	bounds := dev.Bounds()
	fbWidth := bounds.Dx()
	fbHeight := bounds.Dy()
	canvasWidth := canvas.Bounds().Dx()
	canvasHeight := canvas.Bounds().Dy()
	for y := 0; y < fbHeight; y++ {
		sy := (y * canvasHeight) / fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := (x * canvasWidth) / fbWidth
			pixel := canvas.RGBAAt(sx, sy)
			dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
}
