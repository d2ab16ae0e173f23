package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/spectroscope/internal/app/screens"
	"github.com/rook-computer/spectroscope/internal/buttons"
	"github.com/rook-computer/spectroscope/internal/element"
	"github.com/rook-computer/spectroscope/internal/render"
	"github.com/rook-computer/spectroscope/internal/spectrum"
	"github.com/rook-computer/spectroscope/internal/state"
	"github.com/rook-computer/spectroscope/internal/system"
	"github.com/rook-computer/spectroscope/internal/web"
)

type App struct {
	Store    *state.Store
	Render   render.Renderer
	Web      web.Server
	Buttons  buttons.Buttons
	Elements element.Source
	Spectra  *spectrum.Renderer
	NetInfo  system.NetInfo
	Logger   Logger
	Debug    bool

	// Console switches the VT into graphics mode while running.
	Console bool

	// InitialElement is selected on start; 0 picks the first catalog entry.
	InitialElement int

	// ListenAddr is used to build the URL advertised on screen.
	ListenAddr string

	currentScreen render.Screen

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, renderer render.Renderer, webServer web.Server, buttonDriver buttons.Buttons, elements element.Source) *App {
	return &App{
		Store:    store,
		Render:   renderer,
		Web:      webServer,
		Buttons:  buttonDriver,
		Elements: elements,
		Logger:   NoopLogger{},
		exitCh:   make(chan error, 1),
	}
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	if app.Elements == nil {
		app.Elements = element.Builtin()
	}
	if app.Spectra == nil {
		app.Spectra = spectrum.New()
	}

	if app.Render == nil {
		app.Render = render.NewFBRenderer(render.DefaultDevice)
	}
	switch r := app.Render.(type) {
	case *render.FBRenderer:
		r.Logger = app.Logger
		r.Debug = app.Debug
	case *render.OffscreenRenderer:
		r.Logger = app.Logger
		r.Debug = app.Debug
	}
	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		return err
	}
	defer app.Render.Stop()

	if app.Console {
		// Switch console to KD_GRAPHICS to suppress hardware cursor
		_ = system.SetGraphicsModeWithLog(app.Logger)
		_ = system.HideCursorWithLog(app.Logger)
		defer func() { _ = system.ShowCursorWithLog(app.Logger); _ = system.RestoreTextModeWithLog(app.Logger) }()
	}

	if app.Web != nil {
		if err := app.Web.Start(ctx); err != nil {
			app.Logger.Errorf("web", "start error: %v", err)
		} else {
			defer app.Web.Stop()
		}
	}
	app.updateNetwork(ctx)

	if err := app.setScreen(ctx, screens.NewSpectrumScreen(app.Elements, app.Spectra, app.Logger)); err != nil {
		return err
	}
	// The spectrum screen shows the error text until a later selection succeeds.
	if err := app.selectInitial(ctx); err != nil {
		app.Logger.Errorf("app", "initial selection: %v", err)
		app.Store.Fail(err.Error())
	} else {
		app.Store.SetPhase(state.READY)
	}

	// Force immediate first redraw to ensure text shows without waiting for loop.
	app.Render.RedrawWithState(app.Store.Snapshot())

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.Render.RunLoop(loopCtx, app.Store)
	}()

	if app.Buttons != nil {
		if err := app.Buttons.Start(loopCtx); err != nil {
			app.Logger.Errorf("buttons", "start error: %v", err)
		} else {
			defer app.Buttons.Stop()
			wg.Add(1)
			go func() {
				defer wg.Done()
				app.handleButtons(loopCtx)
			}()
		}
	}

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}
	cancel()
	wg.Wait()
	if app.currentScreen != nil {
		_ = app.currentScreen.Stop()
	}
	return err
}

func (app *App) handleButtons(ctx context.Context) {
	events := app.Buttons.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			app.HandleEvent(ctx, ev)
		}
	}
}

// HandleEvent applies a single button event.
func (app *App) HandleEvent(ctx context.Context, ev buttons.Event) {
	var err error
	switch ev {
	case buttons.Next:
		_, err = app.Step(ctx, 1)
	case buttons.Previous:
		_, err = app.Step(ctx, -1)
	case buttons.Exit:
		app.Logger.Infof("buttons", "exit requested")
		app.Exit(nil)
	}
	if err != nil {
		app.Logger.Errorf("buttons", "%s: %v", ev, err)
	}
}

func (app *App) selectInitial(ctx context.Context) error {
	number := app.InitialElement
	if number == 0 {
		elements, err := app.Elements.Elements(ctx)
		if err != nil {
			return fmt.Errorf("list elements: %w", err)
		}
		if len(elements) == 0 {
			return errors.New("element catalog is empty")
		}
		number = elements[0].Number
	}
	_, err := app.SelectElement(ctx, number)
	return err
}

// Selection reports the element on display.
func (app *App) Selection() state.Selection {
	return app.Store.Snapshot().Selection
}

// SelectElement shows the element with the given atomic number.
func (app *App) SelectElement(ctx context.Context, number int) (state.Selection, error) {
	sel, err := web.StoreSelection{Store: app.Store, Elements: app.Elements}.SelectElement(ctx, number)
	if err != nil {
		return state.Selection{}, err
	}
	if app.Store.Snapshot().Phase == state.ERROR {
		app.Store.SetPhase(state.READY)
	}
	app.Logger.Infof("app", "showing %d %s", sel.Number, sel.Symbol)
	return sel, nil
}

// Step moves the selection delta places through the catalog, wrapping at
// either end.
func (app *App) Step(ctx context.Context, delta int) (state.Selection, error) {
	elements, err := app.Elements.Elements(ctx)
	if err != nil {
		return state.Selection{}, fmt.Errorf("list elements: %w", err)
	}
	next := element.Neighbor(elements, app.Selection().Number, delta)
	if next == 0 {
		return state.Selection{}, errors.New("element catalog is empty")
	}
	return app.SelectElement(ctx, next)
}

func (app *App) updateNetwork(ctx context.Context) {
	if app.NetInfo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	ip, err := app.NetInfo.IP(ctx)
	if err != nil {
		app.Logger.Errorf("net", "ip lookup: %v", err)
		return
	}
	url := system.WebURL(ip, app.ListenAddr)
	app.Store.UpdateNetwork(state.NetworkInfo{IP: ip, URL: url})
	if url != "" {
		app.Logger.Infof("net", "web ui at %s", url)
	}
}

func (app *App) setScreen(ctx context.Context, screen render.Screen) error {
	if app.currentScreen != nil {
		_ = app.currentScreen.Stop()
	}
	app.currentScreen = screen
	app.Render.SetScreen(screen)
	return screen.Start(ctx)
}

func (app *App) Stop() error {
	app.Exit(nil)
	return nil
}

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

type FileLogger struct {
	mu *sync.Mutex
	w  io.Writer
}

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{mu: &sync.Mutex{}, w: w} }
func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	l.write("INFO", component, format, args...)
}
func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	l.write("ERROR", component, format, args...)
}

func (l FileLogger) write(level, component, format string, args ...interface{}) {
	if l.mu != nil {
		l.mu.Lock()
		defer l.mu.Unlock()
	}
	writeLog(l.w, level, component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}
