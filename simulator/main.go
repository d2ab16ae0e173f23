package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/rook-computer/spectroscope/internal/app"
	"github.com/rook-computer/spectroscope/internal/element"
	"github.com/rook-computer/spectroscope/internal/render"
	"github.com/rook-computer/spectroscope/internal/spectrum"
	"github.com/rook-computer/spectroscope/internal/state"
	"github.com/rook-computer/spectroscope/internal/system"
	"github.com/rook-computer/spectroscope/internal/termview"
	"github.com/rook-computer/spectroscope/internal/web"
)

const envCatalog = "SPECTROSCOPE_CATALOG"

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	staticDir := flag.String("static-dir", defaults.StaticDir, "serve static UI from this directory (optional); when empty, the embedded index page is served")
	catalogPath := flag.String("catalog", os.Getenv(envCatalog), "JSON element catalog layered over the built-in one; also configurable via "+envCatalog)
	initial := flag.Int("element", 0, "atomic number shown first (0: first catalog entry)")
	width := flag.Int("width", render.CanvasWidth, "simulated display width")
	height := flag.Int("height", render.CanvasHeight, "simulated display height")
	export := flag.String("export", "", "write the display for -element to this .png or .bmp file and exit")
	term := flag.Bool("term", false, "preview spectra in the terminal instead of serving the API")
	debug := flag.Bool("debug", false, "log to stderr")
	flag.Parse()

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		logger = app.NewFileLogger(os.Stderr)
	}

	catalog, err := element.LoadFile(*catalogPath)
	if err != nil {
		fmt.Println("catalog error:", err)
		os.Exit(2)
	}
	spectra := spectrum.New()

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *export != "":
		number := *initial
		if number == 0 {
			number = firstElement(processCtx, catalog)
		}
		if err := exportCard(processCtx, catalog, spectra, number, *width, *height, *export); err != nil {
			fmt.Println("export error:", err)
			os.Exit(1)
		}
		fmt.Println("wrote", *export)
		return
	case *term:
		if err := runTerminal(processCtx, catalog, spectra, *initial); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Println("terminal error:", err)
			os.Exit(1)
		}
		return
	}

	store := state.NewStore()
	display := render.NewOffscreenRenderer(*width, *height)
	control := NewSimControl(display)

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode, StaticDir: *staticDir})
	server.Logger = logger

	device := app.New(store, display, server, control.Buttons, catalog)
	device.Spectra = spectra
	device.Logger = logger
	device.Debug = *debug
	device.InitialElement = *initial
	device.ListenAddr = *listenAddr
	device.NetInfo = system.InterfaceNetInfo{}

	server.Handler = web.NewDefaultMux(server.StaticDir, web.APIV1Config{
		Deps: web.APIV1Deps{Elements: catalog, Renderer: spectra, Selection: device, Logger: logger},
	})
	registerSimEndpoints(server.Handler, control)

	fmt.Println("Spectroscope simulator listening on", server.Addr)
	fmt.Println("API: http://" + trimLeadingColon(server.Addr) + "/api/v1/")
	fmt.Println("Display: http://" + trimLeadingColon(server.Addr) + "/sim/display.png")

	if err := device.Start(processCtx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("simulator error:", err)
		os.Exit(1)
	}
}

func runTerminal(ctx context.Context, catalog element.Source, spectra *spectrum.Renderer, initial int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	view := termview.New(screen, catalog, spectra)
	if err := view.Select(ctx, initial); err != nil {
		return err
	}
	return view.Run(ctx)
}

func firstElement(ctx context.Context, catalog element.Source) int {
	elements, err := catalog.Elements(ctx)
	if err != nil || len(elements) == 0 {
		return 0
	}
	return elements[0].Number
}

func trimLeadingColon(addr string) string {
	// Best-effort for display; don't attempt full URL parsing here.
	if len(addr) > 0 && addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	if addr == "" {
		return "127.0.0.1:8080"
	}
	return addr
}
