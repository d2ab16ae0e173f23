package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/spectroscope/internal/app"
	"github.com/rook-computer/spectroscope/internal/buttons"
	"github.com/rook-computer/spectroscope/internal/element"
	"github.com/rook-computer/spectroscope/internal/render"
	"github.com/rook-computer/spectroscope/internal/spectrum"
	"github.com/rook-computer/spectroscope/internal/state"
	"github.com/rook-computer/spectroscope/internal/system"
	"github.com/rook-computer/spectroscope/internal/web"
)

const (
	envStdioLog = "SPECTROSCOPE_STDIO_LOG"
	envCatalog  = "SPECTROSCOPE_CATALOG"
)

func main() {
	fmt.Println("Spectroscope starting")

	defaults, err := web.DefaultServerConfigFromEnv(":80")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	// Flags
	debug := flag.Bool("debug", false, "enable debug logging to ./spectroscope-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+envStdioLog)
	device := flag.String("device", render.DefaultDevice, "framebuffer device")
	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode (CORS); also configurable via "+web.EnvDevMode)
	catalogPath := flag.String("catalog", os.Getenv(envCatalog), "JSON element catalog layered over the built-in one; also configurable via "+envCatalog)
	initial := flag.Int("element", 0, "atomic number shown first (0: first catalog entry)")
	flag.Parse()

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv(envStdioLog)
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	// Local file logger when debug enabled
	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./spectroscope-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	catalog, err := element.LoadFile(*catalogPath)
	if err != nil {
		fmt.Println("catalog error:", err)
		os.Exit(2)
	}
	logger.Infof("main", "catalog loaded, %d elements", catalog.Len())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()
	spectra := spectrum.New()
	renderer := render.NewFBRenderer(*device)
	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode, StaticDir: defaults.StaticDir})
	server.Logger = logger
	btns := buttons.NewEvdevButtons(logger)

	a := app.New(store, renderer, server, btns, catalog)
	a.Logger = logger
	a.Spectra = spectra
	a.Debug = *debug
	a.Console = true
	a.InitialElement = *initial
	a.ListenAddr = *listenAddr
	a.NetInfo = system.InterfaceNetInfo{}

	server.Handler = web.NewDefaultMux(server.StaticDir, web.APIV1Config{
		Deps: web.APIV1Deps{Elements: catalog, Renderer: spectra, Selection: a, Logger: logger},
	})

	if err := a.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}
