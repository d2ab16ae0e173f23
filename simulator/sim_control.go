package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"strings"

	"github.com/rook-computer/spectroscope/internal/buttons"
	"github.com/rook-computer/spectroscope/internal/render"
)

// SimButtons is a Buttons driver fed over HTTP instead of evdev.
type SimButtons struct{ ch chan buttons.Event }

func NewSimButtons() *SimButtons { return &SimButtons{ch: make(chan buttons.Event, 8)} }

func (b *SimButtons) Start(ctx context.Context) error { return nil }
func (b *SimButtons) Stop() error                     { return nil }
func (b *SimButtons) Events() <-chan buttons.Event    { return b.ch }

// Press queues an event; it fails when the app is not consuming them.
func (b *SimButtons) Press(ev buttons.Event) error {
	select {
	case b.ch <- ev:
		return nil
	default:
		return fmt.Errorf("button queue full")
	}
}

// SimControl exposes the simulated device: its buttons and its display.
type SimControl struct {
	Buttons *SimButtons
	Display *render.OffscreenRenderer
}

func NewSimControl(display *render.OffscreenRenderer) *SimControl {
	return &SimControl{Buttons: NewSimButtons(), Display: display}
}

func parseButton(name string) (buttons.Event, error) {
	switch ev := buttons.Event(strings.ToLower(name)); ev {
	case buttons.Next, buttons.Previous, buttons.Exit:
		return ev, nil
	}
	return "", fmt.Errorf("unknown button %q", name)
}

func registerSimEndpoints(handler http.Handler, control *SimControl) {
	mux, ok := handler.(*http.ServeMux)
	if !ok {
		// Only supported when the simulator uses the default mux.
		return
	}

	mux.HandleFunc("/sim/button/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/sim/button/"), "/")
		ev, err := parseButton(name)
		if err != nil {
			writeSimError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := control.Buttons.Press(ev); err != nil {
			writeSimError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeSimJSON(w, http.StatusAccepted, map[string]any{"ok": true, "button": ev})
	})

	mux.HandleFunc("/sim/display.png", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		frame := control.Display.Frame()
		if frame == nil {
			writeSimError(w, http.StatusServiceUnavailable, "display not drawn yet")
			return
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, frame); err != nil {
			writeSimError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = buf.WriteTo(w)
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}
