package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/bmp"

	"github.com/rook-computer/spectroscope/internal/element"
	"github.com/rook-computer/spectroscope/internal/spectrum"
	"github.com/rook-computer/spectroscope/internal/state"
)

const (
	DefaultImageWidth = 600
	MaxImageWidth     = 4096
	MaxImageHeight    = 1024

	maxRequestBody = 1 << 20
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type elementSummary struct {
	Number int    `json:"number"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Lines  int    `json:"lines"`
}

type lineResponse struct {
	Wavelength    float64 `json:"wavelength"`
	Strength      float64 `json:"strength"`
	Position      float64 `json:"position"`
	ElectronVolts float64 `json:"electronVolts"`
	KJPerMol      float64 `json:"kjPerMol"`
	Color         string  `json:"color"`
}

type elementResponse struct {
	elementSummary
	Spectrum []lineResponse `json:"spectrum"`
}

type spectrumResponse struct {
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	Start   float64   `json:"start"`
	End     float64   `json:"end"`
	Peak    float64   `json:"peak"`
	Gain    float64   `json:"gain"`
	Columns []string  `json:"columns"`
	Levels  []float64 `json:"levels"`
}

type configResponse struct {
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	LineWidth float64 `json:"lineWidth"`
	Contrast  float64 `json:"contrast"`
	Continuum float64 `json:"continuum"`
}

type selectionBody struct {
	Number int `json:"number"`
}

type selectionResponse struct {
	Number int    `json:"number"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

type customSpectrumRequest struct {
	Wavelengths []float64 `json:"wavelengths"`
	Strengths   []float64 `json:"strengths"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
}

func apiV1Router(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/elements", func(w http.ResponseWriter, r *http.Request) { handleElements(w, r, deps) })
	mux.HandleFunc("/elements/", func(w http.ResponseWriter, r *http.Request) { handleElement(w, r, deps) })
	mux.HandleFunc("/spectrum.png", func(w http.ResponseWriter, r *http.Request) { handleCustomSpectrum(w, r, deps, "png") })
	mux.HandleFunc("/spectrum.bmp", func(w http.ResponseWriter, r *http.Request) { handleCustomSpectrum(w, r, deps, "bmp") })
	mux.HandleFunc("/spectrum.json", func(w http.ResponseWriter, r *http.Request) { handleCustomSpectrum(w, r, deps, "json") })
	mux.HandleFunc("/selection", func(w http.ResponseWriter, r *http.Request) { handleSelection(w, r, deps) })
	mux.HandleFunc("/config", func(w http.ResponseWriter, r *http.Request) { handleConfig(w, r, deps) })
	return mux
}

func handleElements(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	elements, err := deps.Elements.Elements(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "list_failed", err.Error())
		return
	}
	resp := make([]elementSummary, 0, len(elements))
	for _, el := range elements {
		resp = append(resp, summarize(el))
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleElement serves /elements/{n} and /elements/{n}/spectrum.{png,bmp,json}.
func handleElement(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	rel := strings.Trim(strings.TrimPrefix(r.URL.Path, "/elements/"), "/")
	if rel == "" {
		handleElements(w, r, deps)
		return
	}
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	parts := strings.Split(rel, "/")
	number, err := strconv.Atoi(parts[0])
	if err != nil || number <= 0 {
		writeAPIError(w, http.StatusBadRequest, "invalid_element", fmt.Sprintf("invalid atomic number %q", parts[0]))
		return
	}

	var format string
	switch {
	case len(parts) == 1:
	case len(parts) == 2 && strings.HasPrefix(parts[1], "spectrum."):
		format = strings.TrimPrefix(parts[1], "spectrum.")
		if !isSpectrumFormat(format) {
			writeAPIError(w, http.StatusNotFound, "not_found", "unknown spectrum format")
			return
		}
	default:
		writeAPIError(w, http.StatusNotFound, "not_found", "not found")
		return
	}

	el, err := deps.Elements.Element(r.Context(), number)
	if err != nil {
		if errors.Is(err, element.ErrNotFound) {
			writeAPIError(w, http.StatusNotFound, "element_not_found", err.Error())
			return
		}
		writeAPIError(w, http.StatusInternalServerError, "lookup_failed", err.Error())
		return
	}

	if format == "" {
		writeJSON(w, http.StatusOK, describe(el, deps.Renderer))
		return
	}

	width, height, err := parseSize(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_size", err.Error())
		return
	}
	writeSpectrum(w, deps, el.Lines(), width, height, format)
}

func handleCustomSpectrum(w http.ResponseWriter, r *http.Request, deps APIV1Deps, format string) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	var req customSpectrumRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if req.Width == 0 {
		req.Width = DefaultImageWidth
	}
	if err := checkSize(req.Width, req.Height); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_size", err.Error())
		return
	}
	writeSpectrum(w, deps, spectrum.Lines(req.Wavelengths, req.Strengths), req.Width, req.Height, format)
}

func handleSelection(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, selectionJSON(deps.Selection.Selection()))
	case http.MethodPut:
		var body selectionBody
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&body); err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid_body", err.Error())
			return
		}
		sel, err := deps.Selection.SelectElement(r.Context(), body.Number)
		switch {
		case errors.Is(err, element.ErrNotFound):
			writeAPIError(w, http.StatusNotFound, "element_not_found", err.Error())
		case errors.Is(err, ErrSelectionUnsupported):
			writeAPIError(w, http.StatusNotImplemented, "not_implemented", err.Error())
		case err != nil:
			writeAPIError(w, http.StatusInternalServerError, "select_failed", err.Error())
		default:
			if deps.Logger != nil {
				deps.Logger.Infof("web", "selected element %d (%s)", sel.Number, sel.Symbol)
			}
			writeJSON(w, http.StatusOK, selectionJSON(sel))
		}
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func handleConfig(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	cfg := deps.Renderer.Config()
	writeJSON(w, http.StatusOK, configResponse{
		Start: cfg.Start, End: cfg.End, LineWidth: cfg.LineWidth, Contrast: cfg.Contrast, Continuum: cfg.Continuum,
	})
}

func writeSpectrum(w http.ResponseWriter, deps APIV1Deps, lines []spectrum.Line, width, height int, format string) {
	if format != "json" && height == 0 {
		// Encoders reject empty images; narrow widths get a one-row strip.
		height = max(spectrum.DefaultHeight(width), 1)
	}
	raster, err := deps.Renderer.Render(lines, width, height)
	if err != nil {
		if errors.Is(err, spectrum.ErrInvalidWidth) {
			writeAPIError(w, http.StatusBadRequest, "invalid_size", err.Error())
			return
		}
		writeAPIError(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}

	switch format {
	case "json":
		cfg := deps.Renderer.Config()
		resp := spectrumResponse{
			Width: raster.Width, Height: raster.Height, Start: cfg.Start, End: cfg.End,
			Peak: finite(raster.Peak), Gain: finite(raster.Gain), Levels: raster.Levels,
			Columns: make([]string, len(raster.Columns)),
		}
		for i, c := range raster.Columns {
			resp.Columns[i] = hexColor(c)
		}
		writeJSON(w, http.StatusOK, resp)
	case "png":
		writeImage(w, deps, "image/png", func(buf *bytes.Buffer) error { return png.Encode(buf, raster) })
	case "bmp":
		writeImage(w, deps, "image/bmp", func(buf *bytes.Buffer) error { return bmp.Encode(buf, raster) })
	}
}

// writeImage encodes fully before writing so encoder failures still get a
// JSON error response.
func writeImage(w http.ResponseWriter, deps APIV1Deps, contentType string, encode func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		if deps.Logger != nil {
			deps.Logger.Errorf("web", "encode %s: %v", contentType, err)
		}
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// parseSize reads ?width= and ?height= with the raster defaults: width
// DefaultImageWidth, height width/10.
func parseSize(r *http.Request) (int, int, error) {
	q := r.URL.Query()
	width, height := DefaultImageWidth, 0
	if raw := q.Get("width"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("width must be an integer (got %q)", raw)
		}
		width = v
	}
	if raw := q.Get("height"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("height must be an integer (got %q)", raw)
		}
		height = v
	}
	return width, height, checkSize(width, height)
}

func checkSize(width, height int) error {
	if width <= 0 || width > MaxImageWidth {
		return fmt.Errorf("width must be between 1 and %d (got %d)", MaxImageWidth, width)
	}
	if height < 0 || height > MaxImageHeight {
		return fmt.Errorf("height must be between 0 and %d (got %d)", MaxImageHeight, height)
	}
	return nil
}

// finite keeps overflowed diagnostics encodable as JSON.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func isSpectrumFormat(format string) bool {
	return format == "png" || format == "bmp" || format == "json"
}

func summarize(el element.Element) elementSummary {
	return elementSummary{Number: el.Number, Symbol: el.Symbol, Name: el.Name, Lines: len(el.Lines())}
}

func describe(el element.Element, renderer SpectrumRenderer) elementResponse {
	lines := el.Lines()
	resp := elementResponse{elementSummary: summarize(el), Spectrum: make([]lineResponse, 0, len(lines))}
	for _, l := range lines {
		pos := renderer.Position(l.Wavelength)
		r, g, b := spectrum.Hue(pos)
		resp.Spectrum = append(resp.Spectrum, lineResponse{
			Wavelength:    l.Wavelength,
			Strength:      l.Strength,
			Position:      pos,
			ElectronVolts: spectrum.ElectronVolts(l.Wavelength),
			KJPerMol:      spectrum.MolarEnergy(l.Wavelength),
			Color:         colorful.Color{R: r / 255, G: g / 255, B: b / 255}.Hex(),
		})
	}
	return resp
}

func hexColor(c spectrum.RGB) string {
	col, _ := colorful.MakeColor(c.Opaque())
	return col.Hex()
}

func selectionJSON(sel state.Selection) selectionResponse {
	return selectionResponse{Number: sel.Number, Symbol: sel.Symbol, Name: sel.Name}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
