package web

import (
	"bytes"
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rook-computer/spectroscope/internal/assets"
)

const indexImageWidth = 800

var indexTemplate = template.Must(template.New("index").Parse(assets.IndexHTML))

type indexElement struct {
	Number int
	Symbol string
	Name   string
	Lines  int
}

type indexData struct {
	Width    int
	Selected string
	Elements []indexElement
}

// StaticUIHandler serves staticDir at "/" when it names an existing
// directory, and otherwise the embedded index page listing every element.
func StaticUIHandler(staticDir string, deps APIV1Deps) http.Handler {
	if staticDir == "" {
		deps = deps.withDefaults()
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { handleIndex(w, r, deps) })
	}

	if st, err := os.Stat(staticDir); err != nil || !st.IsDir() {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
	}

	fileServer := http.FileServer(http.Dir(staticDir))

	// When serving at '/', ensure we don't accidentally expose parent directory traversal.
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Clean path to avoid oddities.
		r.URL.Path = filepath.ToSlash(filepath.Clean("/" + r.URL.Path))
		fileServer.ServeHTTP(w, r)
	})
}

func handleIndex(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	elements, err := deps.Elements.Elements(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	data := indexData{Width: indexImageWidth}
	for _, el := range elements {
		data.Elements = append(data.Elements, indexElement{
			Number: el.Number, Symbol: el.Symbol, Name: el.Name, Lines: len(el.Lines()),
		})
	}
	if sel := deps.Selection.Selection(); sel.Number != 0 {
		data.Selected = sel.Symbol + " " + sel.Name
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
