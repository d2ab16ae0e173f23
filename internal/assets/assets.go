package assets

import (
	_ "embed"

	"golang.org/x/image/font/gofont/goregular"
)

// FontTTF is the TrueType font used for on-screen text.
var FontTTF = goregular.TTF

// IndexHTML is the html/template source of the web UI landing page.
//
//go:embed index.html.tmpl
var IndexHTML string
