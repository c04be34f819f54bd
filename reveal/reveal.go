// Package reveal wires the scroll-reveal behaviour into pages: .fade-in
// elements get the visible class once they scroll into view.
package reveal

import (
	"embed"
	"html"
	"strconv"

	"github.com/eringen/folio/page"
)

// Assets holds reveal.js.
//
//go:embed embedded/*
var Assets embed.FS

// ScriptPath is where the app serves reveal.js.
const ScriptPath = "/assets/reveal.js"

const (
	DefaultThreshold  = 0.1
	DefaultRootMargin = "0px 0px -20px 0px"
)

// Options configures the observer.
type Options struct {
	Threshold  float64
	RootMargin string
	// Disabled marks everything visible server-side instead of shipping
	// the observer script.
	Disabled bool
	// Base prefixes ScriptPath.
	Base string
}

func (o *Options) setDefaults() {
	if o.Threshold <= 0 {
		o.Threshold = DefaultThreshold
	}
	if o.RootMargin == "" {
		o.RootMargin = DefaultRootMargin
	}
}

// Apply adds the reveal script to doc, or with Disabled adds visible to every
// .fade-in and .sidebar element directly. Elements already visible are
// left alone.
func Apply(doc *page.Document, opts Options) {
	if opts.Disabled {
		doc.Find(".fade-in, .sidebar").AddClass("visible")
		return
	}
	if doc.Find("script[data-reveal]").Length() > 0 {
		return
	}
	opts.setDefaults()
	doc.AppendBody(`<script src="` + html.EscapeString(opts.Base+ScriptPath) + `" data-reveal` +
		` data-threshold="` + strconv.FormatFloat(opts.Threshold, 'f', -1, 64) + `"` +
		` data-root-margin="` + html.EscapeString(opts.RootMargin) + `" defer></script>`)
}
