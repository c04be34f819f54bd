package folio

import (
	"path"
	"strings"

	"github.com/eringen/folio/page"
)

// pageName maps a request path segment to a shell name: "" is the index and
// names without an extension get ".html".
func pageName(segment string) (string, bool) {
	segment = strings.Trim(segment, "/")
	switch {
	case segment == "":
		return page.Index, true
	case strings.ContainsAny(segment, `/\`) || strings.HasPrefix(segment, "."):
		return "", false
	case path.Ext(segment) == "":
		return segment + ".html", true
	case path.Ext(segment) == ".html":
		return segment, true
	default:
		return "", false
	}
}
