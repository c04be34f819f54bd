package folio

import (
	"embed"
	"io/fs"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/chat"
	"github.com/eringen/folio/reveal"
	"github.com/eringen/folio/showcase"
)

// serveAsset serves one embedded script at route. Assets live under the
// embedded/ directory of their package.
func serveAsset(r *echo.Group, route string, files embed.FS) {
	sub, _ := fs.Sub(files, "embedded")
	name := path.Base(route)
	r.GET(route, func(c echo.Context) error {
		raw, err := fs.ReadFile(sub, name)
		if err != nil {
			return echo.ErrNotFound
		}
		return c.Blob(http.StatusOK, "text/javascript; charset=utf-8", raw)
	})
}

// embeddedAssets lists the engine scripts by their public route.
func embeddedAssets() map[string]embed.FS {
	return map[string]embed.FS{
		reveal.ScriptPath:   reveal.Assets,
		chat.ScriptPath:     chat.Assets,
		showcase.ScriptPath: showcase.Assets,
	}
}
