package folio

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/folio/chat"
	"github.com/eringen/folio/showcase"
	"github.com/eringen/folio/views"
)

func (a *App) handlePage(c echo.Context) error {
	name, ok := pageName(c.Param("page"))
	if !ok {
		return echo.ErrNotFound
	}
	doc, err := a.composePage(c.Request().Context(), pageRequest{
		Name:        name,
		Path:        c.Request().URL.Path,
		Filter:      c.QueryParam("filter"),
		ChatSession: ChatSession(c),
	})
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	return Render(c, doc)
}

func (a *App) handleChat(c echo.Context) error {
	if !a.chatLimiter.Allow(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, chatResponse{Response: chat.Apology})
	}
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, chatResponse{Response: chat.Apology})
	}
	session, err := a.ensureChatSession(c)
	if err != nil {
		return err
	}
	reply, err := a.Chat.Submit(c.Request().Context(), session, req.Query)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyQuery) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "query is required"})
		}
		return err
	}
	return c.JSON(http.StatusOK, chatResponse{Response: reply.Text})
}

func (a *App) handleProjectDetail(c echo.Context) error {
	id := c.Param("id")
	fragment, err := showcase.DetailFragment(c.Request().Context(), a.Backend, id)
	if err != nil {
		a.Logger.Warn("load project detail", zap.String("id", id), zap.Error(err))
		return c.HTML(http.StatusBadGateway, fragment)
	}
	return c.HTML(http.StatusOK, fragment)
}

func (a *App) handleLiveProjects(c echo.Context) error {
	fragment, err := showcase.GridFragment(c.Request().Context(), a.Backend)
	if err != nil {
		a.Logger.Warn("load live projects", zap.Error(err))
		return c.HTML(http.StatusBadGateway, fragment)
	}
	return c.HTML(http.StatusOK, fragment)
}

func (a *App) handleSitemap(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return a.writeSitemap(c.Request().Context(), c.Response())
}

func (a *App) handleFeed(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return a.writeRSS(c.Request().Context(), c.Response())
}

func (a *App) handleRobots(c echo.Context) error {
	if raw, err := fs.ReadFile(a.site, path.Join(a.staticDir, "robots.txt")); err == nil {
		return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, raw)
	}
	return c.String(http.StatusOK, a.robots())
}

func (a *App) robots() string {
	return "User-agent: *\nAllow: /\n\nSitemap: " + strings.TrimRight(a.Config.URL, "/") + "/sitemap.xml\n"
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = a.renderNotFound(c)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
		_ = RenderStatus(c, code, views.ServerError(a.Config.Site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// renderNotFound uses the site's own 404 shell when it has one.
func (a *App) renderNotFound(c echo.Context) error {
	doc, err := a.composePage(c.Request().Context(), pageRequest{Name: notFoundShell, Path: c.Request().URL.Path})
	if err != nil {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.Config.Site()))
	}
	return RenderStatus(c, http.StatusNotFound, doc)
}
