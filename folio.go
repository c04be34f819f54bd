// Package folio is a portfolio site engine built with Go, Echo and goquery.
// It hydrates a site's static HTML page shells with the portfolio content
// document, injects the shared navigation, the chat widget and the scroll
// reveal script, and serves the result or exports it as a static site.
package folio

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/folio/backend"
	"github.com/eringen/folio/chat"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/nav"
)

// App is the central folio application. It wires together the content
// cache, backend client, chat widget, handlers and middleware.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Logger  *zap.Logger
	Content *content.Cache
	Nav     *nav.Loader
	Backend *backend.Client
	Chat    *chat.Widget

	chatStore    *chat.SQLiteStore
	chatLimiter  *RateLimiter
	site         fs.FS
	staticDir    string
	customRoutes []func(*App)
}

// New creates a folio App for cfg. The site directory is read through an
// fs.FS; WithSiteFS replaces it.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()
	if cfg.BasePath == "" {
		if u, err := url.Parse(cfg.URL); err == nil {
			cfg.BasePath = nav.BasePath(u.Host)
		}
	}

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.Logger == nil {
		logger, err := NewLogger(cfg.Debug)
		if err != nil {
			logger = zap.NewNop()
		}
		a.Logger = logger
	}
	if a.site == nil {
		a.site = os.DirFS(cfg.SiteDir)
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	a.Content = content.NewCache(func() *content.Loader {
		return content.NewLoader(cfg.ContentSource, a.site,
			content.WithHTTPClient(httpClient),
			content.WithLogger(a.Logger))
	}, cfg.ContentCacheTTL)
	a.Backend = backend.NewClient(cfg.BackendURL, httpClient)
	var fragments nav.Fetcher = nav.FSFetcher{Files: a.site, Base: cfg.BasePath}
	if cfg.ComponentsURL != "" {
		fragments = nav.HTTPFetcher{BaseURL: cfg.ComponentsURL, Client: httpClient}
	}
	a.Nav = nav.NewLoader(fragments, cfg.BasePath, a.Logger)
	a.Echo.HideBanner = true
	return a
}

// WithSiteFS reads the site from files instead of Config.SiteDir.
func WithSiteFS(files fs.FS) Option {
	return func(a *App) {
		a.site = files
	}
}

// Setup opens the chat store and registers middleware and routes without
// starting the listener.
func (a *App) Setup() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("folio: SessionSecret is required")
	}

	store, err := chat.NewSQLiteStore(a.Config.ChatDatabasePath)
	if err != nil {
		return fmt.Errorf("folio: init chat store: %w", err)
	}
	a.chatStore = store
	a.Chat = chat.NewWidget(store, a.Backend, a.Config.Owner, a.Logger)
	a.chatLimiter = NewRateLimiter(a.Config.ChatRateLimit, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start sets the app up and serves until the server is closed.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.Logger.Info("serving site",
		zap.String("addr", a.Config.Addr),
		zap.String("site_dir", a.Config.SiteDir),
		zap.String("base_path", a.Config.BasePath),
		zap.Bool("backend", a.Backend.Configured()))
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	r := a.Echo.Group(a.Config.BasePath)

	for route, files := range embeddedAssets() {
		serveAsset(r, route, files)
	}

	// Site assets and the shared fragments the navigation fetches.
	staticFS, _ := fs.Sub(a.site, a.staticDir)
	componentsFS, _ := fs.Sub(a.site, "components")
	r.StaticFS("/public", staticFS)
	r.StaticFS("/components", componentsFS)
	r.GET("/robots.txt", a.handleRobots)
	r.GET("/sitemap.xml", a.handleSitemap)
	r.GET("/feed.xml", a.handleFeed)

	r.POST("/chat/", a.handleChat)
	r.GET("/projects/live/", a.handleLiveProjects)
	r.GET("/projects/:id/", a.handleProjectDetail)

	r.GET("/", a.handlePage)
	r.GET("/:page", a.handlePage)
}

// Close releases the chat store and background workers.
func (a *App) Close() error {
	if a.chatLimiter != nil {
		a.chatLimiter.Stop()
	}
	var err error
	if a.chatStore != nil {
		err = a.chatStore.Close()
	}
	_ = a.Logger.Sync()
	return err
}
