package folio

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eringen/folio/chat"
	"github.com/eringen/folio/showcase"
)

const testData = `{
  "personalProjects": [
    {"title": "Compiler", "featured": true, "category": "systems", "githubUrl": "https://github.com/j/c"},
    {"title": "Site", "featured": true, "category": "web"}
  ],
  "recentResearch": [{"title": "Graphs", "featured": true, "startDate": "2022-01-01", "endDate": "present"}],
  "recentAchievements": [{"title": "Award", "featured": true, "date": "2023-05-01"}],
  "workExperience": [{"company": "Acme", "role": "Engineer", "featured": true, "startDate": "2020-01-01", "endDate": "present"}],
  "education": [{"institution": "MIT", "degree": "BSc", "featured": true}],
  "blogPosts": [
    {"id": 1, "title": "Hello World", "excerpt": "First post", "category": "Research", "publishedDate": "2024-03-05", "status": "published", "content": "## Intro\n\nBody"},
    {"id": 2, "title": "Draft", "status": "draft"}
  ]
}`

const headerHTML = `<nav class="navbar"><a class="nav-link" href="index.html">Home</a><a class="nav-link" href="projects.html">Projects</a><a class="nav-link" href="blog.html">Blog</a></nav>`

func shellPage(title, body string) string {
	return `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>` + title + `</title></head><body>
<div id="header-container"></div>
<aside class="sidebar"></aside>
<main>` + body + `</main>
<div id="footer-container"></div>
</body></html>`
}

func testSite() fstest.MapFS {
	return fstest.MapFS{
		"data/portfolio-data.json": {Data: []byte(testData)},
		"components/header.html":   {Data: []byte(headerHTML)},
		"components/footer.html":   {Data: []byte(`<footer>Jamie</footer>`)},
		"public/style.css":         {Data: []byte(`body{}`)},
		"pages/index.html": {Data: []byte(shellPage("Jamie", `
<section class="fade-in"><div id="projects-grid"><p class="loading">Loading</p></div></section>
<div id="research-list"></div><div id="achievements-list"></div>
<div id="experience-list"></div><div id="education-list"></div>
<div id="chat-history"></div><input id="user-input"><button id="send-button">Send</button>`))},
		"pages/projects.html": {Data: []byte(shellPage("Projects", `
<button class="filter-btn active" data-filter="all">All</button>
<button class="filter-btn" data-filter="web">Web</button>
<div id="projects-grid"></div>
<div id="project-modal"><span class="close-modal">x</span><div id="modal-body"></div></div>`))},
		"pages/blog.html": {Data: []byte(shellPage("Blog", `<div id="blog-posts-container"></div>`))},
	}
}

type testApp struct {
	*App
	backend *httptest.Server
}

func newTestApp(t *testing.T, mutate func(*SiteConfig)) *testApp {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/query", func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(chatResponse{Response: "You asked: " + req.Query})
	})
	mux.HandleFunc("/api/project/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"title":"Compiler","description":"<p>Fast</p>","features":["SSA"],"technologies":["Go"]}`))
	})
	mux.HandleFunc("/api/projects", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"title":"Compiler","category":"systems","technologies":["Go","LLVM","C","Rust"]}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := SiteConfig{
		Name:             "Jamie Doe",
		URL:              "https://jamie.example",
		Owner:            "Jamie",
		Description:      "Engineer",
		BackendURL:       srv.URL,
		SessionSecret:    "test-secret-test-secret-test-sec",
		ChatDatabasePath: filepath.Join(t.TempDir(), "chat.db"),
		ChatRateLimit:    3,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	app := New(cfg, WithSiteFS(testSite()), WithLogger(zap.NewNop()))
	require.NoError(t, app.Setup())
	t.Cleanup(func() { app.Close() })
	return &testApp{App: app, backend: srv}
}

func (a *testApp) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(t *testing.T, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return a.do(t, req)
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return doc
}

func cookieNamed(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestIndexPageIsHydrated(t *testing.T) {
	app := newTestApp(t, nil)
	rec := app.get(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	doc := parseBody(t, rec)
	assert.Equal(t, 2, doc.Find("#projects-grid .project-card").Length())
	assert.Equal(t, 0, doc.Find("#projects-grid .loading").Length())
	assert.Equal(t, "Jan 2022 - Present", doc.Find("#research-list .period").Text())
	assert.Equal(t, "index.html", doc.Find(".nav-link.active").AttrOr("href", ""))
	assert.Equal(t, "Jamie", doc.Find("#footer-container footer").Text())
	assert.Equal(t, "Hello. Ask me anything about Jamie.", doc.Find("#chat-history .bot-message").Text())
	assert.Equal(t, 1, doc.Find("script[data-reveal]").Length())
	assert.Equal(t, 1, doc.Find("script[data-chat]").Length())
	assert.Equal(t, 2, doc.Find(`script[type="application/ld+json"]`).Length())
	assert.Equal(t, "https://jamie.example/", doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))
}

func TestPageWithoutExtension(t *testing.T) {
	app := newTestApp(t, nil)
	rec := app.get(t, "/blog")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseBody(t, rec)
	cards := doc.Find("#blog-posts-container .blog-card")
	require.Equal(t, 1, cards.Length())
	assert.Equal(t, "blog-post-1.html", cards.AttrOr("href", ""))
}

func TestProjectsPageFilter(t *testing.T) {
	app := newTestApp(t, nil)
	doc := parseBody(t, app.get(t, "/projects.html?filter=web"))

	assert.Equal(t, "web", doc.Find(".filter-btn.active").AttrOr("data-filter", ""))
	assert.Contains(t, doc.Find(`.project-card[data-category="systems"]`).AttrOr("style", ""), "display: none")
	assert.Contains(t, doc.Find(`.project-card[data-category="web"]`).AttrOr("style", ""), "display: block")
	assert.Equal(t, 1, doc.Find("script[data-showcase]").Length())
	assert.Equal(t, "projects.html", doc.Find(".nav-link.active").AttrOr("href", ""))
}

func TestBlogPostPage(t *testing.T) {
	app := newTestApp(t, nil)
	rec := app.get(t, "/blog-post-1.html")
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseBody(t, rec)
	assert.Equal(t, "Hello World | Jamie Doe", doc.Find("title").Text())
	assert.Equal(t, "Intro", doc.Find("#blog-post-container h2").Text())
	assert.Equal(t, "blog.html", doc.Find(".nav-link.active").AttrOr("href", ""))
	assert.Equal(t, "article", doc.Find(`meta[property="og:type"]`).AttrOr("content", ""))
	assert.Contains(t, doc.Find(`script[type="application/ld+json"]`).Text(), "BlogPosting")
}

func TestMissingPagesAre404(t *testing.T) {
	app := newTestApp(t, nil)
	for _, target := range []string{"/nope.html", "/blog-post-2.html", "/blog-post-99.html", "/style.css"} {
		rec := app.get(t, target)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "Page not found", target)
	}
}

func TestStaticAssets(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.get(t, "/public/style.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=31536000, immutable", rec.Header().Get("Cache-Control"))

	for _, route := range []string{"/assets/reveal.js", "/assets/chat.js", "/assets/showcase.js"} {
		rec := app.get(t, route)
		assert.Equal(t, http.StatusOK, rec.Code, route)
		assert.Contains(t, rec.Header().Get("Content-Type"), "javascript", route)
	}

	rec = app.get(t, "/components/header.html")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func postChat(t *testing.T, app *testApp, query string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(chatRequest{Query: query})
	req := httptest.NewRequest(http.MethodPost, "/chat/", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "198.51.100.7:1234"
	for _, c := range cookies {
		req.AddCookie(c)
		if c.Name == "_csrf" {
			req.Header.Set("X-CSRF-Token", c.Value)
		}
	}
	return app.do(t, req)
}

func TestChatRoundTripPersistsTranscript(t *testing.T) {
	app := newTestApp(t, nil)
	csrf := cookieNamed(app.get(t, "/").Result().Cookies(), "_csrf")
	require.NotNil(t, csrf)

	rec := postChat(t, app, "what do you build?", []*http.Cookie{csrf})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "You asked: what do you build?", resp.Response)

	sess := cookieNamed(rec.Result().Cookies(), sessionName)
	require.NotNil(t, sess)

	doc := parseBody(t, app.get(t, "/", sess, csrf))
	msgs := doc.Find("#chat-history .message")
	require.Equal(t, 3, msgs.Length())
	assert.True(t, msgs.Eq(1).HasClass("user-message"))
	assert.Equal(t, "You asked: what do you build?", msgs.Eq(2).Text())
}

func TestChatRejectsMissingCSRF(t *testing.T) {
	app := newTestApp(t, nil)
	rec := postChat(t, app, "hi", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestChatEmptyQuery(t *testing.T) {
	app := newTestApp(t, nil)
	csrf := cookieNamed(app.get(t, "/").Result().Cookies(), "_csrf")
	rec := postChat(t, app, "   ", []*http.Cookie{csrf})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatRateLimited(t *testing.T) {
	app := newTestApp(t, nil)
	csrf := cookieNamed(app.get(t, "/").Result().Cookies(), "_csrf")
	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, postChat(t, app, "q", []*http.Cookie{csrf}).Code)
	}
	rec := postChat(t, app, "q", []*http.Cookie{csrf})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), chat.Apology)
}

func TestChatBackendDownApologizes(t *testing.T) {
	app := newTestApp(t, nil)
	app.backend.Close()
	csrf := cookieNamed(app.get(t, "/").Result().Cookies(), "_csrf")

	rec := postChat(t, app, "hello", []*http.Cookie{csrf})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, chat.Apology, resp.Response)
}

func TestProjectFragments(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.get(t, "/projects/1/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Key Features")

	rec = app.get(t, "/projects/live/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<span>+1</span>")

	rec = app.get(t, "/projects/404/")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, showcase.DetailError, rec.Body.String())
}

func TestProjectFragmentsWithoutBackend(t *testing.T) {
	app := newTestApp(t, func(c *SiteConfig) { c.BackendURL = "" })
	rec := app.get(t, "/projects/live/")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, showcase.GridError, rec.Body.String())
}

func TestFeedAndSitemap(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.get(t, "/feed.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	var feed rssXML
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &feed))
	require.Len(t, feed.Channel.Items, 1)
	assert.Equal(t, "https://jamie.example/blog-post-1.html", feed.Channel.Items[0].Link)

	rec = app.get(t, "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	var sm sitemapURLSet
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &sm))
	var locs []string
	for _, u := range sm.URLs {
		locs = append(locs, u.Loc)
	}
	assert.Equal(t, []string{
		"https://jamie.example/",
		"https://jamie.example/blog.html",
		"https://jamie.example/projects.html",
		"https://jamie.example/blog-post-1.html",
	}, locs)

	rec = app.get(t, "/robots.txt")
	assert.Contains(t, rec.Body.String(), "Sitemap: https://jamie.example/sitemap.xml")
}

func TestRevealDisabledMarksVisible(t *testing.T) {
	app := newTestApp(t, func(c *SiteConfig) { c.RevealDisabled = true })
	doc := parseBody(t, app.get(t, "/"))
	assert.Equal(t, 0, doc.Find("script[data-reveal]").Length())
	assert.True(t, doc.Find(".fade-in").HasClass("visible"))
	assert.True(t, doc.Find(".sidebar").HasClass("visible"))
}

func TestContentFailureKeepsShell(t *testing.T) {
	app := newTestApp(t, func(c *SiteConfig) { c.ContentSource = "data/missing.json" })
	doc := parseBody(t, app.get(t, "/"))
	assert.Equal(t, 1, doc.Find("#projects-grid .loading").Length())
	assert.Equal(t, "index.html", doc.Find(".nav-link.active").AttrOr("href", ""))
}

func TestBasePathGroup(t *testing.T) {
	app := newTestApp(t, func(c *SiteConfig) { c.URL = "https://jamie.github.io/portfolio_static_website" })
	assert.Equal(t, "/portfolio_static_website", app.Config.BasePath)

	rec := app.get(t, "/portfolio_static_website/")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseBody(t, rec)
	assert.Equal(t, 3, doc.Find("#header-container .nav-link").Length())
	assert.Equal(t, "/portfolio_static_website/assets/reveal.js", doc.Find("script[data-reveal]").AttrOr("src", ""))
}

func TestSetupRequiresSessionSecret(t *testing.T) {
	app := New(SiteConfig{}, WithSiteFS(testSite()), WithLogger(zap.NewNop()))
	assert.Error(t, app.Setup())
}

func TestBuildExportsSite(t *testing.T) {
	app := New(SiteConfig{Name: "Jamie Doe", URL: "https://jamie.example", Owner: "Jamie"},
		WithSiteFS(testSite()), WithLogger(zap.NewNop()))
	out := t.TempDir()

	report, err := app.Build(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, []string{"index.html", "blog.html", "projects.html"}, report.Pages)
	assert.Equal(t, 1, report.Posts)
	assert.Equal(t, 3, report.Assets)

	for _, name := range []string{
		"index.html", "blog-post-1.html", "feed.xml", "sitemap.xml", "robots.txt",
		"assets/chat.js", "public/style.css", "components/header.html", "data/portfolio-data.json",
	} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}

	raw, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "<!DOCTYPE html>"))
	assert.Contains(t, string(raw), "Hello. Ask me anything about Jamie.")
}

func TestPageName(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"", "index.html", true},
		{"blog", "blog.html", true},
		{"blog.html", "blog.html", true},
		{"style.css", "", false},
		{".env", "", false},
	}
	for _, tt := range tests {
		got, ok := pageName(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestChatRecoversFromStaleSessionCookie(t *testing.T) {
	old := newTestApp(t, nil)
	csrf := cookieNamed(old.get(t, "/").Result().Cookies(), "_csrf")
	rec := postChat(t, old, "first", []*http.Cookie{csrf})
	require.Equal(t, http.StatusOK, rec.Code)
	stale := cookieNamed(rec.Result().Cookies(), sessionName)
	require.NotNil(t, stale)

	app := newTestApp(t, func(c *SiteConfig) { c.SessionSecret = "rotated-secret-rotated-secret-32" })
	page := app.get(t, "/", stale)
	require.Equal(t, http.StatusOK, page.Code)
	csrf = cookieNamed(page.Result().Cookies(), "_csrf")
	require.NotNil(t, csrf)

	rec = postChat(t, app, "hello", []*http.Cookie{stale, csrf})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "You asked: hello", resp.Response)

	fresh := cookieNamed(rec.Result().Cookies(), sessionName)
	require.NotNil(t, fresh, "stale cookie is overwritten")
	assert.NotEqual(t, stale.Value, fresh.Value)

	rec = postChat(t, app, "again", []*http.Cookie{fresh, csrf})
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseBody(t, app.get(t, "/", fresh, csrf))
	assert.Equal(t, 5, doc.Find("#chat-history .message").Length())
}

func TestComponentsURLFetchesFragmentsOverHTTP(t *testing.T) {
	components := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/components/header.html":
			_, _ = w.Write([]byte(`<nav><a class="nav-link" href="index.html">Remote Home</a></nav>`))
		case "/components/footer.html":
			_, _ = w.Write([]byte(`<footer>Remote footer</footer>`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(components.Close)

	app := newTestApp(t, func(c *SiteConfig) { c.ComponentsURL = components.URL })
	doc := parseBody(t, app.get(t, "/"))
	assert.Equal(t, "Remote Home", doc.Find("#header-container .nav-link.active").Text())
	assert.Equal(t, "Remote footer", doc.Find("#footer-container footer").Text())
}

func TestBuildSkipsPostsWithUnusableIDs(t *testing.T) {
	site := testSite()
	site["data/portfolio-data.json"] = &fstest.MapFile{Data: []byte(`{"blogPosts": [
		{"id": "../../../escaped", "title": "Escape", "status": "published"},
		{"id": "nested/post", "title": "Nested", "status": "published"},
		{"id": 1, "title": "Hello World", "status": "published"}
	]}`)}
	app := New(SiteConfig{Name: "Jamie Doe", URL: "https://jamie.example"},
		WithSiteFS(site), WithLogger(zap.NewNop()))
	root := t.TempDir()
	out := filepath.Join(root, "out")

	report, err := app.Build(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Posts)

	_, err = os.Stat(filepath.Join(root, "escaped.html"))
	assert.True(t, os.IsNotExist(err), "nothing is written outside the output dir")
	_, err = os.Stat(filepath.Join(out, "blog-post-1.html"))
	assert.NoError(t, err)
}
