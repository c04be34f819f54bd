// Package nav injects the shared header and footer fragments into a page
// and marks the navigation link for the current page as active.
package nav

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/eringen/folio/page"
)

// GithubPagesBase is the path prefix the site lives under on GitHub Pages.
const GithubPagesBase = "/portfolio_static_website"

const (
	headerPath = "/components/header.html"
	footerPath = "/components/footer.html"

	maxFragmentSize = 1 << 20
)

// BasePath returns the site prefix for host: GithubPagesBase on github.io,
// the empty string everywhere else.
func BasePath(host string) string {
	if strings.Contains(host, "github.io") {
		return GithubPagesBase
	}
	return ""
}

// Fetcher returns the markup of a fragment at a base-prefixed path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (string, error)
}

// FSFetcher reads fragments from a site directory.
type FSFetcher struct {
	Files fs.FS
	Base  string
}

// Fetch strips the base prefix and reads the file.
func (f FSFetcher) Fetch(_ context.Context, p string) (string, error) {
	name := strings.TrimPrefix(p, f.Base)
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	raw, err := fs.ReadFile(f.Files, name)
	if err != nil {
		return "", fmt.Errorf("read fragment %s: %w", p, err)
	}
	return string(raw), nil
}

// HTTPFetcher requests fragments from a running site.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// Fetch performs a GET for BaseURL+p. Status codes >= 400 are errors.
func (f HTTPFetcher) Fetch(ctx context.Context, p string) (string, error) {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	url := strings.TrimRight(f.BaseURL, "/") + p
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch fragment %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetch fragment %s: status %d", url, resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxFragmentSize))
	if err != nil {
		return "", fmt.Errorf("fetch fragment %s: %w", url, err)
	}
	return string(raw), nil
}

// Loader applies the shared navigation to page documents.
type Loader struct {
	fetcher Fetcher
	base    string
	logger  *zap.Logger
}

// NewLoader creates a Loader fetching fragments under base.
func NewLoader(fetcher Fetcher, base string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fetcher: fetcher, base: base, logger: logger}
}

// Apply injects the header and footer into their containers and marks the
// active link for currentPath. Fetch failures are logged and leave the
// container as shipped; a failed header also skips link marking.
func (l *Loader) Apply(ctx context.Context, doc *page.Document, currentPath string) {
	if _, ok := doc.Container(page.HeaderContainer); ok {
		header, err := l.fetcher.Fetch(ctx, l.base+headerPath)
		if err != nil {
			l.logger.Warn("load header", zap.Error(err))
		} else {
			doc.Display(page.HeaderContainer, []string{header})
			MarkActive(doc, currentPath)
		}
	} else {
		MarkActive(doc, currentPath)
	}

	if _, ok := doc.Container(page.FooterContainer); ok {
		footer, err := l.fetcher.Fetch(ctx, l.base+footerPath)
		if err != nil {
			l.logger.Warn("load footer", zap.Error(err))
			return
		}
		doc.Display(page.FooterContainer, []string{footer})
	}
}

// MarkActive adds the active class to every .nav-link whose href is a suffix
// of currentPath, or to the index.html link when currentPath is "/".
// It returns the number of links marked.
func MarkActive(doc *page.Document, currentPath string) int {
	marked := 0
	doc.Find(".nav-link").Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		if Matches(currentPath, href) {
			link.AddClass("active")
			marked++
		}
	})
	return marked
}

// Matches reports whether a nav link href refers to currentPath.
func Matches(currentPath, href string) bool {
	return strings.HasSuffix(currentPath, href) || (currentPath == "/" && href == page.Index)
}
