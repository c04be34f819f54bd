package folio

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"path"
	"sort"

	"go.uber.org/zap"

	"github.com/eringen/folio/cards"
	"github.com/eringen/folio/chat"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/page"
	"github.com/eringen/folio/reveal"
	"github.com/eringen/folio/showcase"
	"github.com/eringen/folio/views"
)

const (
	pagesDir = "pages"
	// postShell is the page shell every blog post is rendered into.
	postShell = "blog-post.html"
	// notFoundShell is rendered for unknown pages when the site provides it.
	notFoundShell = "404.html"
)

// defaultPostShell is used when a site has no pages/blog-post.html.
const defaultPostShell = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title></title></head>
<body>
<div id="header-container"></div>
<main class="main-content"><section class="fade-in"><div id="blog-post-container"></div></section></main>
<div id="footer-container"></div>
</body>
</html>`

// ErrPageNotFound is returned for page names with no shell or post.
var ErrPageNotFound = errors.New("folio: page not found")

// pageRequest is everything a page render depends on.
type pageRequest struct {
	Name        string // shell name, e.g. "index.html" or "blog-post-3.html"
	Path        string // request path used for active nav marking
	Filter      string // project category filter, "" for none
	ChatSession string
}

// composePage renders a page shell into a document ready to send.
func (a *App) composePage(ctx context.Context, req pageRequest) (*page.Document, error) {
	if id, ok := page.PostID(req.Name); ok {
		return a.composePost(ctx, req, id)
	}

	raw, err := fs.ReadFile(a.site, path.Join(pagesDir, req.Name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("read page %s: %w", req.Name, err)
	}
	doc, err := page.ParseString(string(raw))
	if err != nil {
		return nil, err
	}

	a.Nav.Apply(ctx, doc, req.Path)
	state := page.For(req.Name).Run(ctx, doc, a.Content)
	a.Logger.Debug("page initialized", zap.String("page", req.Name), zap.Stringer("state", state))

	if req.Name == page.Index {
		site := a.Config.Site()
		doc.AppendHead(views.JSONLDScript(views.PersonJSONLD(site)))
		doc.AppendHead(views.JSONLDScript(views.WebsiteJSONLD(site)))
	}
	a.finishPage(ctx, doc, req, views.PageMeta{
		Title: doc.Title(),
		URL:   a.pageURL(req.Name),
	})
	return doc, nil
}

func (a *App) composePost(ctx context.Context, req pageRequest, id string) (*page.Document, error) {
	store, err := a.Content.Store(ctx)
	if err != nil {
		return nil, err
	}
	post, err := store.BlogPost(id)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}

	shell := defaultPostShell
	if raw, err := fs.ReadFile(a.site, path.Join(pagesDir, postShell)); err == nil {
		shell = string(raw)
	}
	doc, err := page.ParseString(shell)
	if err != nil {
		return nil, err
	}

	// Posts highlight the blog link.
	a.Nav.Apply(ctx, doc, "/blog.html")
	if err := page.DisplayPost(doc, post); err != nil {
		return nil, err
	}
	site := a.Config.Site()
	if doc.Title() == post.Title {
		doc.SetTitle(post.Title + " | " + site.Name)
	}
	doc.AppendHead(views.JSONLDScript(views.BlogPostingJSONLD(site, post)))
	a.finishPage(ctx, doc, req, views.PageMeta{
		Title:       post.Title,
		Description: post.Excerpt,
		URL:         views.PostURL(site, post),
		OGType:      "article",
		Image:       cards.BlogImage(post),
	})
	return doc, nil
}

// finishPage applies the parts every page shares: chat history, project
// showcase, scroll reveal and head metadata.
func (a *App) finishPage(ctx context.Context, doc *page.Document, req pageRequest, meta views.PageMeta) {
	base := a.Config.BasePath

	if _, ok := doc.Container(page.ChatHistory); ok {
		msgs := []chat.Message{chat.Greeting(a.Config.Owner)}
		if a.Chat != nil {
			var err error
			if msgs, err = a.Chat.Transcript(ctx, req.ChatSession); err != nil {
				a.Logger.Warn("load chat transcript", zap.Error(err))
			}
		}
		chat.Display(doc, msgs)
		addScript(doc, base+chat.ScriptPath, "data-chat",
			`data-endpoint="`+html.EscapeString(base+"/chat/")+`"`)
	}

	_, hasModal := doc.Container(page.ProjectModal)
	if hasModal || doc.Find(".filter-btn, #projects-grid[data-live]").Length() > 0 {
		if req.Filter != "" {
			showcase.Filter(doc, req.Filter)
		}
		addScript(doc, base+showcase.ScriptPath, "data-showcase",
			`data-base="`+html.EscapeString(base)+`"`)
	}

	reveal.Apply(doc, reveal.Options{Disabled: a.Config.RevealDisabled, Base: base})
	doc.AppendHead(views.MetaTags(a.Config.Site(), meta))
}

// addScript appends a deferred script once, marked with the marker attribute.
func addScript(doc *page.Document, src, marker string, attrs ...string) {
	if doc.Find("script["+marker+"]").Length() > 0 {
		return
	}
	tag := `<script src="` + html.EscapeString(src) + `" ` + marker
	for _, attr := range attrs {
		tag += " " + attr
	}
	doc.AppendBody(tag + ` defer></script>`)
}

// pageURL is the canonical URL of a page shell.
func (a *App) pageURL(name string) string {
	if name == page.Index {
		return views.BuildURL(a.Config.URL)
	}
	return views.BuildURL(a.Config.URL, name)
}

// pageNames lists the site's page shells, index first. The post shell and
// the 404 shell are not pages of their own.
func (a *App) pageNames() ([]string, error) {
	matches, err := fs.Glob(a.site, pagesDir+"/*.html")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, m := range matches {
		name := path.Base(m)
		if name == postShell || name == notFoundShell {
			continue
		}
		if _, isPost := page.PostID(name); isPost {
			continue
		}
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		if names[i] == page.Index || names[j] == page.Index {
			return names[i] == page.Index
		}
		return names[i] < names[j]
	})
	return names, nil
}
