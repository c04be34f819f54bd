package folio

import (
	"context"
	"encoding/xml"
	"io"

	"github.com/eringen/folio/cards"
	"github.com/eringen/folio/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// writeSitemap lists every page shell and every published post.
func (a *App) writeSitemap(ctx context.Context, w io.Writer) error {
	names, err := a.pageNames()
	if err != nil {
		return err
	}
	var urls []sitemapURL
	for _, name := range names {
		urls = append(urls, sitemapURL{Loc: a.pageURL(name)})
	}
	store, _ := a.Content.Store(ctx)
	for _, p := range store.BlogPosts(0) {
		u := sitemapURL{Loc: a.pageURL(cards.PostHref(p.ID))}
		if t, ok := content.ParseDate(p.PublishedDate); ok {
			u.LastMod = t.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(sitemap)
}
