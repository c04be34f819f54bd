package folio

import (
	"context"
	"encoding/xml"
	"io"
	"time"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Category    string `xml:"category,omitempty"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

// writeRSS writes the feed of published blog posts. A failed content load
// yields an empty channel.
func (a *App) writeRSS(ctx context.Context, w io.Writer) error {
	site := a.Config.Site()
	store, _ := a.Content.Store(ctx)
	posts := store.BlogPosts(0)

	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		pubDate := ""
		if t, ok := content.ParseDate(p.PublishedDate); ok {
			pubDate = t.Format(time.RFC1123Z)
		}
		postURL := views.PostURL(site, p)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Excerpt,
			Category:    p.Category,
			PubDate:     pubDate,
			GUID:        postURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       site.Name,
			Link:        views.BuildURL(site.URL),
			Description: site.Description,
			Items:       items,
		},
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(feed)
}
