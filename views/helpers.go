// Package views renders the server-owned parts of a page: head metadata,
// JSON-LD blocks and the error pages.
package views

import (
	"encoding/json"
	"html"
	"net/url"
	"path"
	"strings"

	"github.com/eringen/folio/cards"
	"github.com/eringen/folio/content"
)

// BuildURL joins path segments onto a base URL. Page names ending in .html
// are kept as files; other paths get a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") && path.Ext(u.Path) == "" {
		u.Path += "/"
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}

// PostURL is the canonical URL of a blog post page.
func PostURL(site Site, p content.BlogPost) string {
	return BuildURL(site.URL, cards.PostHref(p.ID))
}

func marshal(data map[string]any) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// PersonJSONLD describes the portfolio owner.
func PersonJSONLD(site Site) string {
	data := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     site.Owner,
		"url":      BuildURL(site.URL),
	}
	if site.Description != "" {
		data["description"] = site.Description
	}
	return marshal(data)
}

// WebsiteJSONLD produces a Schema.org WebSite block.
func WebsiteJSONLD(site Site) string {
	data := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     site.Name,
		"url":      BuildURL(site.URL),
	}
	if site.Description != "" {
		data["description"] = site.Description
	}
	if site.Owner != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  site.Owner,
		}
	}
	return marshal(data)
}

// BlogPostingJSONLD produces a Schema.org BlogPosting block for a post.
func BlogPostingJSONLD(site Site, p content.BlogPost) string {
	postURL := PostURL(site, p)
	data := map[string]any{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      p.Title,
		"description":   p.Excerpt,
		"datePublished": p.PublishedDate,
		"url":           postURL,
		"image":         cards.BlogImage(p),
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if site.Owner != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  site.Owner,
		}
	}
	if p.Category != "" {
		data["articleSection"] = p.Category
	}
	return marshal(data)
}

// JSONLDScript wraps a JSON-LD document in its script tag.
func JSONLDScript(doc string) string {
	// JSON from encoding/json already escapes <, > and &.
	return `<script type="application/ld+json">` + doc + `</script>`
}

// MetaTags renders canonical and OpenGraph tags for meta.
func MetaTags(site Site, meta PageMeta) string {
	var b strings.Builder
	ogType := meta.OGType
	if ogType == "" {
		ogType = "website"
	}
	desc := meta.Description
	if desc == "" {
		desc = site.Description
	}
	if meta.URL != "" {
		b.WriteString(`<link rel="canonical" href="` + html.EscapeString(meta.URL) + `">`)
		b.WriteString(`<meta property="og:url" content="` + html.EscapeString(meta.URL) + `">`)
	}
	b.WriteString(`<meta property="og:type" content="` + html.EscapeString(ogType) + `">`)
	if meta.Title != "" {
		b.WriteString(`<meta property="og:title" content="` + html.EscapeString(meta.Title) + `">`)
	}
	if desc != "" {
		b.WriteString(`<meta property="og:description" content="` + html.EscapeString(desc) + `">`)
	}
	if site.Name != "" {
		b.WriteString(`<meta property="og:site_name" content="` + html.EscapeString(site.Name) + `">`)
	}
	if meta.Image != "" {
		b.WriteString(`<meta property="og:image" content="` + html.EscapeString(meta.Image) + `">`)
	}
	return b.String()
}
