package cards

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/eringen/folio/content"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	postPolicy = newPostPolicy()
)

func newPostPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("class").OnElements("code", "pre", "span")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// PostBody converts a markdown body to sanitized HTML.
func PostBody(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render post body: %w", err)
	}
	return postPolicy.Sanitize(buf.String()), nil
}

// PostArticle renders a full blog post. Posts without a body fall back to
// their excerpt.
func PostArticle(p content.BlogPost) (string, error) {
	var b strings.Builder
	b.WriteString(`<article class="blog-post" data-category="` + esc(CategorySlug(p.Category)) + `">`)
	b.WriteString(`<header class="blog-post-header">`)
	b.WriteString(`<h1 class="blog-title">` + esc(p.Title) + `</h1>`)
	b.WriteString(`<div class="blog-meta">`)
	if p.PublishedDate != "" {
		b.WriteString(`<span class="blog-date">` + esc(FormatPublished(p.PublishedDate)) + `</span>`)
	}
	if p.ReadTime != "" {
		b.WriteString(`<span class="blog-read-time">` + esc(p.ReadTime) + `</span>`)
	}
	if p.Category != "" {
		b.WriteString(`<span class="blog-category">` + esc(p.Category) + `</span>`)
	}
	b.WriteString(`</div></header>`)
	b.WriteString(`<div class="blog-image"><img src="` + esc(BlogImage(p)) + `" alt="` + esc(p.Title) + `"></div>`)
	b.WriteString(`<div class="blog-body">`)
	if strings.TrimSpace(p.Content) != "" {
		body, err := PostBody(p.Content)
		if err != nil {
			return "", err
		}
		b.WriteString(body)
	} else if p.Excerpt != "" {
		b.WriteString(`<p class="blog-excerpt">` + esc(p.Excerpt) + `</p>`)
	}
	b.WriteString(`</div></article>`)
	return b.String(), nil
}
