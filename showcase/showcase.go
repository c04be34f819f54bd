// Package showcase renders the project modal body and the live project grid
// served by the backend, and applies the category filter to project cards.
package showcase

import (
	"context"
	"html"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/eringen/folio/backend"
	"github.com/eringen/folio/page"
)

// Fallback markup shown when the backend cannot be reached.
const (
	DetailError = "<p>Error loading project details. Please try again.</p>"
	GridError   = "<p>Error loading projects. Please refresh the page to try again.</p>"
)

// FilterAll shows every card.
const FilterAll = "all"

const visibleTechs = 3

type (
	Detail  = backend.ProjectDetail
	Summary = backend.ProjectSummary
)

// Source is the backend subset the showcase reads from.
type Source interface {
	Project(ctx context.Context, id string) (backend.ProjectDetail, error)
	Projects(ctx context.Context) ([]backend.ProjectSummary, error)
}

var descriptionPolicy = bluemonday.UGCPolicy()

func esc(s string) string {
	return html.EscapeString(s)
}

// RenderDetail builds the modal body for a project. The description is HTML
// from the backend and is sanitized; everything else is escaped.
func RenderDetail(d Detail) string {
	var b strings.Builder
	b.WriteString(`<div class="project-detail">`)
	b.WriteString(`<div class="project-detail-header"><h2>` + esc(d.Title) + `</h2>`)
	if d.Date != "" {
		b.WriteString(`<p class="project-date">` + esc(d.Date) + `</p>`)
	}
	b.WriteString(`</div>`)
	if d.Image != "" {
		b.WriteString(`<div class="project-showcase"><img src="` + esc(d.Image) + `" alt="` + esc(d.Title) + `"></div>`)
	}
	b.WriteString(`<div class="project-description">` + descriptionPolicy.Sanitize(d.Description) + `</div>`)
	if len(d.Features) > 0 {
		b.WriteString(`<div class="project-features"><h3>Key Features</h3><ul>`)
		for _, f := range d.Features {
			b.WriteString(`<li>` + esc(f) + `</li>`)
		}
		b.WriteString(`</ul></div>`)
	}
	if len(d.Technologies) > 0 {
		b.WriteString(`<div class="tech-stack-detail"><h3>Technologies Used</h3><div class="tech-tags">`)
		for _, t := range d.Technologies {
			b.WriteString(`<span>` + esc(t) + `</span>`)
		}
		b.WriteString(`</div></div>`)
	}
	b.WriteString(`<div class="project-links-detail">`)
	if d.Demo != "" {
		b.WriteString(`<a href="` + esc(d.Demo) + `" target="_blank" class="btn primary-btn">Live Demo</a>`)
	}
	if d.Github != "" {
		b.WriteString(`<a href="` + esc(d.Github) + `" target="_blank" class="btn secondary-btn">GitHub Repository</a>`)
	}
	b.WriteString(`</div></div>`)
	return b.String()
}

// LiveCard renders one project of the live grid. Only the first three
// technologies are listed, followed by a "+N" chip for the rest.
func LiveCard(s Summary) string {
	var b strings.Builder
	b.WriteString(`<div class="project-card" data-category="` + esc(s.Category) + `">`)
	b.WriteString(`<div class="project-card-inner">`)
	if s.Thumbnail != "" {
		b.WriteString(`<div class="project-img"><img src="` + esc(s.Thumbnail) + `" alt="` + esc(s.Title) + `"></div>`)
	}
	b.WriteString(`<div class="project-info"><h3>` + esc(s.Title) + `</h3>`)
	if s.ShortDescription != "" {
		b.WriteString(`<p>` + esc(s.ShortDescription) + `</p>`)
	}
	if len(s.Technologies) > 0 {
		b.WriteString(`<div class="tech-stack">`)
		for i, t := range s.Technologies {
			if i == visibleTechs {
				break
			}
			b.WriteString(`<span>` + esc(t) + `</span>`)
		}
		if extra := len(s.Technologies) - visibleTechs; extra > 0 {
			b.WriteString(`<span>+` + strconv.Itoa(extra) + `</span>`)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`<div class="project-links">`)
	b.WriteString(`<a href="#" class="view-details" data-project-id="` + esc(s.ID.String()) + `">View Details</a>`)
	if s.Demo != "" {
		b.WriteString(`<a href="` + esc(s.Demo) + `" target="_blank" class="demo-link">Demo</a>`)
	}
	if s.Github != "" {
		b.WriteString(`<a href="` + esc(s.Github) + `" target="_blank" class="github-link">GitHub</a>`)
	}
	b.WriteString(`</div></div></div></div>`)
	return b.String()
}

// RenderGrid renders the live grid, in backend order.
func RenderGrid(items []Summary) string {
	var b strings.Builder
	for _, s := range items {
		b.WriteString(LiveCard(s))
	}
	return b.String()
}

// DetailFragment fetches and renders one project, or returns DetailError.
func DetailFragment(ctx context.Context, src Source, id string) (string, error) {
	d, err := src.Project(ctx, id)
	if err != nil {
		return DetailError, err
	}
	return RenderDetail(d), nil
}

// GridFragment fetches and renders the live grid, or returns GridError.
func GridFragment(ctx context.Context, src Source) (string, error) {
	items, err := src.Projects(ctx)
	if err != nil {
		return GridError, err
	}
	return RenderGrid(items), nil
}

// Filter shows the .project-card elements matching value and hides the rest,
// and moves the active class to the .filter-btn whose data-filter is value.
// It returns the number of visible cards.
func Filter(doc *page.Document, value string) int {
	if value == "" {
		value = FilterAll
	}
	doc.Find(".filter-btn").Each(func(_ int, btn *goquery.Selection) {
		if btn.AttrOr("data-filter", "") == value {
			btn.AddClass("active")
		} else {
			btn.RemoveClass("active")
		}
	})
	visible := 0
	doc.Find(".project-card").Each(func(_ int, card *goquery.Selection) {
		if value == FilterAll || card.AttrOr("data-category", "") == value {
			setDisplay(card, "block")
			visible++
		} else {
			setDisplay(card, "none")
		}
	})
	return visible
}

// setDisplay replaces any display declaration in the element's inline style.
func setDisplay(sel *goquery.Selection, value string) {
	var kept []string
	for _, decl := range strings.Split(sel.AttrOr("style", ""), ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" || strings.HasPrefix(strings.ToLower(decl), "display") {
			continue
		}
		kept = append(kept, decl)
	}
	kept = append(kept, "display: "+value)
	sel.SetAttr("style", strings.Join(kept, "; "))
}
