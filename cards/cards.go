// Package cards renders portfolio records into markup fragments.
// Every renderer is a pure function of its record; optional fields that are
// empty contribute nothing to the output.
package cards

import (
	"html"
	"strings"

	"github.com/eringen/folio/content"
)

const arrowIcon = `<svg class="arrow" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><line x1="7" y1="17" x2="17" y2="7"></line><polyline points="7 7 17 7 17 17"></polyline></svg>`

// esc escapes text and attribute values.
func esc(s string) string {
	return html.EscapeString(s)
}

// HighlightsList renders items as a list, or "" when there are none.
func HighlightsList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<ul class="highlights">`)
	for _, item := range items {
		b.WriteString("<li>")
		b.WriteString(esc(item))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// optional wraps value in a <p> of the given class, or returns "" if empty.
func optional(class, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return `<p class="` + class + `">` + esc(value) + `</p>`
}

// ProjectCard renders a project for the projects grid.
func ProjectCard(p content.Project) string {
	var b strings.Builder
	if p.GithubURL != "" {
		b.WriteString(`<a href="` + esc(p.GithubURL) + `" target="_blank" class="project-card" data-category="` + esc(p.Category) + `">`)
	} else {
		b.WriteString(`<div class="project-card" data-category="` + esc(p.Category) + `">`)
	}
	if p.Image != "" {
		b.WriteString(`<div class="project-image"><img src="` + esc(p.Image) + `" alt="` + esc(p.ImageAlt) + `"></div>`)
	}
	b.WriteString(`<div class="project-content">`)
	b.WriteString(`<h3 class="project-heading">` + esc(p.Title) + `</h3>`)
	if p.Description != "" {
		b.WriteString(`<p>` + esc(p.Description) + `</p>`)
	}
	if len(p.Technologies) > 0 {
		b.WriteString(`<div class="tech-stack">`)
		for _, tech := range p.Technologies {
			b.WriteString(`<span>` + esc(tech) + `</span>`)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
	if p.GithubURL != "" {
		b.WriteString(`</a>`)
	} else {
		b.WriteString(`</div>`)
	}
	return b.String()
}

// ResearchCard renders a research item with its "Mon YYYY - Present" period.
func ResearchCard(r content.Research) string {
	var b strings.Builder
	linked := r.GithubURL != ""
	if linked {
		b.WriteString(`<a class="experience-card" target="_blank" href="` + esc(r.GithubURL) + `">`)
	} else {
		b.WriteString(`<div class="experience-card">`)
	}
	b.WriteString(`<div class="company">` + esc(r.Title))
	if linked {
		b.WriteString(arrowIcon)
	}
	b.WriteString(`</div>`)
	b.WriteString(optional("description", r.Description))
	b.WriteString(optional("period", FormatDateRange(r.StartDate, r.EndDate)))
	if linked {
		b.WriteString(`</a>`)
	} else {
		b.WriteString(`</div>`)
	}
	return b.String()
}

// AchievementCard renders an achievement. A link turns the card into an
// anchor with the arrow icon; without one it is a plain container.
func AchievementCard(a content.Achievement) string {
	var b strings.Builder
	href := a.Href()
	if href != "" {
		b.WriteString(`<a class="experience-card" target="_blank" href="` + esc(href) + `">`)
	} else {
		b.WriteString(`<div class="experience-card">`)
	}
	b.WriteString(`<div class="company">` + esc(a.Title))
	if href != "" {
		b.WriteString(arrowIcon)
	}
	b.WriteString(`</div>`)
	b.WriteString(optional("subtitle", a.Subtitle))
	b.WriteString(optional("location", a.Location))
	b.WriteString(optional("description", a.Description))
	b.WriteString(HighlightsList(a.Highlights))
	b.WriteString(optional("period", a.Period))
	if href != "" {
		b.WriteString(`</a>`)
	} else {
		b.WriteString(`</div>`)
	}
	return b.String()
}

// ExperienceCard renders a work history entry.
func ExperienceCard(e content.Experience) string {
	var b strings.Builder
	linked := e.URL != ""
	if linked {
		b.WriteString(`<a class="experience-card" target="_blank" href="` + esc(e.URL) + `">`)
	} else {
		b.WriteString(`<div class="experience-card">`)
	}
	b.WriteString(`<div class="company">` + esc(e.Company))
	if linked {
		b.WriteString(arrowIcon)
	}
	b.WriteString(`</div>`)
	b.WriteString(optional("role", e.Role))
	b.WriteString(optional("location", e.Location))
	b.WriteString(optional("period", FormatPeriod(e.StartDate, e.EndDate)))
	b.WriteString(optional("description", e.Description))
	b.WriteString(HighlightsList(e.Highlights))
	if linked {
		b.WriteString(`</a>`)
	} else {
		b.WriteString(`</div>`)
	}
	return b.String()
}

// EducationCard renders a degree entry.
func EducationCard(e content.Education) string {
	var b strings.Builder
	b.WriteString(`<div class="experience-card education-card">`)
	b.WriteString(`<div class="company">` + esc(e.Institution) + `</div>`)
	b.WriteString(optional("role", e.Degree))
	b.WriteString(optional("location", e.Location))
	b.WriteString(optional("period", FormatPeriod(e.StartDate, e.EndDate)))
	b.WriteString(optional("description", e.Description))
	b.WriteString(HighlightsList(e.Highlights))
	b.WriteString(`</div>`)
	return b.String()
}

// BlogCard renders a published post teaser linking to its post page.
func BlogCard(p content.BlogPost) string {
	var b strings.Builder
	b.WriteString(`<a href="` + esc(PostHref(p.ID)) + `" class="blog-card" data-category="` + esc(CategorySlug(p.Category)) + `">`)
	b.WriteString(`<div class="blog-image"><img src="` + esc(BlogImage(p)) + `" alt="` + esc(p.Title) + `" loading="lazy"></div>`)
	b.WriteString(`<div class="blog-content">`)
	b.WriteString(`<div class="blog-meta">`)
	if p.PublishedDate != "" {
		b.WriteString(`<span class="blog-date">` + esc(FormatPublished(p.PublishedDate)) + `</span>`)
	}
	if p.ReadTime != "" {
		b.WriteString(`<span class="blog-read-time">` + esc(p.ReadTime) + `</span>`)
	}
	b.WriteString(`</div>`)
	b.WriteString(`<h2 class="blog-title">` + esc(p.Title) + `</h2>`)
	if p.Excerpt != "" {
		b.WriteString(`<p class="blog-excerpt">` + esc(p.Excerpt) + `</p>`)
	}
	b.WriteString(`</div></a>`)
	return b.String()
}

// PostHref is the relative page name of a blog post.
func PostHref(id content.ID) string {
	return "blog-post-" + id.String() + ".html"
}

// CategorySlug lower-cases the category and replaces only its first space
// with a hyphen. Client-side filters match against exactly this form.
func CategorySlug(category string) string {
	return strings.Replace(strings.ToLower(category), " ", "-", 1)
}
