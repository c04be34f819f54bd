package views

// Site holds the site-wide settings every view needs.
type Site struct {
	Name        string
	URL         string
	Description string
	Owner       string
	BasePath    string
}

// PageMeta carries per-page OpenGraph and SEO metadata into <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
}
