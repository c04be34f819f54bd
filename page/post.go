package page

import (
	"github.com/eringen/folio/cards"
	"github.com/eringen/folio/content"
)

// DisplayPost renders a full blog post into the post container and uses its
// title for the document title.
func DisplayPost(doc *Document, p content.BlogPost) error {
	article, err := cards.PostArticle(p)
	if err != nil {
		return err
	}
	doc.Display(BlogPost, []string{article})
	if site := doc.Title(); site != "" {
		doc.SetTitle(p.Title + " | " + site)
	} else {
		doc.SetTitle(p.Title)
	}
	return nil
}
