package page

import (
	"context"

	"github.com/eringen/folio/cards"
	"github.com/eringen/folio/content"
)

// State is the lifecycle of a page initializer.
type State int

// Initializer states. Run reports only the final state, Loaded or LoadFailed.
const (
	Idle State = iota
	Loading
	Loaded
	LoadFailed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case LoadFailed:
		return "load-failed"
	default:
		return "unknown"
	}
}

// Source provides the content store for one page session.
type Source interface {
	Store(ctx context.Context) (*content.Store, error)
}

// Display renders one collection of a loaded store into a document.
type Display func(doc *Document, s *content.Store)

// Initializer is a page's entry point: load content, then run its displays.
type Initializer struct {
	Page     string
	Displays []Display
}

// Run moves the page from Loading to Loaded or LoadFailed. Displays run only
// once content is loaded; on failure the document keeps its shipped markup.
func (in Initializer) Run(ctx context.Context, doc *Document, src Source) State {
	s, err := src.Store(ctx)
	if err != nil || !s.Loaded() {
		return LoadFailed
	}
	for _, display := range in.Displays {
		display(doc, s)
	}
	return Loaded
}

// Projects displays featured projects into container id.
func Projects(id string, limit int) Display {
	return func(doc *Document, s *content.Store) {
		if !s.Loaded() {
			return
		}
		items := s.Projects(limit)
		out := make([]string, 0, len(items))
		for _, p := range items {
			out = append(out, cards.ProjectCard(p))
		}
		doc.Display(id, out)
	}
}

// Research displays featured research items into container id.
func Research(id string, limit int) Display {
	return func(doc *Document, s *content.Store) {
		if !s.Loaded() {
			return
		}
		items := s.Research(limit)
		out := make([]string, 0, len(items))
		for _, r := range items {
			out = append(out, cards.ResearchCard(r))
		}
		doc.Display(id, out)
	}
}

// Achievements displays featured achievements, most recent first.
func Achievements(id string, limit int) Display {
	return func(doc *Document, s *content.Store) {
		if !s.Loaded() {
			return
		}
		items := s.Achievements(limit)
		out := make([]string, 0, len(items))
		for _, a := range items {
			out = append(out, cards.AchievementCard(a))
		}
		doc.Display(id, out)
	}
}

// Experience displays featured work history, most recent first.
func Experience(id string, limit int) Display {
	return func(doc *Document, s *content.Store) {
		if !s.Loaded() {
			return
		}
		items := s.Experience(limit)
		out := make([]string, 0, len(items))
		for _, e := range items {
			out = append(out, cards.ExperienceCard(e))
		}
		doc.Display(id, out)
	}
}

// Education displays featured education entries, most recent first.
func Education(id string, limit int) Display {
	return func(doc *Document, s *content.Store) {
		if !s.Loaded() {
			return
		}
		items := s.Education(limit)
		out := make([]string, 0, len(items))
		for _, e := range items {
			out = append(out, cards.EducationCard(e))
		}
		doc.Display(id, out)
	}
}

// Blogs displays published blog posts.
func Blogs(id string, limit int) Display {
	return func(doc *Document, s *content.Store) {
		if !s.Loaded() {
			return
		}
		items := s.BlogPosts(limit)
		out := make([]string, 0, len(items))
		for _, p := range items {
			out = append(out, cards.BlogCard(p))
		}
		doc.Display(id, out)
	}
}
