package content

import (
	"errors"
	"sort"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("content: not found")

// Store is an immutable snapshot of one loaded document. An empty Store
// (failed or never loaded) returns nil from every view.
type Store struct {
	doc *Document
	now func() time.Time
}

// NewStore wraps a decoded document.
func NewStore(doc *Document) *Store {
	return &Store{doc: doc, now: time.Now}
}

// Empty returns a Store that holds no content.
func Empty() *Store {
	return &Store{now: time.Now}
}

// Loaded reports whether the store holds a document.
func (s *Store) Loaded() bool {
	return s != nil && s.doc != nil
}

// Projects returns featured projects in document order.
func (s *Store) Projects(limit int) []Project {
	if !s.Loaded() {
		return nil
	}
	var out []Project
	for _, p := range s.doc.Projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	return truncate(out, limit)
}

// Research returns featured research items in document order.
func (s *Store) Research(limit int) []Research {
	if !s.Loaded() {
		return nil
	}
	var out []Research
	for _, r := range s.doc.Research {
		if r.Featured {
			out = append(out, r)
		}
	}
	return truncate(out, limit)
}

// Achievements returns featured achievements, most recent first.
func (s *Store) Achievements(limit int) []Achievement {
	if !s.Loaded() {
		return nil
	}
	var out []Achievement
	for _, a := range s.doc.Achievements {
		if a.Featured {
			out = append(out, a)
		}
	}
	now := s.now()
	sort.SliceStable(out, func(i, j int) bool {
		return SortableDate(now, out[i].Date, out[i].EndDate, out[i].StartDate).
			After(SortableDate(now, out[j].Date, out[j].EndDate, out[j].StartDate))
	})
	return truncate(out, limit)
}

// Experience returns featured work history, most recent first.
func (s *Store) Experience(limit int) []Experience {
	if !s.Loaded() {
		return nil
	}
	var out []Experience
	for _, e := range s.doc.Experience {
		if e.Featured {
			out = append(out, e)
		}
	}
	now := s.now()
	sort.SliceStable(out, func(i, j int) bool {
		return SortableDate(now, "", out[i].EndDate, out[i].StartDate).
			After(SortableDate(now, "", out[j].EndDate, out[j].StartDate))
	})
	return truncate(out, limit)
}

// Education returns featured education entries, most recent first.
func (s *Store) Education(limit int) []Education {
	if !s.Loaded() {
		return nil
	}
	var out []Education
	for _, e := range s.doc.Education {
		if e.Featured {
			out = append(out, e)
		}
	}
	now := s.now()
	sort.SliceStable(out, func(i, j int) bool {
		return SortableDate(now, "", out[i].EndDate, out[i].StartDate).
			After(SortableDate(now, "", out[j].EndDate, out[j].StartDate))
	})
	return truncate(out, limit)
}

// BlogPosts returns published posts in document order. Posts whose id cannot
// name a page are left out.
func (s *Store) BlogPosts(limit int) []BlogPost {
	if !s.Loaded() {
		return nil
	}
	var out []BlogPost
	for _, p := range s.doc.BlogPosts {
		if p.Published() && p.ID.Addressable() {
			out = append(out, p)
		}
	}
	return truncate(out, limit)
}

// BlogPost returns a single published post by id.
func (s *Store) BlogPost(id string) (BlogPost, error) {
	for _, p := range s.BlogPosts(0) {
		if p.ID.String() == id {
			return p, nil
		}
	}
	return BlogPost{}, ErrNotFound
}

// truncate keeps the first limit items. A limit of zero or less keeps all.
func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
