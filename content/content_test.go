package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "personalProjects": [
    {"title": "Alpha", "featured": true, "category": "web"},
    {"title": "Hidden", "featured": false},
    {"title": "Beta", "featured": true},
    {"title": "Gamma", "featured": true}
  ],
  "recentResearch": [
    {"title": "R1", "featured": true, "startDate": "2021-01-01", "endDate": "present"},
    {"title": "R2", "featured": false}
  ],
  "recentAchievements": [
    {"title": "Old", "featured": true, "date": "2019-05-01"},
    {"title": "Undated", "featured": true},
    {"title": "Ongoing", "featured": true, "startDate": "2018-01-01", "endDate": "Present"},
    {"title": "Recent", "featured": true, "endDate": "2023-02-01"},
    {"title": "Skipped", "featured": false, "date": "2024-01-01"}
  ],
  "workExperience": [
    {"company": "A", "featured": true, "startDate": "2015-01-01", "endDate": "2017-01-01"},
    {"company": "B", "featured": true, "startDate": "2020-01-01", "endDate": "present"}
  ],
  "education": [
    {"institution": "U1", "featured": true, "startDate": "2010-09-01", "endDate": "2014-06-01"},
    {"institution": "U2", "featured": true, "startDate": "2014-09-01", "endDate": "2016-06-01"}
  ],
  "blogPosts": [
    {"id": 1, "title": "First", "status": "published", "category": "AI Technology"},
    {"id": "two", "title": "Draft", "status": "draft"},
    {"id": 3, "title": "Third", "status": "published"}
  ]
}`

func loadSample(t *testing.T) *Store {
	t.Helper()
	doc, err := Decode([]byte(sampleJSON), "portfolio.json")
	require.NoError(t, err)
	s := NewStore(doc)
	s.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestProjectsFeaturedAndLimit(t *testing.T) {
	s := loadSample(t)

	all := s.Projects(0)
	require.Len(t, all, 3)
	for _, p := range all {
		assert.True(t, p.Featured, "non-featured project %q leaked", p.Title)
	}
	assert.Equal(t, "Alpha", all[0].Title)

	limited := s.Projects(2)
	require.Len(t, limited, 2)
	assert.Equal(t, []string{"Alpha", "Beta"}, []string{limited[0].Title, limited[1].Title})

	assert.Len(t, s.Projects(10), 3, "limit above match count keeps every match")
}

func TestAchievementsSortedMostRecentFirst(t *testing.T) {
	s := loadSample(t)

	got := s.Achievements(0)
	var titles []string
	for _, a := range got {
		titles = append(titles, a.Title)
	}
	assert.Equal(t, []string{"Ongoing", "Recent", "Old", "Undated"}, titles)
	assert.Len(t, s.Achievements(2), 2)
}

func TestExperienceAndEducationSorted(t *testing.T) {
	s := loadSample(t)

	exp := s.Experience(0)
	require.Len(t, exp, 2)
	assert.Equal(t, "B", exp[0].Company)

	edu := s.Education(1)
	require.Len(t, edu, 1)
	assert.Equal(t, "U2", edu[0].Institution)
}

func TestBlogPostsPublishedOnly(t *testing.T) {
	s := loadSample(t)

	posts := s.BlogPosts(0)
	require.Len(t, posts, 2)
	assert.Equal(t, ID("1"), posts[0].ID)
	assert.Equal(t, ID("3"), posts[1].ID)

	_, err := s.BlogPost("two")
	assert.ErrorIs(t, err, ErrNotFound, "drafts are not addressable")

	post, err := s.BlogPost("3")
	require.NoError(t, err)
	assert.Equal(t, "Third", post.Title)
}

func TestBlogPostsSkipUnaddressableIDs(t *testing.T) {
	s := NewStore(&Document{BlogPosts: []BlogPost{
		{ID: "../../../x", Title: "Escape", Status: StatusPublished},
		{ID: "a/b", Title: "Nested", Status: StatusPublished},
		{ID: `c\d`, Title: "Backslash", Status: StatusPublished},
		{ID: "", Title: "Blank", Status: StatusPublished},
		{ID: "ok-1", Title: "Fine", Status: StatusPublished},
	}})

	posts := s.BlogPosts(0)
	require.Len(t, posts, 1)
	assert.Equal(t, ID("ok-1"), posts[0].ID)

	_, err := s.BlogPost("../../../x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIDAddressable(t *testing.T) {
	assert.True(t, ID("12").Addressable())
	assert.True(t, ID("my-post.v2").Addressable())
	assert.False(t, ID("").Addressable())
	assert.False(t, ID("..").Addressable())
	assert.False(t, ID("x/y").Addressable())
}

func TestEmptyStoreViewsAreNil(t *testing.T) {
	s := Empty()
	assert.False(t, s.Loaded())
	assert.Nil(t, s.Projects(0))
	assert.Nil(t, s.Research(3))
	assert.Nil(t, s.Achievements(0))
	assert.Nil(t, s.BlogPosts(0))

	var nilStore *Store
	assert.False(t, nilStore.Loaded())
	assert.Nil(t, nilStore.Experience(0))
}

func TestSortableDate(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	epoch := time.Unix(0, 0).UTC()

	tests := []struct {
		name             string
		date, end, start string
		want             time.Time
	}{
		{"date wins", "2020-03-04", "2021-01-01", "2019-01-01", time.Date(2020, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"end before start", "", "2021-01-01", "2019-01-01", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"start fallback", "", "", "2019-07", time.Date(2019, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"present is now", "", "PRESENT", "2019-01-01", now},
		{"missing is epoch", "", "", "", epoch},
		{"garbage is epoch", "someday", "", "", epoch},
	}
	for _, tt := range tests {
		got := SortableDate(now, tt.date, tt.end, tt.start)
		assert.True(t, got.Equal(tt.want), "%s: SortableDate = %v, want %v", tt.name, got, tt.want)
	}
}

func TestDecodeYAML(t *testing.T) {
	raw := []byte(`
personalProjects:
  - title: Yaml Project
    featured: true
    technologies: [Go, SQLite]
blogPosts:
  - id: 7
    title: Post
    status: published
`)
	doc, err := Decode(raw, "data/portfolio.yaml")
	require.NoError(t, err)
	require.Len(t, doc.Projects, 1)
	assert.Equal(t, []string{"Go", "SQLite"}, doc.Projects[0].Technologies)
	assert.Equal(t, ID("7"), doc.BlogPosts[0].ID)
}

func TestAchievementHrefFallsBackToLinkedIn(t *testing.T) {
	assert.Equal(t, "https://a", Achievement{Link: "https://a", LinkedInURL: "https://b"}.Href())
	assert.Equal(t, "https://b", Achievement{LinkedInURL: "https://b"}.Href())
	assert.Empty(t, Achievement{}.Href())
}

func TestLoaderReadsFromFiles(t *testing.T) {
	files := fstest.MapFS{
		"data/portfolio-data.json": {Data: []byte(sampleJSON)},
	}
	l := NewLoader("", files)

	s, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, s.Loaded())
	assert.Len(t, s.Projects(0), 3)
}

func TestLoaderFailureLeavesStoreEmpty(t *testing.T) {
	files := fstest.MapFS{
		"data/portfolio-data.json": {Data: []byte(`{"personalProjects": [`)},
	}
	l := NewLoader(DefaultSource, files)

	s, err := l.Load(context.Background())
	require.Error(t, err)
	require.NotNil(t, s)
	assert.False(t, s.Loaded())
	assert.Nil(t, s.Projects(0))
}

func TestLoaderFetchesOnce(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	l := NewLoader(srv.URL+"/data/portfolio-data.json", nil)
	first, err := l.Load(context.Background())
	require.NoError(t, err)
	second, err := l.Load(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), hits.Load())
}

func TestLoaderRemoteErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	s, err := NewLoader(srv.URL, nil).Load(context.Background())
	require.Error(t, err)
	assert.False(t, s.Loaded())
}

func TestCacheReusesUntilInvalidated(t *testing.T) {
	files := fstest.MapFS{
		"data/portfolio-data.json": {Data: []byte(sampleJSON)},
	}
	var built int
	c := NewCache(func() *Loader {
		built++
		return NewLoader(DefaultSource, files)
	}, time.Minute)

	first, err := c.Store(context.Background())
	require.NoError(t, err)
	second, err := c.Store(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, built)

	c.Invalidate()
	_, err = c.Store(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, built)
}

func TestCacheDoesNotKeepFailures(t *testing.T) {
	files := fstest.MapFS{}
	var built int
	c := NewCache(func() *Loader {
		built++
		return NewLoader(DefaultSource, files)
	}, time.Minute)

	_, err := c.Store(context.Background())
	require.Error(t, err)
	_, err = c.Store(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, built)
}
