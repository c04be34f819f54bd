package page

import "strings"

// Container ids the page shells use.
const (
	ProjectsGrid     = "projects-grid"
	ResearchList     = "research-list"
	AchievementsList = "achievements-list"
	ExperienceList   = "experience-list"
	EducationList    = "education-list"
	BlogPosts        = "blog-posts-container"
	BlogPost         = "blog-post-container"
	ChatHistory      = "chat-history"
	HeaderContainer  = "header-container"
	FooterContainer  = "footer-container"
	ProjectModal     = "project-modal"
	ModalBody        = "modal-body"
)

// Index is the page served for "/".
const Index = "index.html"

var initializers = map[string]Initializer{
	Index: {Page: Index, Displays: []Display{
		Projects(ProjectsGrid, 4),
		Research(ResearchList, 3),
		Achievements(AchievementsList, 3),
		Experience(ExperienceList, 3),
		Education(EducationList, 2),
	}},
	"projects.html": {Page: "projects.html", Displays: []Display{
		Projects(ProjectsGrid, 0),
	}},
	"research.html": {Page: "research.html", Displays: []Display{
		Research(ResearchList, 0),
	}},
	"achievements.html": {Page: "achievements.html", Displays: []Display{
		Achievements(AchievementsList, 0),
	}},
	"experience.html": {Page: "experience.html", Displays: []Display{
		Experience(ExperienceList, 0),
		Education(EducationList, 0),
	}},
	"blog.html": {Page: "blog.html", Displays: []Display{
		Blogs(BlogPosts, 0),
	}},
}

// For returns the initializer for a page shell name. Shells without
// content containers get an initializer with no displays.
func For(name string) Initializer {
	if in, ok := initializers[name]; ok {
		return in
	}
	return Initializer{Page: name}
}

// PostID extracts the id from a "blog-post-<id>.html" page name.
func PostID(name string) (string, bool) {
	if !strings.HasPrefix(name, "blog-post-") || !strings.HasSuffix(name, ".html") {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(name, "blog-post-"), ".html")
	return id, id != ""
}
