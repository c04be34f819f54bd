// Package content loads the portfolio document and exposes the filtered,
// sorted and limited views each page displays.
package content

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the decoded portfolio data file.
type Document struct {
	Projects     []Project     `json:"personalProjects" yaml:"personalProjects"`
	Research     []Research    `json:"recentResearch" yaml:"recentResearch"`
	Achievements []Achievement `json:"recentAchievements" yaml:"recentAchievements"`
	Experience   []Experience  `json:"workExperience" yaml:"workExperience"`
	Education    []Education   `json:"education" yaml:"education"`
	BlogPosts    []BlogPost    `json:"blogPosts" yaml:"blogPosts"`
}

// Project is a personal project shown in the projects grid.
type Project struct {
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Category     string   `json:"category" yaml:"category"`
	Image        string   `json:"image" yaml:"image"`
	ImageAlt     string   `json:"imageAlt" yaml:"imageAlt"`
	GithubURL    string   `json:"githubUrl" yaml:"githubUrl"`
	Demo         string   `json:"demo" yaml:"demo"`
	Technologies []string `json:"technologies" yaml:"technologies"`
	Featured     bool     `json:"featured" yaml:"featured"`
}

// Research is a research item with a date range.
type Research struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	StartDate   string `json:"startDate" yaml:"startDate"`
	EndDate     string `json:"endDate" yaml:"endDate"`
	GithubURL   string `json:"githubUrl" yaml:"githubUrl"`
	Featured    bool   `json:"featured" yaml:"featured"`
}

// Achievement is an award, certificate or milestone. Everything except the
// title is optional.
type Achievement struct {
	Title       string   `json:"title" yaml:"title"`
	Subtitle    string   `json:"subtitle" yaml:"subtitle"`
	Location    string   `json:"location" yaml:"location"`
	Description string   `json:"description" yaml:"description"`
	Highlights  []string `json:"highlights" yaml:"highlights"`
	Period      string   `json:"period" yaml:"period"`
	Date        string   `json:"date" yaml:"date"`
	StartDate   string   `json:"startDate" yaml:"startDate"`
	EndDate     string   `json:"endDate" yaml:"endDate"`
	Link        string   `json:"link" yaml:"link"`
	LinkedInURL string   `json:"linkedinUrl" yaml:"linkedinUrl"`
	Featured    bool     `json:"featured" yaml:"featured"`
}

// Href returns the achievement's link, falling back to the older linkedinUrl key.
func (a Achievement) Href() string {
	if a.Link != "" {
		return a.Link
	}
	return a.LinkedInURL
}

// Experience is a work history entry.
type Experience struct {
	Company     string   `json:"company" yaml:"company"`
	Role        string   `json:"role" yaml:"role"`
	Location    string   `json:"location" yaml:"location"`
	StartDate   string   `json:"startDate" yaml:"startDate"`
	EndDate     string   `json:"endDate" yaml:"endDate"`
	Description string   `json:"description" yaml:"description"`
	Highlights  []string `json:"highlights" yaml:"highlights"`
	URL         string   `json:"url" yaml:"url"`
	Featured    bool     `json:"featured" yaml:"featured"`
}

// Education is a degree or course of study.
type Education struct {
	Institution string   `json:"institution" yaml:"institution"`
	Degree      string   `json:"degree" yaml:"degree"`
	Location    string   `json:"location" yaml:"location"`
	StartDate   string   `json:"startDate" yaml:"startDate"`
	EndDate     string   `json:"endDate" yaml:"endDate"`
	Description string   `json:"description" yaml:"description"`
	Highlights  []string `json:"highlights" yaml:"highlights"`
	Featured    bool     `json:"featured" yaml:"featured"`
}

// StatusPublished gates blog post visibility.
const StatusPublished = "published"

// BlogPost is a blog entry. Content holds an optional markdown body.
type BlogPost struct {
	ID            ID     `json:"id" yaml:"id"`
	Title         string `json:"title" yaml:"title"`
	Excerpt       string `json:"excerpt" yaml:"excerpt"`
	Category      string `json:"category" yaml:"category"`
	PublishedDate string `json:"publishedDate" yaml:"publishedDate"`
	ReadTime      string `json:"readTime" yaml:"readTime"`
	Image         string `json:"image" yaml:"image"`
	Status        string `json:"status" yaml:"status"`
	Content       string `json:"content" yaml:"content"`
}

// Published reports whether the post is visible on the site.
func (p BlogPost) Published() bool {
	return p.Status == StatusPublished
}

// ID is a record identifier that may be written as a number or a string.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("content: id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("content: id must be a scalar, got line %d", node.Line)
	}
	*id = ID(strings.TrimSpace(node.Value))
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Addressable reports whether id can name a "blog-post-<id>.html" page.
func (id ID) Addressable() bool {
	s := string(id)
	return s != "" && !strings.ContainsAny(s, `/\`) && !strings.Contains(s, "..")
}
