package cards

import "github.com/eringen/folio/content"

// DefaultBlogImage is used for posts whose category has no placeholder.
const DefaultBlogImage = "https://images.unsplash.com/photo-1498050108023-c5249f4df085?w=600&h=400&fit=crop&crop=center"

var categoryImages = map[string]string{
	"AI Technology":      "https://images.unsplash.com/photo-1677442136019-21780ecad995?w=600&h=400&fit=crop&crop=center",
	"Research":           "https://images.unsplash.com/photo-1532619675605-1ede6c2ed2b0?w=600&h=400&fit=crop&crop=center",
	"Industry Insights":  "https://images.unsplash.com/photo-1486406146926-c627a92ad1ab?w=600&h=400&fit=crop&crop=center",
	"Career Development": "https://images.unsplash.com/photo-1552664730-d307ca884978?w=600&h=400&fit=crop&crop=center",
}

// PlaceholderImage returns the placeholder for a blog category.
func PlaceholderImage(category string) string {
	if img, ok := categoryImages[category]; ok {
		return img
	}
	return DefaultBlogImage
}

// BlogImage returns the post's own image, or its category placeholder.
func BlogImage(p content.BlogPost) string {
	if p.Image != "" {
		return p.Image
	}
	return PlaceholderImage(p.Category)
}
