package views

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
)

func errorPage(site Site, title, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		name := html.EscapeString(site.Name)
		home := html.EscapeString(site.BasePath + "/")
		_, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">
<title>`+html.EscapeString(title)+` | `+name+`</title></head>
<body class="error-page"><main class="error-content">
<h1>`+html.EscapeString(title)+`</h1>
<p>`+html.EscapeString(message)+`</p>
<a class="btn primary-btn" href="`+home+`">Back to `+name+`</a>
</main></body></html>`)
		return err
	})
}

// NotFound is the page for unknown routes and missing posts.
func NotFound(site Site) templ.Component {
	return errorPage(site, "Page not found", "The page you are looking for does not exist.")
}

// ServerError is the page for unexpected failures.
func ServerError(site Site) templ.Component {
	return errorPage(site, "Something went wrong", "Please try again in a moment.")
}
