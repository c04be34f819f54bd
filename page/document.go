// Package page hydrates static HTML page shells: it finds their containers,
// replaces container markup with rendered cards and drives the per-page
// initializers.
package page

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is a parsed page shell.
type Document struct {
	doc *goquery.Document
}

// Parse reads an HTML page shell.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Find runs a CSS selector against the whole document.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Container returns the element with the given id, and whether it exists.
func (d *Document) Container(id string) (*goquery.Selection, bool) {
	sel := d.doc.Find("#" + id).First()
	return sel, sel.Length() > 0
}

// Display replaces the inner markup of container id with the joined
// fragments in one step. It is a no-op when the container does not exist.
func (d *Document) Display(id string, fragments []string) bool {
	sel, ok := d.Container(id)
	if !ok {
		return false
	}
	sel.SetHtml(strings.Join(fragments, ""))
	return true
}

// Title returns the text of the <title> element.
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// SetTitle replaces the document title, adding a <title> if there is none.
func (d *Document) SetTitle(title string) {
	if sel := d.doc.Find("title").First(); sel.Length() > 0 {
		sel.SetText(title)
		return
	}
	d.doc.Find("head").First().AppendHtml("<title></title>")
	d.doc.Find("head title").First().SetText(title)
}

// AppendHead appends raw markup to <head>.
func (d *Document) AppendHead(markup string) {
	d.doc.Find("head").First().AppendHtml(markup)
}

// AppendBody appends raw markup to the end of <body>.
func (d *Document) AppendBody(markup string) {
	d.doc.Find("body").First().AppendHtml(markup)
}

// HTML serializes the whole document.
func (d *Document) HTML() (string, error) {
	out, err := goquery.OuterHtml(d.doc.Selection)
	if err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(out)), "<!doctype") {
		out = "<!DOCTYPE html>\n" + out
	}
	return out, nil
}

// Render writes the document, which makes it usable as a templ.Component.
func (d *Document) Render(ctx context.Context, w io.Writer) error {
	out, err := d.HTML()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
