package models

import (
	"strings"
	"time"
)

// DateLayout is the human readable month/day/year layout of Post.Date.
const DateLayout = "January 02, 2006"

// SetCreated stamps the creation date. It is a no-op once a date is set so
// that edits never move it.
func (p *Post) SetCreated(t time.Time) {
	if p.Date == "" {
		p.Date = t.Format(DateLayout)
	}
}

// Apply copies the form fields onto the post. ID and Date are left alone.
func (p *Post) Apply(form *PostForm) {
	p.Title = form.Title
	p.Subtitle = form.Subtitle
	p.Author = form.Author
	p.ImageURL = form.ImageURL
	p.Body = form.Body
}

// NewPostForm returns a form pre-filled with the post's current values.
func NewPostForm(p *Post) *PostForm {
	if p == nil {
		return &PostForm{}
	}
	return &PostForm{
		Title:    p.Title,
		Subtitle: p.Subtitle,
		Author:   p.Author,
		ImageURL: p.ImageURL,
		Body:     p.Body,
	}
}

// Normalize trims surrounding whitespace from the single line fields.
func (f *PostForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Subtitle = strings.TrimSpace(f.Subtitle)
	f.Author = strings.TrimSpace(f.Author)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
}
