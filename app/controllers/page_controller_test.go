package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestPageController(t *testing.T) {
	pc := NewPageController()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{"about", pc.About, "<h1>About Me</h1>"},
		{"contact", pc.Contact, "<h1>Contact Me</h1>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.handler(w, httptest.NewRequest(http.MethodGet, "/"+tt.name, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestRenderTemplateFailure(t *testing.T) {
	fsys := fstest.MapFS{
		"layout.html":    {Data: []byte(`{{define "layout"}}{{template "content" .}}{{end}}`)},
		"index.html":     {Data: []byte(`{{define "content"}}{{.Missing}}{{end}}`)},
		"post.html":      {Data: []byte(`{{define "content"}}{{end}}`)},
		"make-post.html": {Data: []byte(`{{define "content"}}{{end}}`)},
		"about.html":     {Data: []byte(`{{define "content"}}ok{{end}}`)},
		"contact.html":   {Data: []byte(`{{define "content"}}{{end}}`)},
	}
	templates := loadTemplates(fsys)

	w := httptest.NewRecorder()
	render(w, httptest.NewRequest(http.MethodGet, "/", nil), templates, "index", http.StatusOK, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "{{")

	w = httptest.NewRecorder()
	render(w, httptest.NewRequest(http.MethodGet, "/about", nil), templates, "about", http.StatusOK, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
