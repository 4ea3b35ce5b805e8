package controllers

import (
	"bytes"
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"blogcms/app/logs"
	"blogcms/app/middleware"
	"blogcms/app/models"
	"blogcms/app/views"

	"github.com/gorilla/csrf"
)

// pageData is the value every page template is executed with.
type pageData struct {
	Posts     []*models.Post
	Post      *models.Post
	Form      *models.PostForm
	Errors    map[string]string
	IsEdit    bool
	CSRFField template.HTML
	Year      int
}

var templateFuncs = template.FuncMap{
	// safe marks post bodies as trusted HTML; they are sanitized before storage.
	"safe": func(s string) template.HTML {
		return template.HTML(s)
	},
}

// pages lists the page templates rendered inside layout.html.
var pages = []string{"index", "post", "make-post", "about", "contact"}

// loadTemplates parses layout.html together with each page
func loadTemplates(fsys fs.FS) map[string]*template.Template {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		templates[page] = template.Must(template.New(page).Funcs(templateFuncs).ParseFS(fsys,
			"layout.html",
			page+".html",
		))
	}
	return templates
}

var defaultTemplates = loadTemplates(views.FS)

// render executes a page into a buffer so a template failure never leaves a
// half written response.
func render(w http.ResponseWriter, r *http.Request, templates map[string]*template.Template, page string, status int, data *pageData) {
	if data == nil {
		data = &pageData{}
	}
	data.CSRFField = csrf.TemplateField(r)
	data.Year = time.Now().Year()

	var buf bytes.Buffer
	if err := templates[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		logs.Error("template error", err, requestFields(r, map[string]interface{}{"page": page}))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// Helper methods for consistent response handling

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendJSONError(w http.ResponseWriter, status int, message string) {
	sendJSON(w, status, map[string]string{"error": message})
}

// sendError answers in JSON when the client asked for it and in plain text
// otherwise.
func sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if wantsJSON(r) {
		sendJSONError(w, status, message)
		return
	}
	http.Error(w, message, status)
}

func requestFields(r *http.Request, extra map[string]interface{}) map[string]interface{} {
	fields := map[string]interface{}{
		"method":     r.Method,
		"path":       r.URL.Path,
		"request_id": middleware.RequestIDFromContext(r.Context()),
	}
	for k, v := range extra {
		fields[k] = v
	}
	return fields
}
