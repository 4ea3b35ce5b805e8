package controllers

import (
	"html/template"
	"net/http"
)

// PageController serves the fixed informational pages.
type PageController struct {
	templates map[string]*template.Template
}

func NewPageController() *PageController {
	return &PageController{templates: defaultTemplates}
}

func (pc *PageController) About(w http.ResponseWriter, r *http.Request) {
	render(w, r, pc.templates, "about", http.StatusOK, nil)
}

func (pc *PageController) Contact(w http.ResponseWriter, r *http.Request) {
	render(w, r, pc.templates, "contact", http.StatusOK, nil)
}
