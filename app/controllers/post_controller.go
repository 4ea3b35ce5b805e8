package controllers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"blogcms/app/logs"
	"blogcms/app/models"
	"blogcms/app/services"

	"github.com/gorilla/mux"
)

// Fixed response messages.
const (
	msgNotFound       = "ID Not Found in Database."
	msgCreateConflict = "Cafe with that name already exists."
	msgCreateFailed   = "An error occurred while adding the cafe."
	msgUpdateConflict = "Blog post with that title already exists."
	msgUpdateFailed   = "An error occurred while updating the blog post."
	msgListFailed     = "An error occurred while loading the blog posts."
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
	templates   map[string]*template.Template
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{
		postService: postService,
		templates:   defaultTemplates,
	}
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		logs.Error("list posts failed", err, requestFields(r, nil))
		sendError(w, r, msgListFailed, http.StatusInternalServerError)
		return
	}

	if wantsJSON(r) {
		sendJSON(w, http.StatusOK, posts)
		return
	}
	render(w, r, pc.templates, "index", http.StatusOK, &pageData{Posts: posts})
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, ok := pc.loadPost(w, r)
	if !ok {
		return
	}

	if wantsJSON(r) {
		sendJSON(w, http.StatusOK, post)
		return
	}
	render(w, r, pc.templates, "post", http.StatusOK, &pageData{Post: post})
}

// New displays the form for creating a new post
func (pc *PostController) New(w http.ResponseWriter, r *http.Request) {
	render(w, r, pc.templates, "make-post", http.StatusOK, &pageData{Form: &models.PostForm{}})
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	form, ok := parsePostForm(w, r)
	if !ok {
		return
	}

	post, err := pc.postService.CreatePost(r.Context(), form)
	var verr *services.ValidationError
	switch {
	case err == nil:
		logs.Info("post created", requestFields(r, map[string]interface{}{"post_id": post.ID}))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.As(err, &verr):
		render(w, r, pc.templates, "make-post", http.StatusUnprocessableEntity, &pageData{Form: form, Errors: verr.Fields})
	case errors.Is(err, services.ErrConflict):
		sendJSONError(w, http.StatusConflict, msgCreateConflict)
	default:
		logs.Error("create post failed", err, requestFields(r, nil))
		sendJSONError(w, http.StatusInternalServerError, msgCreateFailed)
	}
}

// Edit displays the edit form pre-filled with the stored post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	post, ok := pc.loadPost(w, r)
	if !ok {
		return
	}
	render(w, r, pc.templates, "make-post", http.StatusOK, &pageData{
		Post:   post,
		Form:   models.NewPostForm(post),
		IsEdit: true,
	})
}

// Update handles the submitted edit form
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}
	form, ok := parsePostForm(w, r)
	if !ok {
		return
	}

	post, err := pc.postService.UpdatePost(r.Context(), id, form)
	var verr *services.ValidationError
	switch {
	case err == nil:
		logs.Info("post updated", requestFields(r, map[string]interface{}{"post_id": post.ID}))
		http.Redirect(w, r, "/post/"+strconv.Itoa(post.ID), http.StatusSeeOther)
	case errors.Is(err, services.ErrNotFound):
		sendError(w, r, msgNotFound, http.StatusNotFound)
	case errors.As(err, &verr):
		render(w, r, pc.templates, "make-post", http.StatusUnprocessableEntity, &pageData{
			Post:   &models.Post{ID: id},
			Form:   form,
			Errors: verr.Fields,
			IsEdit: true,
		})
	case errors.Is(err, services.ErrConflict):
		sendJSONError(w, http.StatusConflict, msgUpdateConflict)
	default:
		logs.Error("update post failed", err, requestFields(r, map[string]interface{}{"post_id": id}))
		sendJSONError(w, http.StatusInternalServerError, msgUpdateFailed)
	}
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	err := pc.postService.DeletePost(r.Context(), id)
	switch {
	case err == nil:
		logs.Info("post deleted", requestFields(r, map[string]interface{}{"post_id": id}))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, services.ErrNotFound):
		sendError(w, r, msgNotFound, http.StatusNotFound)
	default:
		logs.Error("delete post failed", err, requestFields(r, map[string]interface{}{"post_id": id}))
		sendError(w, r, "Failed to delete post", http.StatusInternalServerError)
	}
}

// loadPost fetches the post named by the {id} path variable, answering 404
// or 500 itself when it cannot.
func (pc *PostController) loadPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, ok := postID(w, r)
	if !ok {
		return nil, false
	}

	post, err := pc.postService.GetPost(r.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		sendError(w, r, msgNotFound, http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		logs.Error("get post failed", err, requestFields(r, map[string]interface{}{"post_id": id}))
		sendError(w, r, "Failed to fetch post", http.StatusInternalServerError)
		return nil, false
	}
	return post, true
}

// postID parses the {id} path variable. An ID that does not fit an int can
// never have been assigned, so it is reported as not found.
func postID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id < 1 {
		sendError(w, r, msgNotFound, http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func parsePostForm(w http.ResponseWriter, r *http.Request) (*models.PostForm, bool) {
	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return &models.PostForm{
		Title:    r.PostFormValue("title"),
		Subtitle: r.PostFormValue("subtitle"),
		Author:   r.PostFormValue("author"),
		ImageURL: r.PostFormValue("img_url"),
		Body:     r.PostFormValue("body"),
	}, true
}
