package services

import (
	"context"
	"errors"
	"time"

	"blogcms/app/models"
	"blogcms/app/repositories"

	"github.com/microcosm-cc/bluemonday"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo repositories.PostRepository
	policy   *bluemonday.Policy
	now      func() time.Time
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		policy:   bluemonday.UGCPolicy(),
		now:      time.Now,
	}
}

// SetClock replaces the time source used to date new posts.
func (s *PostService) SetClock(now func() time.Time) {
	s.now = now
}

// ListPosts returns every post in storage order.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, classify("list posts", err)
	}
	return posts, nil
}

// GetPost retrieves a post by ID.
func (s *PostService) GetPost(ctx context.Context, id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, classify("get post", err)
	}
	return post, nil
}

// CreatePost validates the form, dates and sanitizes the post, and stores it.
func (s *PostService) CreatePost(ctx context.Context, form *models.PostForm) (*models.Post, error) {
	if err := s.prepare(form); err != nil {
		return nil, err
	}

	post := &models.Post{}
	post.Apply(form)
	post.SetCreated(s.now())

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, classify("create post", err)
	}
	return post, nil
}

// UpdatePost replaces the editable fields of post id with the form values.
// The creation date is never touched.
func (s *PostService) UpdatePost(ctx context.Context, id int, form *models.PostForm) (*models.Post, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.prepare(form); err != nil {
		return nil, err
	}

	post.Apply(form)
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, classify("update post", err)
	}
	return post, nil
}

// DeletePost removes a post for good.
func (s *PostService) DeletePost(ctx context.Context, id int) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return classify("delete post", err)
	}
	return nil
}

// prepare normalizes and validates form, then sanitizes its body in place.
func (s *PostService) prepare(form *models.PostForm) error {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return newValidationError(err)
	}
	form.Body = s.policy.Sanitize(form.Body)
	if form.Body == "" {
		return &ValidationError{Fields: map[string]string{"Body": "Blog Content is required."}}
	}
	return nil
}

func classify(op string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repositories.ErrDuplicateTitle):
		return ErrConflict
	default:
		return &InternalError{Op: op, Err: err}
	}
}
