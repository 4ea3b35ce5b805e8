package repositories

import (
	"context"
	"errors"

	"blogcms/app/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateTitle = errors.New("duplicate post title")
)

// PostRepository defines the interface for post data access.
//
// Create assigns post.ID. Update replaces every field except ID and Date.
// Update and Delete return ErrNotFound for an unknown ID; Create and Update
// return ErrDuplicateTitle when the title is already taken by another post.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int) error
}
