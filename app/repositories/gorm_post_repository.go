package repositories

import (
	"context"
	"errors"

	"blogcms/app/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// pgUniqueViolation is the SQLSTATE postgres reports for a unique index hit.
const pgUniqueViolation = "23505"

// GormPostRepository implements PostRepository on a relational database
// through gorm. Every call runs in its own session bound to ctx.
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// Create inserts post and sets its ID.
func (r *GormPostRepository) Create(ctx context.Context, post *models.Post) error {
	return translateError(r.db.WithContext(ctx).Create(post).Error)
}

// GetByID retrieves a post by ID
func (r *GormPostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &post, nil
}

// List retrieves every post in storage order
func (r *GormPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	posts := []*models.Post{}
	if err := r.db.WithContext(ctx).Find(&posts).Error; err != nil {
		return nil, translateError(err)
	}
	return posts, nil
}

// Update overwrites the editable columns of an existing post inside a
// transaction; any failure rolls it back.
func (r *GormPostRepository) Update(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).
			Where("id = ?", post.ID).
			Updates(map[string]interface{}{
				"title":    post.Title,
				"subtitle": post.Subtitle,
				"author":   post.Author,
				"img_url":  post.ImageURL,
				"body":     post.Body,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	return translateError(err)
}

// Delete deletes a post by ID
func (r *GormPostRepository) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// translateError maps driver errors onto the repository sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isUniqueViolation(err):
		return ErrDuplicateTitle
	default:
		return err
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}
