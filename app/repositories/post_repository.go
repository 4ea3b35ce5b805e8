package repositories

import (
	"context"
	"fmt"

	"blogcms/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB. Each post is
// stored as JSON under post:<id>; title:<title> holds the owning ID and makes
// the uniqueness check part of the write transaction.
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post
func (r *BadgerPostRepository) Create(ctx context.Context, post *models.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if err := checkTitleFree(txn, post.Title, 0); err != nil {
			return err
		}

		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}

		stored := *post
		stored.ID = id
		data, err := marshalEntity(&stored)
		if err != nil {
			return err
		}
		if err := txn.Set(postKey(id), data); err != nil {
			return err
		}
		if err := txn.Set(titleKey(post.Title), encodeID(id)); err != nil {
			return err
		}
		post.ID = id
		return nil
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var post *models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		post, err = getPost(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// List retrieves every post in key order
func (r *BadgerPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	posts := []*models.Post{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %v", err)
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Update updates an existing post. The stored creation date is kept.
func (r *BadgerPostRepository) Update(ctx context.Context, post *models.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		existing, err := getPost(txn, post.ID)
		if err != nil {
			return err
		}

		if existing.Title != post.Title {
			if err := checkTitleFree(txn, post.Title, post.ID); err != nil {
				return err
			}
			if err := txn.Delete(titleKey(existing.Title)); err != nil {
				return err
			}
			if err := txn.Set(titleKey(post.Title), encodeID(post.ID)); err != nil {
				return err
			}
		}

		updated := *post
		updated.Date = existing.Date
		data, err := marshalEntity(&updated)
		if err != nil {
			return err
		}
		return txn.Set(postKey(post.ID), data)
	})
}

// Delete deletes a post by ID
func (r *BadgerPostRepository) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		existing, err := getPost(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(titleKey(existing.Title)); err != nil {
			return err
		}
		return txn.Delete(postKey(id))
	})
}

func getPost(txn *badger.Txn, id int) (*models.Post, error) {
	item, err := txn.Get(postKey(id))
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var post models.Post
	if err := item.Value(func(val []byte) error {
		return unmarshalEntity(val, &post)
	}); err != nil {
		return nil, err
	}
	return &post, nil
}

// checkTitleFree returns ErrDuplicateTitle when title belongs to a post
// other than owner. Pass owner 0 for a new post.
func checkTitleFree(txn *badger.Txn, title string, owner int) error {
	item, err := txn.Get(titleKey(title))
	if err == badger.ErrKeyNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	var id int
	if err := item.Value(func(val []byte) error {
		id, err = decodeID(val)
		return err
	}); err != nil {
		return err
	}
	if id != owner {
		return ErrDuplicateTitle
	}
	return nil
}
