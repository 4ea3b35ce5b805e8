package repositories

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// Repository owns a Badger database and hands out repositories bound to it.
type Repository struct {
	db    *badger.DB
	mutex sync.Mutex
}

// NewRepository opens (or creates) the Badger database at path. An empty path
// opens a throwaway in-memory database.
func NewRepository(path string) (*Repository, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	} else if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %v", err)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

// Posts returns a post repository backed by this database.
func (r *Repository) Posts() *BadgerPostRepository {
	return NewBadgerPostRepository(r.db)
}

// Backup writes a full backup of the database to w.
func (r *Repository) Backup(w io.Writer) error {
	_, err := r.db.Backup(w, 0)
	return err
}

// Restore loads a backup produced by Backup.
func (r *Repository) Restore(rd io.Reader) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic occurred during restore: %v", p)
		}
	}()
	return r.db.Load(rd, 4)
}

// Clear drops every key.
func (r *Repository) Clear() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.db.DropAll()
}

func (r *Repository) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.db.Close()
}
