package service

import (
	"errors"
	"fmt"
	"os"

	"blogcms/app/config"
	"blogcms/app/database"
	"blogcms/app/repositories"

	"gorm.io/gorm"
)

// loadConfig is a variable to allow testing with a different configuration
var loadConfig = config.LoadConfig

// store is an open post store together with the handle that owns it.
type store struct {
	posts  repositories.PostRepository
	db     *gorm.DB
	badger *repositories.Repository
}

// openStore opens the storage backend selected by cfg.DBDriver, creating the
// table or directory when it does not exist yet.
func openStore(cfg *config.Config) (*store, error) {
	if cfg.DBDriver == config.DriverBadger {
		repo, err := repositories.NewRepository(cfg.BadgerPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open badger database: %w", err)
		}
		return &store{posts: repo.Posts(), badger: repo}, nil
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	return &store{posts: repositories.NewGormPostRepository(db), db: db}, nil
}

func (s *store) Close() error {
	if s.badger != nil {
		return s.badger.Close()
	}
	return database.Close(s.db)
}

// storePath is the file or directory holding the embedded database, or ""
// for a database server.
func storePath(cfg *config.Config) string {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		return cfg.DatabaseURL
	case config.DriverBadger:
		return cfg.BadgerPath
	}
	return ""
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// removeStore deletes an embedded database from disk, including the sqlite
// journal files.
func removeStore(cfg *config.Config) error {
	path := storePath(cfg)
	if cfg.DBDriver == config.DriverBadger {
		return os.RemoveAll(path)
	}
	return removeSQLite(path)
}

func removeSQLite(path string) error {
	for _, p := range []string{path, path + "-wal", path + "-shm", path + "-journal"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
