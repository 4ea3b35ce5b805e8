package database

import (
	"path/filepath"
	"testing"

	"blogcms/app/config"
	"blogcms/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteCreatesTable(t *testing.T) {
	cfg := &config.Config{
		DBDriver:    config.DriverSQLite,
		DatabaseURL: filepath.Join(t.TempDir(), "posts.db"),
	}

	db, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	assert.True(t, db.Migrator().HasTable(&models.Post{}))
	assert.True(t, db.Migrator().HasTable("blog_post"))
	assert.True(t, db.Migrator().HasColumn(&models.Post{}, "img_url"))

	// Opening again must leave the existing table in place.
	require.NoError(t, db.Create(&models.Post{Title: "kept", Subtitle: "s", Date: "d", Body: "b", Author: "a", ImageURL: "http://x"}).Error)
	again, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { Close(again) })

	var count int64
	require.NoError(t, again.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestOpenRejectsBadger(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: config.DriverBadger, BadgerPath: t.TempDir()})
	assert.Error(t, err)
}
