package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"blogcms/app/config"
	"blogcms/app/database"
	"blogcms/app/logs"
	"blogcms/app/models"
	"blogcms/app/repositories"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// drivers lists the storage backends every routed test runs against.
var drivers = []string{config.DriverSQLite, config.DriverBadger}

func quietLogs(t *testing.T) {
	logs.SetOutput(&strings.Builder{})
	t.Cleanup(func() { logs.SetOutput(os.Stdout) })
}

func setupTestRepo(t *testing.T, driver string) repositories.PostRepository {
	switch driver {
	case config.DriverBadger:
		store, err := repositories.NewRepository("")
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
		return store.Posts()
	default:
		db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "posts.db")), database.Config())
		require.NoError(t, err)
		require.NoError(t, database.Migrate(db))
		t.Cleanup(func() { database.Close(db) })
		return repositories.NewGormPostRepository(db)
	}
}

func setupTestRouter(t *testing.T, driver string, cfg *config.Config) *mux.Router {
	quietLogs(t)
	if cfg == nil {
		cfg = &config.Config{}
	}
	router, err := SetupRoutes(cfg, setupTestRepo(t, driver))
	require.NoError(t, err)
	return router
}

func helloValues() url.Values {
	return url.Values{
		"title":    {"Hello"},
		"subtitle": {"World"},
		"author":   {"A"},
		"img_url":  {"http://x/y.png"},
		"body":     {"<p>hi</p>"},
	}
}

func postForm(router http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func listPosts(t *testing.T, router http.Handler) []*models.Post {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var posts []*models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	return posts
}

// createPost submits the new-post form and returns the stored post.
func createPost(t *testing.T, router http.Handler, values url.Values) *models.Post {
	w := postForm(router, "/new-post", values)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())

	for _, p := range listPosts(t, router) {
		if p.Title == values.Get("title") {
			return p
		}
	}
	t.Fatalf("post %q not found after create", values.Get("title"))
	return nil
}
