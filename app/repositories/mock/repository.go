package mock

import (
	"context"
	"sort"
	"sync"

	"blogcms/app/models"
	"blogcms/app/repositories"
)

// PostRepository is an in-memory repositories.PostRepository. Err, when set,
// is returned by every write instead of touching the data.
type PostRepository struct {
	posts  map[int]*models.Post
	nextID int
	mutex  sync.RWMutex

	Err error
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int]*models.Post),
		nextID: 1,
	}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = make(map[int]*models.Post)
	m.nextID = 1
}

func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if m.titleTaken(post.Title, 0) {
		return repositories.ErrDuplicateTitle
	}
	post.ID = m.nextID
	m.nextID++
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *PostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	out := *post
	return &out, nil
}

func (m *PostRepository) List(ctx context.Context) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := make([]*models.Post, 0, len(m.posts))
	for _, post := range m.posts {
		out := *post
		posts = append(posts, &out)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID < posts[j].ID
	})
	return posts, nil
}

func (m *PostRepository) Update(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	existing, exists := m.posts[post.ID]
	if !exists {
		return repositories.ErrNotFound
	}
	if m.titleTaken(post.Title, post.ID) {
		return repositories.ErrDuplicateTitle
	}
	stored := *post
	stored.Date = existing.Date
	m.posts[post.ID] = &stored
	return nil
}

func (m *PostRepository) Delete(ctx context.Context, id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *PostRepository) titleTaken(title string, owner int) bool {
	for id, post := range m.posts {
		if post.Title == title && id != owner {
			return true
		}
	}
	return false
}
