package repositories

import (
	"sync"
	"time"

	"locgm/internal/models"
)

// MemoryPostRepository is an in-memory implementation of PostRepository.
type MemoryPostRepository struct {
	posts []models.Post
	mu    sync.RWMutex
}

// NewMemoryPostRepository creates a new instance of MemoryPostRepository.
func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{}
}

// Create appends a post to the feed.
func (r *MemoryPostRepository) Create(post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post.ID = uint(len(r.posts) + 1)
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	r.posts = append(r.posts, *post)
	return nil
}

// GetAll returns the feed in reverse insertion order.
func (r *MemoryPostRepository) GetAll() ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	postList := make([]models.Post, 0, len(r.posts))
	for i := len(r.posts) - 1; i >= 0; i-- {
		postList = append(postList, r.posts[i])
	}
	return postList, nil
}
