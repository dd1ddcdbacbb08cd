package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"locgm/internal/models"
	"locgm/internal/repositories"

	"github.com/rs/zerolog"
)

// EventPublisher is the part of the broker client the feed needs.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// FeedService handles the promotional feed.
type FeedService struct {
	repo      repositories.PostRepository
	publisher EventPublisher
	now       func() time.Time
	log       zerolog.Logger
}

// NewFeedService creates a new FeedService. publisher may be nil.
func NewFeedService(repo repositories.PostRepository, publisher EventPublisher, log zerolog.Logger) *FeedService {
	return &FeedService{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
		log:       log,
	}
}

// List returns the feed, newest first.
func (s *FeedService) List() ([]models.Post, error) {
	return s.repo.GetAll()
}

// Publish appends a post by author. Blank content is ignored and yields a nil post.
func (s *FeedService) Publish(author *models.User, content string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}

	post := &models.Post{
		AuthorEmail: author.Email,
		CompanyName: author.DisplayName(),
		Content:     content,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to store post: %w", err)
	}

	if s.publisher != nil {
		body, err := json.Marshal(post)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to marshal post event")
		} else if err := s.publisher.Publish("feed", "post.created", body); err != nil {
			s.log.Warn().Err(err).Uint("post", post.ID).Msg("failed to publish post event")
		}
	}
	return post, nil
}
