package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dailyjournal/internal/db"
)

var ErrPostNotFound = errors.New("post not found")

// PostService wraps post related store operations.
type PostService struct {
	posts db.Collection[db.Post]
}

// PostInput represents fields accepted when composing a post.
type PostInput struct {
	Title   string
	Content string
}

// NewPostService creates a PostService instance.
func NewPostService(posts db.Collection[db.Post]) *PostService {
	return &PostService{posts: posts}
}

// ListAll returns all posts in the order they were written.
func (s *PostService) ListAll(ctx context.Context) ([]db.Post, error) {
	return s.posts.FindAll(ctx)
}

// Create validates and persists a new post.
func (s *PostService) Create(ctx context.Context, input PostInput) (*db.Post, error) {
	post := db.Post{
		Title:   strings.TrimSpace(input.Title),
		Content: strings.TrimSpace(input.Content),
	}
	if err := s.posts.Insert(ctx, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// FindBySlug scans stored posts and returns the first one whose normalized
// title equals the normalized slug.
func (s *PostService) FindBySlug(ctx context.Context, slug string) (*db.Post, error) {
	wanted := NormalizeTitle(slug)
	if wanted == "" {
		return nil, ErrPostNotFound
	}

	posts, err := s.posts.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if NormalizeTitle(posts[i].Title) == wanted {
			return &posts[i], nil
		}
	}
	return nil, ErrPostNotFound
}
