package service

import (
	"context"
	"errors"

	"github.com/dailyjournal/internal/db"
)

var ErrPageNotFound = errors.New("page not found")

// PageService provides access to informational pages such as About.
type PageService struct {
	pages db.Collection[db.InfoPage]
}

// NewPageService returns a new PageService instance.
func NewPageService(pages db.Collection[db.InfoPage]) *PageService {
	return &PageService{pages: pages}
}

// GetByHeading fetches the page for a given heading.
func (s *PageService) GetByHeading(ctx context.Context, heading string) (*db.InfoPage, error) {
	page, err := s.pages.FindOne(ctx, "heading", heading)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return page, nil
}
