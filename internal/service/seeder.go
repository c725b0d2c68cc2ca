package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dailyjournal/internal/db"
	"gopkg.in/yaml.v3"
)

const placeholderContent = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat. Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum."

// SeedResult reports what a seeding run wrote.
type SeedResult struct {
	Inserted int
}

// Seeder populates the informational pages on first start.
type Seeder struct {
	pages    db.Collection[db.InfoPage]
	defaults []db.InfoPage
	logger   *slog.Logger
}

// NewSeeder returns a Seeder writing defaults (DefaultInfoPages when empty).
func NewSeeder(pages db.Collection[db.InfoPage], defaults []db.InfoPage, logger *slog.Logger) *Seeder {
	if len(defaults) == 0 {
		defaults = DefaultInfoPages()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{pages: pages, defaults: defaults, logger: logger}
}

// DefaultInfoPages returns the Home, About and Contact pages with placeholder content.
func DefaultInfoPages() []db.InfoPage {
	return []db.InfoPage{
		{Heading: db.HeadingHome, Content: placeholderContent},
		{Heading: db.HeadingAbout, Content: placeholderContent},
		{Heading: db.HeadingContact, Content: placeholderContent},
	}
}

// Seed inserts the default pages when the collection is empty and does
// nothing otherwise. Losing a race against another seeder is not an error.
func (s *Seeder) Seed(ctx context.Context) (SeedResult, error) {
	count, err := s.pages.Count(ctx)
	if err != nil {
		return SeedResult{}, fmt.Errorf("count info pages: %w", err)
	}
	if count > 0 {
		s.logger.Debug("info pages already present, skipping seed", "count", count)
		return SeedResult{}, nil
	}

	pages := make([]db.InfoPage, len(s.defaults))
	copy(pages, s.defaults)

	if err := s.pages.InsertMany(ctx, pages); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			s.logger.Warn("info pages seeded by another instance", "error", err)
			return SeedResult{}, nil
		}
		return SeedResult{}, fmt.Errorf("insert default info pages: %w", err)
	}

	s.logger.Info("default info pages inserted", "count", len(pages))
	return SeedResult{Inserted: len(pages)}, nil
}

type seedFile struct {
	Pages []struct {
		Heading string `yaml:"heading"`
		Content string `yaml:"content"`
	} `yaml:"pages"`
}

// LoadSeedFile reads replacement seed content from a YAML file of the form
//
//	pages:
//	  - heading: Home
//	    content: ...
//
// An empty path yields DefaultInfoPages.
func LoadSeedFile(path string) ([]db.InfoPage, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultInfoPages(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var parsed seedFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	if len(parsed.Pages) == 0 {
		return nil, fmt.Errorf("seed file %s defines no pages", path)
	}

	pages := make([]db.InfoPage, 0, len(parsed.Pages))
	for _, p := range parsed.Pages {
		page := db.InfoPage{Heading: strings.TrimSpace(p.Heading), Content: strings.TrimSpace(p.Content)}
		if err := page.Validate(); err != nil {
			return nil, fmt.Errorf("seed file %s: %w", path, err)
		}
		pages = append(pages, page)
	}
	return pages, nil
}
