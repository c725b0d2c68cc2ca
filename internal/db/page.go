package db

import (
	"errors"
	"strings"
	"time"
)

// Headings of the informational pages created by the seeder.
const (
	HeadingHome    = "Home"
	HeadingAbout   = "About"
	HeadingContact = "Contact"
)

var ErrHeadingRequired = errors.New("page heading is required")

// InfoPage represents a standalone informational page such as About.
// Heading is unique so lookups by heading are unambiguous.
type InfoPage struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id"`
	Heading   string    `gorm:"size:100;uniqueIndex;not null" bson:"heading"`
	Content   string    `gorm:"type:text;not null" bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
}

// Validate reports the first missing required field.
func (p *InfoPage) Validate() error {
	if strings.TrimSpace(p.Heading) == "" {
		return ErrHeadingRequired
	}
	if strings.TrimSpace(p.Content) == "" {
		return ErrContentRequired
	}
	return nil
}

func (p *InfoPage) stamp(id string, now time.Time) {
	if p.ID == "" {
		p.ID = id
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
}
