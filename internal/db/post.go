package db

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrTitleRequired   = errors.New("post title is required")
	ErrContentRequired = errors.New("content is required")
)

// Post 定义了文章模型
type Post struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id"`
	Title     string    `gorm:"not null" bson:"title"`
	Content   string    `gorm:"type:text;not null" bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
}

// Validate 检查必填字段，未通过校验的文章不会被写入。
func (p *Post) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(p.Content) == "" {
		return ErrContentRequired
	}
	return nil
}

func (p *Post) stamp(id string, now time.Time) {
	if p.ID == "" {
		p.ID = id
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
}
