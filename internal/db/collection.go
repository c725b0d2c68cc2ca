package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("document violates a unique constraint")
)

// Collection is the document-collection contract shared by every backend.
// FindAll and FindOne return documents in insertion order.
type Collection[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
	// FindOne returns the first document whose field equals value, or ErrNotFound.
	FindOne(ctx context.Context, field string, value any) (*T, error)
	Insert(ctx context.Context, doc *T) error
	InsertMany(ctx context.Context, docs []T) error
	Count(ctx context.Context) (int64, error)
}

// document is implemented by the pointer types of the stored models.
type document[T any] interface {
	*T
	Validate() error
	stamp(id string, now time.Time)
}

// prepare validates and stamps a batch before anything is written.
func prepare[T any, PT document[T]](docs []T) error {
	for i := range docs {
		if err := PT(&docs[i]).Validate(); err != nil {
			return err
		}
	}
	now := time.Now().UTC()
	for i := range docs {
		id, err := newID()
		if err != nil {
			return err
		}
		PT(&docs[i]).stamp(id, now)
	}
	return nil
}

// newID returns a time-ordered identifier, so sorting by id preserves insertion order.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
