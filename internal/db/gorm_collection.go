package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormCollection[T any, PT document[T]] struct {
	db *gorm.DB
}

func newGormCollection[T any, PT document[T]](gdb *gorm.DB) *gormCollection[T, PT] {
	return &gormCollection[T, PT]{db: gdb}
}

func (c *gormCollection[T, PT]) FindAll(ctx context.Context) ([]T, error) {
	var docs []T
	if err := c.db.WithContext(ctx).Order("id asc").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *gormCollection[T, PT]) FindOne(ctx context.Context, field string, value any) (*T, error) {
	var doc T
	err := c.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: field}, Value: value}).
		Order("id asc").
		Take(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (c *gormCollection[T, PT]) Insert(ctx context.Context, doc *T) error {
	batch := []T{*doc}
	if err := prepare[T, PT](batch); err != nil {
		return err
	}
	if err := c.db.WithContext(ctx).Create(&batch[0]).Error; err != nil {
		return translateGormError(err)
	}
	*doc = batch[0]
	return nil
}

// InsertMany writes all documents in a single transaction.
func (c *gormCollection[T, PT]) InsertMany(ctx context.Context, docs []T) error {
	if len(docs) == 0 {
		return nil
	}
	if err := prepare[T, PT](docs); err != nil {
		return err
	}
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&docs).Error
	})
	return translateGormError(err)
}

func (c *gormCollection[T, PT]) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(new(T)).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func translateGormError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
