package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dailyjournal/internal/db"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var errStoreDown = errors.New("store unavailable")

func setupServiceTestStore(t *testing.T) *db.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	store, err := db.NewGormStore(gdb)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		store.Close(context.Background())
	})
	return store
}

// brokenCollection fails every call.
type brokenCollection[T any] struct{}

func (brokenCollection[T]) FindAll(context.Context) ([]T, error) { return nil, errStoreDown }
func (brokenCollection[T]) FindOne(context.Context, string, any) (*T, error) {
	return nil, errStoreDown
}
func (brokenCollection[T]) Insert(context.Context, *T) error      { return errStoreDown }
func (brokenCollection[T]) InsertMany(context.Context, []T) error { return errStoreDown }
func (brokenCollection[T]) Count(context.Context) (int64, error)  { return 0, errStoreDown }
