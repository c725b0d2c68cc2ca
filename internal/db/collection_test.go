package db

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	store, err := NewGormStore(gdb)
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close(context.Background())
	})
	return store
}

func TestInsertAssignsIdentity(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	post := Post{Title: "Hello", Content: "World"}
	require.NoError(t, store.Posts.Insert(ctx, &post))

	assert.NotEmpty(t, post.ID)
	assert.False(t, post.CreatedAt.IsZero())

	found, err := store.Posts.FindOne(ctx, "title", "Hello")
	require.NoError(t, err)
	assert.Equal(t, post.ID, found.ID)
	assert.Equal(t, "World", found.Content)
}

func TestFindAllKeepsInsertionOrder(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	titles := []string{"zeta", "alpha", "mid", "beta"}
	for _, title := range titles {
		require.NoError(t, store.Posts.Insert(ctx, &Post{Title: title, Content: "body"}))
	}

	posts, err := store.Posts.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, posts, len(titles))
	for i, post := range posts {
		assert.Equal(t, titles[i], post.Title)
	}
}

func TestFindOneMissingReturnsErrNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.InfoPages.FindOne(context.Background(), "heading", HeadingAbout)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsertRejectsInvalidDocuments(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		err  error
		run  func() error
	}{
		{
			name: "post without title",
			err:  ErrTitleRequired,
			run:  func() error { return store.Posts.Insert(ctx, &Post{Title: "  ", Content: "body"}) },
		},
		{
			name: "post without content",
			err:  ErrContentRequired,
			run:  func() error { return store.Posts.Insert(ctx, &Post{Title: "title"}) },
		},
		{
			name: "page without heading",
			err:  ErrHeadingRequired,
			run:  func() error { return store.InfoPages.Insert(ctx, &InfoPage{Content: "body"}) },
		},
		{
			name: "page without content",
			err:  ErrContentRequired,
			run:  func() error { return store.InfoPages.Insert(ctx, &InfoPage{Heading: HeadingHome, Content: "\n\t"}) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), tt.err)
		})
	}

	posts, err := store.Posts.Count(ctx)
	require.NoError(t, err)
	pages, err := store.InfoPages.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, posts)
	assert.Zero(t, pages)
}

func TestInsertManyValidatesBeforeWriting(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.InfoPages.InsertMany(ctx, []InfoPage{
		{Heading: HeadingHome, Content: "home"},
		{Heading: "", Content: "about"},
	})
	assert.ErrorIs(t, err, ErrHeadingRequired)

	count, err := store.InfoPages.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDuplicateHeadingIsRejected(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InfoPages.Insert(ctx, &InfoPage{Heading: HeadingHome, Content: "first"}))

	err := store.InfoPages.Insert(ctx, &InfoPage{Heading: HeadingHome, Content: "second"})
	assert.ErrorIs(t, err, ErrDuplicate)

	err = store.InfoPages.InsertMany(ctx, []InfoPage{
		{Heading: HeadingAbout, Content: "about"},
		{Heading: HeadingHome, Content: "again"},
	})
	assert.ErrorIs(t, err, ErrDuplicate)

	count, err := store.InfoPages.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "failed batch must not leave partial writes")
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "postgres"})
	assert.Error(t, err)
}

func TestOpenSQLiteCreatesParentDir(t *testing.T) {
	path := t.TempDir() + "/nested/blog.db"

	store, err := Open(context.Background(), Options{DatabasePath: path, GormLogLevel: logger.Silent})
	require.NoError(t, err)
	defer store.Close(context.Background())

	assert.Equal(t, DriverSQLite, store.Driver())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := OpenMongo(ctx, uri, "blog_test_"+uuid.NewString()[:8])
	require.NoError(t, err)
	defer store.Close(context.Background())

	require.NoError(t, store.InfoPages.Insert(ctx, &InfoPage{Heading: HeadingHome, Content: "home"}))
	assert.ErrorIs(t, store.InfoPages.Insert(ctx, &InfoPage{Heading: HeadingHome, Content: "dup"}), ErrDuplicate)

	require.NoError(t, store.Posts.InsertMany(ctx, []Post{
		{Title: "first", Content: "a"},
		{Title: "second", Content: "b"},
	}))
	posts, err := store.Posts.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "first", posts[0].Title)

	_, err = store.Posts.FindOne(ctx, "title", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
