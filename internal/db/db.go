package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported store drivers.
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

const (
	postsCollection     = "posts"
	infoPagesCollection = "info_pages"
)

// Options selects and configures the store backend.
type Options struct {
	Driver       string
	DatabasePath string
	MongoURI     string
	DatabaseName string
	// GormLogLevel applies to the sqlite backend only.
	GormLogLevel logger.LogLevel
}

// Store bundles the two content collections behind one connection.
type Store struct {
	Posts     Collection[Post]
	InfoPages Collection[InfoPage]

	driver string
	ping   func(ctx context.Context) error
	close  func(ctx context.Context) error
}

// Driver reports which backend the store runs on.
func (s *Store) Driver() string {
	return s.driver
}

// Ping checks that the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	return s.close(ctx)
}

// Open connects to the configured backend and prepares both collections.
// An unset driver picks mongo when a URI is present, sqlite otherwise.
func Open(ctx context.Context, opts Options) (*Store, error) {
	driver := strings.ToLower(strings.TrimSpace(opts.Driver))
	if driver == "" {
		driver = DriverSQLite
		if strings.TrimSpace(opts.MongoURI) != "" {
			driver = DriverMongo
		}
	}

	switch driver {
	case DriverSQLite:
		return OpenSQLite(ctx, opts.DatabasePath, opts.GormLogLevel)
	case DriverMongo:
		return OpenMongo(ctx, opts.MongoURI, opts.DatabaseName)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", opts.Driver)
	}
}

// OpenSQLite opens the sqlite file at path, falling back to blog.db.
func OpenSQLite(ctx context.Context, databasePath string, level logger.LogLevel) (*Store, error) {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "blog.db"
	}

	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	if level == 0 {
		level = logger.Warn
	}
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	store, err := NewGormStore(gdb)
	if err != nil {
		return nil, err
	}
	if err := store.Ping(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// NewGormStore migrates the content tables on an existing gorm handle.
func NewGormStore(gdb *gorm.DB) (*Store, error) {
	// 自动迁移模式，为内容模型创建表
	if err := gdb.AutoMigrate(&Post{}, &InfoPage{}); err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}

	return &Store{
		Posts:     newGormCollection[Post](gdb),
		InfoPages: newGormCollection[InfoPage](gdb),
		driver:    DriverSQLite,
		ping:      sqlDB.PingContext,
		close: func(context.Context) error {
			return sqlDB.Close()
		},
	}, nil
}

// OpenMongo connects to uri and uses the named database.
func OpenMongo(ctx context.Context, uri, databaseName string) (*Store, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, errors.New("mongo uri is required")
	}
	name := strings.TrimSpace(databaseName)
	if name == "" {
		name = "blogsdb"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	database := client.Database(name)
	pages := database.Collection(infoPagesCollection)
	if _, err := pages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "heading", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &Store{
		Posts:     newMongoCollection[Post](database.Collection(postsCollection)),
		InfoPages: newMongoCollection[InfoPage](pages),
		driver:    DriverMongo,
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		close: client.Disconnect,
	}, nil
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") || path == ":memory:" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
