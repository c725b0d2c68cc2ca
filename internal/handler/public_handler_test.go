package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/dailyjournal/internal/db"
	"github.com/dailyjournal/internal/handler"
	"github.com/dailyjournal/internal/logging"
	"github.com/dailyjournal/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ginOnce sync.Once

func setupPublicTest(t *testing.T) (*db.Store, http.Handler) {
	t.Helper()

	ginOnce.Do(func() {
		gin.SetMode(gin.TestMode)
	})

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
		t.Fatalf("failed to migrate database: %v", err)
	}
	t.Cleanup(func() {
		store.Close(context.Background())
	})

	log := logging.NewDiscardLogger()
	r, err := router.SetupRouter(handler.NewAPI(store, nil, log), router.Options{
		SessionSecret: "test-secret",
		Logger:        log,
	})
	if err != nil {
		t.Fatalf("failed to set up router: %v", err)
	}
	return store, r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestShowHomeWithoutSeedStillRenders(t *testing.T) {
	store, r := setupPublicTest(t)

	if err := store.Posts.Insert(context.Background(), &db.Post{Title: "Only Post", Content: "body"}); err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}

	w := get(r, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Only Post") || !strings.Contains(body, `href="/posts/only-post"`) {
		t.Fatalf("expected post card with slug link, got %s", body)
	}
}

func TestShowHomeTruncatesLongPosts(t *testing.T) {
	store, r := setupPublicTest(t)

	long := strings.Repeat("word ", 40) + "TAILMARKER"
	if err := store.Posts.Insert(context.Background(), &db.Post{Title: "Long", Content: long}); err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}

	body := get(r, "/").Body.String()
	if strings.Contains(body, "TAILMARKER") {
		t.Fatal("expected home excerpt to be truncated")
	}
	if !strings.Contains(body, "Read More") {
		t.Fatal("expected read more link")
	}
}

func TestInfoPagesMissingReturn404(t *testing.T) {
	_, r := setupPublicTest(t)

	for _, path := range []string{"/about", "/contact"} {
		if w := get(r, path); w.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, w.Code)
		}
	}
}

func TestShowAboutAndContact(t *testing.T) {
	store, r := setupPublicTest(t)

	err := store.InfoPages.InsertMany(context.Background(), []db.InfoPage{
		{Heading: db.HeadingAbout, Content: "We write things."},
		{Heading: db.HeadingContact, Content: "Mail us."},
	})
	if err != nil {
		t.Fatalf("failed to seed pages: %v", err)
	}

	if body := get(r, "/about").Body.String(); !strings.Contains(body, "We write things.") {
		t.Fatalf("about page missing content: %s", body)
	}
	if body := get(r, "/contact").Body.String(); !strings.Contains(body, "Mail us.") {
		t.Fatalf("contact page missing content: %s", body)
	}
}

func TestShowPostMatchesNormalizedSlug(t *testing.T) {
	store, r := setupPublicTest(t)

	if err := store.Posts.Insert(context.Background(), &db.Post{Title: "Hello World", Content: "Some **markdown**"}); err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}

	for _, path := range []string{"/posts/hello%20world", "/posts/Hello-World", "/posts/hello_world", "/posts/helloWorld"} {
		w := get(r, path)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), "<strong>markdown</strong>") {
			t.Fatalf("%s: expected rendered markdown body", path)
		}
	}
}

func TestShowPostMissReturns404(t *testing.T) {
	store, r := setupPublicTest(t)

	if err := store.Posts.Insert(context.Background(), &db.Post{Title: "Hello World", Content: "body"}); err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}

	w := get(r, "/posts/goodbye-world")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Post not found") {
		t.Fatal("expected not found page")
	}
}

func TestStoreFailureRenders500(t *testing.T) {
	store, r := setupPublicTest(t)

	if err := store.Close(context.Background()); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	for _, path := range []string{"/", "/about", "/posts/anything"} {
		if w := get(r, path); w.Code != http.StatusInternalServerError {
			t.Fatalf("%s: expected 500, got %d", path, w.Code)
		}
	}
	w := postForm(r, "/compose", url.Values{"postTitle": {"A"}, "postBody": {"B"}})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("compose: expected 500, got %d", w.Code)
	}
}
