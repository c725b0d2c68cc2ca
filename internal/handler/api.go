package handler

import (
	"log/slog"
	"time"

	"github.com/dailyjournal/internal/db"
	"github.com/dailyjournal/internal/logging"
	"github.com/dailyjournal/internal/metrics"
	"github.com/dailyjournal/internal/service"
	"github.com/gin-gonic/gin"
)

const defaultSiteName = "Daily Journal"

// API bundles shared dependencies for HTTP handlers.
type API struct {
	store    *db.Store
	posts    *service.PostService
	pages    *service.PageService
	metrics  *metrics.Metrics
	logger   *slog.Logger
	siteName string
}

// NewAPI constructs a handler set over an opened store. m may be nil.
func NewAPI(store *db.Store, m *metrics.Metrics, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		store:    store,
		posts:    service.NewPostService(store.Posts),
		pages:    service.NewPageService(store.InfoPages),
		metrics:  m,
		logger:   logger,
		siteName: defaultSiteName,
	}
}

func (a *API) log(c *gin.Context) *slog.Logger {
	return logging.FromContext(c, a.logger)
}

// renderHTML 在向模板渲染时自动附加站点名称与年份。
func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}
	if _, exists := payload["siteName"]; !exists {
		payload["siteName"] = a.siteName
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = time.Now().Year()
	}

	c.HTML(status, template, payload)
}
