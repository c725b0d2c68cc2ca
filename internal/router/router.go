package router

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/dailyjournal/internal/handler"
	"github.com/dailyjournal/internal/logging"
	"github.com/dailyjournal/internal/metrics"
	"github.com/dailyjournal/web"
	"github.com/gin-contrib/secure"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionName = "journal_session"

// Options carries the router's dependencies besides the handlers.
type Options struct {
	SessionSecret string
	// SecureSSL enables the HTTPS redirect and HSTS. Leave it off behind a TLS-terminating proxy.
	SecureSSL bool
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
}

// LoadTemplates parses the embedded page templates.
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"formatDate": formatDate,
	}).ParseFS(web.Templates, "template/*.html")
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, opts Options) (*gin.Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	secureConfig := secure.Config{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
	}
	if opts.SecureSSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}

	r.Use(
		logging.RequestID(),
		logging.AccessLog(logger),
		logging.Recovery(logger),
		secure.New(secureConfig),
	)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}

	// 静态文件服务
	r.StaticFS("/static", http.FS(web.Static()))

	r.GET("/healthz", api.Healthz)
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	// 页面路由，仅这些路由需要会话（闪存消息）
	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   opts.SecureSSL,
	})
	pages := r.Group("", sessions.Sessions(sessionName, store))
	{
		pages.GET("/", api.ShowHome)
		pages.GET("/about", api.ShowAbout)
		pages.GET("/contact", api.ShowContact)
		pages.GET("/compose", api.ShowCompose)
		pages.POST("/compose", api.SubmitCompose)
		pages.GET("/posts/:postName", api.ShowPost)
	}

	r.NoRoute(api.NotFound)

	return r, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("January 2, 2006")
}
