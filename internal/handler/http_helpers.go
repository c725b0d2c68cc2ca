package handler

import (
	"errors"
	"net/http"

	"github.com/dailyjournal/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func (a *API) renderError(c *gin.Context, status int, message string) {
	a.renderHTML(c, status, "error.html", gin.H{
		"title":   http.StatusText(status),
		"status":  status,
		"message": message,
	})
}

// serverError logs err against the request and answers with a 500 page.
func (a *API) serverError(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	a.log(c).Error(message, "path", c.Request.URL.Path, "error", err)
	a.renderError(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

func isValidationError(err error) bool {
	return errors.Is(err, db.ErrTitleRequired) ||
		errors.Is(err, db.ErrContentRequired) ||
		errors.Is(err, db.ErrHeadingRequired)
}

// session returns nil when the sessions middleware is not installed.
func session(c *gin.Context) sessions.Session {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return nil
	}
	return sessions.Default(c)
}

func (a *API) addFlash(c *gin.Context, message string) {
	s := session(c)
	if s == nil {
		return
	}
	s.AddFlash(message)
	if err := s.Save(); err != nil {
		a.log(c).Warn("failed to save flash message", "error", err)
	}
}

func (a *API) takeFlashes(c *gin.Context) []string {
	s := session(c)
	if s == nil {
		return nil
	}
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := s.Save(); err != nil {
		a.log(c).Warn("failed to clear flash messages", "error", err)
	}

	messages := make([]string, 0, len(raw))
	for _, item := range raw {
		if text, ok := item.(string); ok {
			messages = append(messages, text)
		}
	}
	return messages
}
