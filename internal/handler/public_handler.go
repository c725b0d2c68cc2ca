package handler

import (
	"errors"
	"net/http"

	"github.com/dailyjournal/internal/db"
	"github.com/dailyjournal/internal/service"
	"github.com/gin-gonic/gin"
)

// postCard is one entry of the home page post list.
type postCard struct {
	Title     string
	Excerpt   string
	Truncated bool
	Slug      string
}

// ShowHome renders the Home page content followed by every post.
func (a *API) ShowHome(c *gin.Context) {
	ctx := c.Request.Context()

	var intro string
	page, err := a.pages.GetByHeading(ctx, db.HeadingHome)
	switch {
	case err == nil:
		intro = page.Content
	case errors.Is(err, service.ErrPageNotFound):
		a.log(c).Warn("home page content missing")
	default:
		a.serverError(c, err, "failed to load home page")
		return
	}

	posts, err := a.posts.ListAll(ctx)
	if err != nil {
		a.serverError(c, err, "failed to list posts")
		return
	}

	cards := make([]postCard, 0, len(posts))
	for _, post := range posts {
		text, truncated := excerpt(post.Content)
		cards = append(cards, postCard{
			Title:     post.Title,
			Excerpt:   text,
			Truncated: truncated,
			Slug:      service.Slugify(post.Title),
		})
	}

	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"title":   db.HeadingHome,
		"heading": db.HeadingHome,
		"intro":   intro,
		"posts":   cards,
		"flashes": a.takeFlashes(c),
	})
}

// ShowAbout renders the About page.
func (a *API) ShowAbout(c *gin.Context) {
	a.showInfoPage(c, db.HeadingAbout, "about.html")
}

// ShowContact renders the Contact page.
func (a *API) ShowContact(c *gin.Context) {
	a.showInfoPage(c, db.HeadingContact, "contact.html")
}

func (a *API) showInfoPage(c *gin.Context, heading, template string) {
	page, err := a.pages.GetByHeading(c.Request.Context(), heading)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			a.renderError(c, http.StatusNotFound, heading+" page not found")
			return
		}
		a.serverError(c, err, "failed to load info page")
		return
	}

	a.renderHTML(c, http.StatusOK, template, gin.H{
		"title":   page.Heading,
		"heading": page.Heading,
		"content": page.Content,
	})
}

// ShowPost renders the first post whose title matches the requested slug.
func (a *API) ShowPost(c *gin.Context) {
	post, err := a.posts.FindBySlug(c.Request.Context(), c.Param("postName"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			a.renderError(c, http.StatusNotFound, "Post not found")
			return
		}
		a.serverError(c, err, "failed to look up post")
		return
	}

	content, err := renderMarkdown(post.Content)
	if err != nil {
		a.serverError(c, err, "failed to render post")
		return
	}

	a.renderHTML(c, http.StatusOK, "post.html", gin.H{
		"title":   post.Title,
		"post":    post,
		"content": content,
	})
}

// NotFound answers unknown routes with the 404 page.
func (a *API) NotFound(c *gin.Context) {
	a.renderError(c, http.StatusNotFound, "Page not found")
}
