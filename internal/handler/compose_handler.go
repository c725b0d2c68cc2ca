package handler

import (
	"net/http"

	"github.com/dailyjournal/internal/service"
	"github.com/gin-gonic/gin"
)

const composeMissingFields = "Both a title and a post body are required."

type composeForm struct {
	Title string `form:"postTitle" binding:"required"`
	Body  string `form:"postBody" binding:"required"`
}

// ShowCompose renders an empty compose form.
func (a *API) ShowCompose(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "compose.html", gin.H{
		"title": "Compose",
	})
}

// SubmitCompose saves a post and redirects home. Nothing is saved and the
// form is shown again when a field is missing.
func (a *API) SubmitCompose(c *gin.Context) {
	var form composeForm
	if err := c.ShouldBind(&form); err != nil {
		a.renderComposeError(c, form)
		return
	}

	post, err := a.posts.Create(c.Request.Context(), service.PostInput{
		Title:   form.Title,
		Content: form.Body,
	})
	if err != nil {
		if isValidationError(err) {
			a.renderComposeError(c, form)
			return
		}
		a.serverError(c, err, "failed to save post")
		return
	}

	if a.metrics != nil {
		a.metrics.PostCreated()
	}
	a.log(c).Info("post saved", "id", post.ID, "title", post.Title)
	a.addFlash(c, "Post published.")
	c.Redirect(http.StatusFound, "/")
}

func (a *API) renderComposeError(c *gin.Context, form composeForm) {
	a.renderHTML(c, http.StatusBadRequest, "compose.html", gin.H{
		"title":     "Compose",
		"error":     composeMissingFields,
		"postTitle": form.Title,
		"postBody":  form.Body,
	})
}
