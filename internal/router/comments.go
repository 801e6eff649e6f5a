package router

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/minjae-ko/localtax-portal/internal/apperr"
	"github.com/minjae-ko/localtax-portal/internal/feedback"
)

type CommentRouter struct {
	e     *echo.Echo
	store feedback.CommentStore
}

func NewCommentRouter(e *echo.Echo, store feedback.CommentStore) *CommentRouter {
	return &CommentRouter{
		e:     e,
		store: store,
	}
}

func (r *CommentRouter) Bind() {
	r.e.GET("/api/comments", r.listHandler)
	r.e.POST("/api/comments", r.createHandler)
	r.e.DELETE("/api/comments/:id", r.deleteHandler)
}

type createCommentRequest struct {
	ContentPath string `json:"content_path"`
	Author      string `json:"author"`
	Body        string `json:"body"`
}

func (r *CommentRouter) listHandler(c echo.Context) error {
	contentPath := c.QueryParam("content_path")
	if contentPath == "" {
		return apperr.NewValidation("content_path parameter is required")
	}

	comments, err := r.store.GetComments(c.Request().Context(), contentPath)
	if err != nil {
		return err
	}
	if comments == nil {
		comments = []feedback.Comment{}
	}
	return c.JSON(http.StatusOK, map[string]any{"comments": comments})
}

func (r *CommentRouter) createHandler(c echo.Context) error {
	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidation("invalid request body")
	}

	comment, err := r.store.CreateComment(c.Request().Context(), req.ContentPath, req.Author, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

func (r *CommentRouter) deleteHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidation("invalid comment id")
	}
	author := c.QueryParam("author")
	if author == "" {
		return apperr.NewValidation("author parameter is required")
	}

	if err := r.store.DeleteComment(c.Request().Context(), id, author); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
