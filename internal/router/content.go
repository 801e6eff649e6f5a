package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minjae-ko/localtax-portal/internal/apperr"
	"github.com/minjae-ko/localtax-portal/internal/content"
	"github.com/minjae-ko/localtax-portal/internal/navigation"
)

type ContentRouter struct {
	e         *echo.Echo
	repo      *content.FSRepository
	registry  *content.Registry
	tree      *navigation.Tree
	sequencer *navigation.Sequencer
}

func NewContentRouter(e *echo.Echo, repo *content.FSRepository, registry *content.Registry, tree *navigation.Tree, sequencer *navigation.Sequencer) *ContentRouter {
	return &ContentRouter{
		e:         e,
		repo:      repo,
		registry:  registry,
		tree:      tree,
		sequencer: sequencer,
	}
}

func (r *ContentRouter) Bind() {
	r.e.GET("/api/content", r.contentHandler)
	r.e.GET("/api/navigation", r.navigationHandler)
}

type sequenceContext struct {
	Prev     string `json:"prev,omitempty"`
	Next     string `json:"next,omitempty"`
	Current  int    `json:"current"`
	Total    int    `json:"total"`
	HasOrder bool   `json:"hasOrder"`
}

type contentResponse struct {
	Meta     content.Meta      `json:"meta"`
	Body     string            `json:"body"`
	Versions []content.Version `json:"versions"`
	Sequence sequenceContext   `json:"sequence"`
}

func (r *ContentRouter) contentHandler(c echo.Context) error {
	categoryParam := c.QueryParam("category")
	slug := c.QueryParam("slug")
	version := c.QueryParam("v")

	if categoryParam == "" || slug == "" {
		return apperr.NewValidation("category and slug parameters are required")
	}
	category, ok := content.ParseCategory(categoryParam)
	if !ok {
		return apperr.NewValidation("unknown category: " + categoryParam)
	}

	filePath, err := r.repo.Resolve(category, slug, version)
	if err != nil {
		return err
	}
	doc, err := r.repo.Read(filePath)
	if err != nil {
		return err
	}
	versions, err := r.registry.ListVersions(category, slug)
	if err != nil {
		return err
	}

	contentPath := "/" + string(category) + "/" + slug
	seq := sequenceContext{
		Prev: r.sequencer.PrevPath(contentPath),
		Next: r.sequencer.NextPath(contentPath),
	}
	if pos, ok := r.sequencer.SequencePosition(contentPath); ok {
		seq.Current = pos.Current
		seq.Total = pos.Total
		seq.HasOrder = true
	}

	return c.JSON(http.StatusOK, contentResponse{
		Meta:     doc.Meta,
		Body:     doc.Body,
		Versions: versions,
		Sequence: seq,
	})
}

func (r *ContentRouter) navigationHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"categories": r.tree.Roots()})
}
