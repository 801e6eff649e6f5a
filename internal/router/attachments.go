package router

import (
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/minjae-ko/localtax-portal/internal/apperr"
	"github.com/minjae-ko/localtax-portal/internal/feedback"
)

type AttachmentRouter struct {
	e     *echo.Echo
	store feedback.AttachmentStore
	blobs feedback.BlobStore
}

func NewAttachmentRouter(e *echo.Echo, store feedback.AttachmentStore, blobs feedback.BlobStore) *AttachmentRouter {
	return &AttachmentRouter{
		e:     e,
		store: store,
		blobs: blobs,
	}
}

func (r *AttachmentRouter) Bind() {
	r.e.GET("/api/attachments", r.listHandler)
	r.e.POST("/api/attachments", r.uploadHandler)
	r.e.DELETE("/api/attachments/:id", r.deleteHandler)
	r.e.GET("/api/attachments/:id/download", r.downloadHandler)
}

func (r *AttachmentRouter) listHandler(c echo.Context) error {
	contentPath := c.QueryParam("content_path")
	if contentPath == "" {
		return apperr.NewValidation("content_path parameter is required")
	}

	attachments, err := r.store.GetAttachments(c.Request().Context(), contentPath)
	if err != nil {
		return err
	}
	if attachments == nil {
		attachments = []feedback.Attachment{}
	}
	return c.JSON(http.StatusOK, map[string]any{"attachments": attachments})
}

func (r *AttachmentRouter) uploadHandler(c echo.Context) error {
	contentPath := c.FormValue("content_path")
	uploadedBy := c.FormValue("uploaded_by")
	if contentPath == "" || uploadedBy == "" {
		return apperr.NewValidation("content_path and uploaded_by fields are required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperr.NewValidation("file field is required")
	}
	if fileHeader.Size > feedback.MaxFileSize {
		return apperr.NewValidation("file size exceeds 10MB limit")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, feedback.MaxFileSize+1))
	if err != nil {
		return err
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	attachment, err := r.store.CreateAttachment(c.Request().Context(), fileHeader.Filename, data, mimeType, contentPath, uploadedBy)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, attachment)
}

func (r *AttachmentRouter) deleteHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidation("invalid attachment id")
	}
	uploadedBy := c.QueryParam("uploaded_by")
	if uploadedBy == "" {
		return apperr.NewValidation("uploaded_by parameter is required")
	}

	if err := r.store.DeleteAttachment(c.Request().Context(), id, uploadedBy); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (r *AttachmentRouter) downloadHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidation("invalid attachment id")
	}

	attachment, err := r.store.GetAttachment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	data, err := r.blobs.Get(c.Request().Context(), attachment.StoragePath)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+attachment.FileName+`"`)
	return c.Blob(http.StatusOK, attachment.MimeType, data)
}
