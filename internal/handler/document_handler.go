package handler

import (
	"github.com/labstack/echo/v4"

	"taskdesk/internal/auth"
	"taskdesk/internal/service"
)

// DocumentHandler handles document download.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Download godoc
// @Summary Download a document attached to a task
// @Tags documents
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {file} file
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /documents/{id}/download [get]
func (h *DocumentHandler) Download(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	doc, err := h.documentService.GetForDownload(c.Request().Context(), auth.CurrentUser(c), id)
	if err != nil {
		return fail(c, err, "Download failed")
	}
	return c.Attachment(doc.Path, doc.Name)
}
