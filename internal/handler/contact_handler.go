package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bcsi-site/internal/models"
	"github.com/noah-isme/bcsi-site/internal/service"
	"github.com/noah-isme/bcsi-site/pkg/response"
)

// ContactInbox lists received contact messages.
type ContactInbox interface {
	List(ctx context.Context) ([]models.ContactMessage, error)
}

// Exporter renders a resource as a downloadable file.
type Exporter interface {
	Export(ctx context.Context, resource, format string) (*service.ExportFile, error)
}

// ContactMessageHandler is the admin view of the contact inbox.
type ContactMessageHandler struct {
	inbox ContactInbox
}

func NewContactMessageHandler(inbox ContactInbox) *ContactMessageHandler {
	return &ContactMessageHandler{inbox: inbox}
}

// List godoc
// @Summary Received contact messages, newest first
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/contact-messages [get]
func (h *ContactMessageHandler) List(c *gin.Context) {
	items, err := h.inbox.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items, map[string]interface{}{"total": len(items)})
}

// ExportHandler streams CSV or PDF downloads.
type ExportHandler struct {
	exporter Exporter
}

func NewExportHandler(exporter Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// Download returns a handler exporting resource in the format given by ?format= (csv by default).
//
// @Summary Export a resource
// @Tags Admin
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /admin/announcements/export [get]
// @Router /admin/personnel/export [get]
// @Router /admin/contact-messages/export [get]
func (h *ExportHandler) Download(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		format := c.DefaultQuery("format", service.FormatCSV)
		file, err := h.exporter.Export(c.Request.Context(), resource, format)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
		c.Data(http.StatusOK, file.ContentType, file.Data)
	}
}
