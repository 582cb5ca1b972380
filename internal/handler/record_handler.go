package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bcsi-site/internal/dto"
	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
	"github.com/noah-isme/bcsi-site/pkg/response"
)

// RecordUseCases is the admin CRUD surface shared by announcements, important dates,
// personnel, historical personnel and organizations.
type RecordUseCases[T any, R any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, req R) (*T, error)
	Update(ctx context.Context, id string, req R) (*T, error)
	Delete(ctx context.Context, id string) error
	Toggle(ctx context.Context, id string) (*dto.ToggleResult, error)
}

// RecordHandler exposes one admin-managed table over JSON.
type RecordHandler[T any, R any] struct {
	service RecordUseCases[T, R]
	label   string
}

// NewRecordHandler constructs the handler. label is used in bind error messages.
func NewRecordHandler[T any, R any](svc RecordUseCases[T, R], label string) *RecordHandler[T, R] {
	return &RecordHandler[T, R]{service: svc, label: label}
}

// List godoc
// @Summary List records of an admin-managed table
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/announcements [get]
// @Router /admin/important-dates [get]
// @Router /admin/personnel [get]
// @Router /admin/historical-personnel [get]
// @Router /admin/organizations [get]
func (h *RecordHandler[T, R]) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items, map[string]interface{}{"total": len(items)})
}

// Get godoc
// @Summary Get one record
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/announcements/{id} [get]
func (h *RecordHandler[T, R]) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// Create godoc
// @Summary Create a record
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/announcements [post]
func (h *RecordHandler[T, R]) Create(c *gin.Context) {
	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid "+h.label+" payload"))
		return
	}
	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update a record
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/announcements/{id} [put]
func (h *RecordHandler[T, R]) Update(c *gin.Context) {
	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid "+h.label+" payload"))
		return
	}
	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// Delete godoc
// @Summary Delete a record
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/announcements/{id} [delete]
func (h *RecordHandler[T, R]) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Toggle godoc
// @Summary Flip the public visibility of a record
// @Description A record without an explicit flag is treated as visible, so its first toggle hides it.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/announcements/{id}/toggle [patch]
func (h *RecordHandler[T, R]) Toggle(c *gin.Context) {
	res, err := h.service.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}
