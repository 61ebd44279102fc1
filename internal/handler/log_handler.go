package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bilbo-wu/teacher-focus-api/internal/service"
	appErrors "github.com/bilbo-wu/teacher-focus-api/pkg/errors"
	"github.com/bilbo-wu/teacher-focus-api/pkg/response"
)

// LogHandler manages behavioural log endpoints.
type LogHandler struct {
	service *service.LogService
}

// NewLogHandler constructs handler.
func NewLogHandler(svc *service.LogService) *LogHandler {
	return &LogHandler{service: svc}
}

// Add godoc
// @Summary Record an observation for a student
// @Tags Logs
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.AddLogRequest true "Log payload"
// @Success 201 {object} response.Envelope
// @Router /students/{id}/logs [post]
func (h *LogHandler) Add(c *gin.Context) {
	var req service.AddLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	entry, err := h.service.Add(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// ListByStudent godoc
// @Summary List observations for a student
// @Tags Logs
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/logs [get]
func (h *LogHandler) ListByStudent(c *gin.Context) {
	entries, err := h.service.ListByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// DraftMessage godoc
// @Summary Draft a parent-facing message about a student
// @Tags Logs
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.DraftMessageRequest true "Draft payload"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/messages/draft [post]
func (h *LogHandler) DraftMessage(c *gin.Context) {
	var req service.DraftMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	message, err := h.service.DraftParentMessage(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": message}, nil)
}
