package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bilbo-wu/teacher-focus-api/internal/service"
	appErrors "github.com/bilbo-wu/teacher-focus-api/pkg/errors"
	"github.com/bilbo-wu/teacher-focus-api/pkg/response"
)

// MemoHandler manages memo endpoints.
type MemoHandler struct {
	service *service.MemoService
}

// NewMemoHandler constructs handler.
func NewMemoHandler(svc *service.MemoService) *MemoHandler {
	return &MemoHandler{service: svc}
}

type addMemoRequest struct {
	Content string `json:"content" binding:"required"`
}

// List godoc
// @Summary List memos
// @Tags Memos
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /memos [get]
func (h *MemoHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List(c.Request.Context()), nil)
}

// Add godoc
// @Summary Capture a memo
// @Tags Memos
// @Accept json
// @Produce json
// @Param payload body addMemoRequest true "Memo payload"
// @Success 201 {object} response.Envelope
// @Router /memos [post]
func (h *MemoHandler) Add(c *gin.Context) {
	var req addMemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	memo, err := h.service.Add(c.Request.Context(), req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, memo)
}

// Delete godoc
// @Summary Delete memo
// @Tags Memos
// @Produce json
// @Param id path string true "Memo ID"
// @Success 204
// @Router /memos/{id} [delete]
func (h *MemoHandler) Delete(c *gin.Context) {
	h.service.Delete(c.Request.Context(), c.Param("id"))
	response.NoContent(c)
}

// Analyze godoc
// @Summary Classify a memo into a task suggestion
// @Tags Memos
// @Produce json
// @Param id path string true "Memo ID"
// @Success 200 {object} response.Envelope
// @Router /memos/{id}/analyze [post]
func (h *MemoHandler) Analyze(c *gin.Context) {
	analysis, err := h.service.Analyze(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, analysis, nil)
}
