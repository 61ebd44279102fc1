package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bilbo-wu/teacher-focus-api/internal/service"
	appErrors "github.com/bilbo-wu/teacher-focus-api/pkg/errors"
	"github.com/bilbo-wu/teacher-focus-api/pkg/response"
)

// maxAudioBytes bounds uploaded recordings.
const maxAudioBytes = 10 << 20

// ExtractionHandler exposes the schedule extraction endpoints.
type ExtractionHandler struct {
	service *service.ExtractionService
}

// NewExtractionHandler constructs handler.
func NewExtractionHandler(svc *service.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{service: svc}
}

type parseTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// ParseText godoc
// @Summary Extract schedule items from pasted free text
// @Tags Extraction
// @Accept json
// @Produce json
// @Param payload body parseTextRequest true "Text payload"
// @Success 200 {object} response.Envelope
// @Router /extract/schedule/text [post]
func (h *ExtractionHandler) ParseText(c *gin.Context) {
	var req parseTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	items := h.service.ParseScheduleFromText(c.Request.Context(), req.Text)
	response.JSON(c, http.StatusOK, items, nil)
}

// ParseAudio godoc
// @Summary Extract a schedule item from an uploaded recording
// @Tags Extraction
// @Accept mpfd
// @Produce json
// @Param audio formData file true "Audio blob"
// @Success 200 {object} response.Envelope
// @Router /extract/schedule/audio [post]
func (h *ExtractionHandler) ParseAudio(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "audio file is required"))
		return
	}
	defer file.Close()

	// read one byte past the cap so an oversized upload is rejected
	// instead of silently truncated
	audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes+1))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "read audio file"))
		return
	}
	if len(audio) > maxAudioBytes {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "audio file exceeds the 10MB limit"))
		return
	}

	item := h.service.ParseScheduleFromAudio(c.Request.Context(), audio, header.Header.Get("Content-Type"))
	if item == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrExtraction, "audio extraction unavailable"))
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}
