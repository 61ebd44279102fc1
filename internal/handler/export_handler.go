package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bilbo-wu/teacher-focus-api/internal/service"
	"github.com/bilbo-wu/teacher-focus-api/pkg/response"
)

// ExportHandler exposes file export endpoints.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler constructs handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// SchedulePDF godoc
// @Summary Download one day's schedule as PDF
// @Tags Exports
// @Produce application/pdf
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Router /exports/schedule.pdf [get]
func (h *ExportHandler) SchedulePDF(c *gin.Context) {
	date := c.Query("date")
	data, err := h.service.DaySchedulePDF(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"schedule-%s.pdf\"", date))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", data)
}

// RosterCSV godoc
// @Summary Download the roster as CSV
// @Tags Exports
// @Produce text/csv
// @Success 200 {file} binary
// @Router /exports/students.csv [get]
func (h *ExportHandler) RosterCSV(c *gin.Context) {
	data, err := h.service.RosterCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\"students.csv\"")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/csv", data)
}
