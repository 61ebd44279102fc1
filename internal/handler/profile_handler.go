package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bilbo-wu/teacher-focus-api/internal/service"
	appErrors "github.com/bilbo-wu/teacher-focus-api/pkg/errors"
	"github.com/bilbo-wu/teacher-focus-api/pkg/response"
)

// ProfileHandler manages profile endpoints.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

type updateNameRequest struct {
	Name string `json:"name" binding:"required"`
}

type shortcutRequest struct {
	Value string `json:"value" binding:"required"`
}

// Get godoc
// @Summary Get the user profile
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Get(c.Request.Context()), nil)
}

// UpdateName godoc
// @Summary Update display name
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body updateNameRequest true "Name payload"
// @Success 200 {object} response.Envelope
// @Router /profile/name [put]
func (h *ProfileHandler) UpdateName(c *gin.Context) {
	var req updateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	profile, err := h.service.UpdateName(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// AddClass godoc
// @Summary Add a class shortcut
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body shortcutRequest true "Class payload"
// @Success 200 {object} response.Envelope
// @Router /profile/classes [post]
func (h *ProfileHandler) AddClass(c *gin.Context) {
	var req shortcutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	profile, err := h.service.AddClass(c.Request.Context(), req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// RemoveClass godoc
// @Summary Remove a class shortcut
// @Tags Profile
// @Produce json
// @Param value path string true "Class value"
// @Success 200 {object} response.Envelope
// @Router /profile/classes/{value} [delete]
func (h *ProfileHandler) RemoveClass(c *gin.Context) {
	profile := h.service.RemoveClass(c.Request.Context(), c.Param("value"))
	response.JSON(c, http.StatusOK, profile, nil)
}

// AddLocation godoc
// @Summary Add a location shortcut
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body shortcutRequest true "Location payload"
// @Success 200 {object} response.Envelope
// @Router /profile/locations [post]
func (h *ProfileHandler) AddLocation(c *gin.Context) {
	var req shortcutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	profile, err := h.service.AddLocation(c.Request.Context(), req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// RemoveLocation godoc
// @Summary Remove a location shortcut
// @Tags Profile
// @Produce json
// @Param value path string true "Location value"
// @Success 200 {object} response.Envelope
// @Router /profile/locations/{value} [delete]
func (h *ProfileHandler) RemoveLocation(c *gin.Context) {
	profile := h.service.RemoveLocation(c.Request.Context(), c.Param("value"))
	response.JSON(c, http.StatusOK, profile, nil)
}
