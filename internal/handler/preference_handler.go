package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/dto"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/models"
	appErrors "github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/errors"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/response"
)

type preferenceService interface {
	Get(ctx context.Context, userID string) (*models.StudyPreference, error)
	Update(ctx context.Context, userID string, req dto.UpdatePreferenceRequest) (*models.StudyPreference, error)
}

// PreferenceHandler exposes study preference endpoints.
type PreferenceHandler struct {
	service preferenceService
}

// NewPreferenceHandler constructs the handler.
func NewPreferenceHandler(svc preferenceService) *PreferenceHandler {
	return &PreferenceHandler{service: svc}
}

// Get godoc
// @Summary Get study preferences
// @Description Returns defaults when the student has not saved any.
// @Tags Preferences
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /preferences [get]
func (h *PreferenceHandler) Get(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	pref, err := h.service.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pref, nil)
}

// Update godoc
// @Summary Save study preferences
// @Tags Preferences
// @Accept json
// @Produce json
// @Param payload body dto.UpdatePreferenceRequest true "Preferences"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /preferences [put]
func (h *PreferenceHandler) Update(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Invalid(err, "invalid preference payload"))
		return
	}
	pref, err := h.service.Update(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pref, nil)
}
