package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/dto"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/middleware"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/models"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/planner"
	appErrors "github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/errors"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/response"
)

type timetableService interface {
	Generate(ctx context.Context, userID string, req dto.GenerateTimetableRequest) (*dto.TimetableResponse, error)
	Lookup(ctx context.Context, userID string) (*dto.TimetableResponse, bool, error)
	RegenerateDay(ctx context.Context, userID string, dayOfWeek int) (*dto.TimetableResponse, error)
	SetSessionCompleted(ctx context.Context, userID string, dayOfWeek int, sessionID string, completed bool) (*planner.Session, error)
	Progress(ctx context.Context, userID string) (*models.WeekProgress, error)
}

// TimetableHandler exposes weekly timetable endpoints.
type TimetableHandler struct {
	service timetableService
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc timetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// Generate godoc
// @Summary Generate a weekly timetable
// @Description Replaces the stored timetable with a fresh week built from active subjects and preferences.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest false "Optional seed"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Security BearerAuth
// @Router /timetable/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Invalid(err, "invalid generate payload"))
		return
	}
	tt, err := h.service.Generate(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tt)
}

// Get godoc
// @Summary Get the current timetable
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /timetable [get]
func (h *TimetableHandler) Get(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	tt, hit, err := h.service.Lookup(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	middleware.SetTimetableVersion(c, tt.Version)
	response.JSON(c, http.StatusOK, tt, nil, middleware.ExtractMeta(c))
}

// RegenerateDay godoc
// @Summary Reshuffle one day
// @Description Rebuilds the sessions of a single day. Other days are unchanged.
// @Tags Timetable
// @Produce json
// @Param day path int true "Day of week, 0 = Monday"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /timetable/days/{day}/regenerate [post]
func (h *TimetableHandler) RegenerateDay(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	day, ok := dayParam(c)
	if !ok {
		return
	}
	tt, err := h.service.RegenerateDay(c.Request.Context(), claims.UserID, day)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tt, nil)
}

// SetCompleted godoc
// @Summary Mark a study session done
// @Tags Timetable
// @Accept json
// @Produce json
// @Param day path int true "Day of week, 0 = Monday"
// @Param sessionId path string true "Session ID"
// @Param payload body dto.SessionCompletionRequest true "Completion flag"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /timetable/days/{day}/sessions/{sessionId} [patch]
func (h *TimetableHandler) SetCompleted(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	day, ok := dayParam(c)
	if !ok {
		return
	}
	var req dto.SessionCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Completed == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "completed flag is required"))
		return
	}
	session, err := h.service.SetSessionCompleted(c.Request.Context(), claims.UserID, day, c.Param("sessionId"), *req.Completed)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}

// Progress godoc
// @Summary Weekly progress
// @Description Planned against completed study minutes per day and for the week.
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /timetable/progress [get]
func (h *TimetableHandler) Progress(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	progress, err := h.service.Progress(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, progress, nil)
}
