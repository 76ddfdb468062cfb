package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/dto"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/models"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/service"
	appErrors "github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/errors"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/response"
)

type exportJobService interface {
	CreateJob(ctx context.Context, userID string, req dto.ExportRequest) (*dto.ExportJobResponse, error)
	Status(ctx context.Context, id, actorID string, role models.UserRole) (*dto.ExportStatusResponse, error)
	ResolveDownload(ctx context.Context, token string) (*service.ExportDownload, error)
}

// ExportHandler exposes timetable export endpoints.
type ExportHandler struct {
	service exportJobService
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc exportJobService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Create godoc
// @Summary Export the timetable
// @Description Queues a CSV or PDF rendering of the current timetable.
// @Tags Exports
// @Accept json
// @Produce json
// @Param payload body dto.ExportRequest true "Export options"
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Security BearerAuth
// @Router /timetable/exports [post]
func (h *ExportHandler) Create(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Invalid(err, "invalid export payload"))
		return
	}
	job, err := h.service.CreateJob(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, job)
}

// Status godoc
// @Summary Export job status
// @Tags Exports
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /timetable/exports/{id} [get]
func (h *ExportHandler) Status(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	status, err := h.service.Status(c.Request.Context(), c.Param("id"), claims.UserID, claims.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// Download godoc
// @Summary Download an export
// @Description The signed token is the only credential.
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /export/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	download, err := h.service.ResolveDownload(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.File.Close()

	info, err := download.File.Stat()
	if err != nil {
		response.Error(c, appErrors.Internal(err, "failed to read export file"))
		return
	}
	contentType := "text/csv"
	if download.Format == models.ExportFormatPDF {
		contentType = "application/pdf"
	}
	response.Attachment(c, download.Filename, contentType, info.Size(), download.File)
}
