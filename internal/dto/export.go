package dto

import "github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/models"

// ExportRequest captures POST /timetable/exports payload.
type ExportRequest struct {
	Format        models.ExportFormat `json:"format" validate:"required,oneof=csv pdf"`
	IncludeBreaks bool                `json:"includeBreaks"`
}

// ExportJobResponse is returned after enqueueing an export.
type ExportJobResponse struct {
	ID       string              `json:"id"`
	Status   models.ExportStatus `json:"status"`
	Progress int                 `json:"progress"`
}

// ExportStatusResponse exposes job progress metadata.
type ExportStatusResponse struct {
	ID        string              `json:"id"`
	Status    models.ExportStatus `json:"status"`
	Progress  int                 `json:"progress"`
	ResultURL *string             `json:"resultUrl,omitempty"`
	Error     *string             `json:"error,omitempty"`
}
