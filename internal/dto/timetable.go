package dto

import (
	"time"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/planner"
)

// TimetableResponse is returned by generate, get and regenerate-day.
type TimetableResponse struct {
	ID          string           `json:"id"`
	Version     int              `json:"version"`
	GeneratedAt time.Time        `json:"generatedAt"`
	Days        []planner.Day    `json:"days"`
	Coverage    planner.Coverage `json:"coverage"`
}

// GenerateTimetableRequest captures optional POST /timetable/generate overrides.
type GenerateTimetableRequest struct {
	Seed *int64 `json:"seed"`
}

// SessionCompletionRequest captures PATCH /timetable/days/:day/sessions/:sessionId payload.
type SessionCompletionRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}
