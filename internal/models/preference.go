package models

import (
	"time"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/planner"
)

// Default study preferences used until a student saves their own.
const (
	DefaultDailyHours      = 4.0
	DefaultSessionDuration = 45
	DefaultBreakDuration   = 10
)

// StudyPreference holds a student's daily budget and block lengths.
type StudyPreference struct {
	UserID          string    `db:"user_id" json:"userId"`
	DailyHours      float64   `db:"daily_hours" json:"dailyHours"`
	SessionDuration int       `db:"session_duration" json:"sessionDuration"`
	BreakDuration   int       `db:"break_duration" json:"breakDuration"`
	DayStart        string    `db:"day_start" json:"dayStart"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// DefaultStudyPreference returns the preferences applied to new students.
func DefaultStudyPreference(userID string) StudyPreference {
	return StudyPreference{
		UserID:          userID,
		DailyHours:      DefaultDailyHours,
		SessionDuration: DefaultSessionDuration,
		BreakDuration:   DefaultBreakDuration,
	}
}

// ToPlanner converts the record into scheduler preferences.
func (p StudyPreference) ToPlanner() planner.Preferences {
	return planner.Preferences{
		DailyHours:      p.DailyHours,
		SessionDuration: p.SessionDuration,
		BreakDuration:   p.BreakDuration,
	}
}
