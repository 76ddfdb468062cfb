package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx/types"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/planner"
)

// Timetable is the active weekly plan of one student. Days and coverage are
// stored as JSONB so the session layout round-trips unchanged.
type Timetable struct {
	ID          string         `db:"id" json:"id"`
	UserID      string         `db:"user_id" json:"userId"`
	Days        types.JSONText `db:"days" json:"days"`
	Coverage    types.JSONText `db:"coverage" json:"coverage"`
	Seed        *int64         `db:"seed" json:"seed,omitempty"`
	Version     int            `db:"version" json:"version"`
	GeneratedAt time.Time      `db:"generated_at" json:"generatedAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}

// DecodeDays unmarshals the stored week.
func (t *Timetable) DecodeDays() ([]planner.Day, error) {
	var days []planner.Day
	if len(t.Days) == 0 {
		return days, nil
	}
	if err := json.Unmarshal(t.Days, &days); err != nil {
		return nil, fmt.Errorf("decode timetable days: %w", err)
	}
	return days, nil
}

// EncodeDays replaces the stored week.
func (t *Timetable) EncodeDays(days []planner.Day) error {
	data, err := json.Marshal(days)
	if err != nil {
		return fmt.Errorf("encode timetable days: %w", err)
	}
	t.Days = types.JSONText(data)
	return nil
}

// DecodeCoverage unmarshals the stored coverage summary.
func (t *Timetable) DecodeCoverage() (planner.Coverage, error) {
	var cov planner.Coverage
	if len(t.Coverage) == 0 {
		return cov, nil
	}
	if err := json.Unmarshal(t.Coverage, &cov); err != nil {
		return cov, fmt.Errorf("decode timetable coverage: %w", err)
	}
	return cov, nil
}

// EncodeCoverage replaces the stored coverage summary.
func (t *Timetable) EncodeCoverage(cov planner.Coverage) error {
	data, err := json.Marshal(cov)
	if err != nil {
		return fmt.Errorf("encode timetable coverage: %w", err)
	}
	t.Coverage = types.JSONText(data)
	return nil
}

// DayProgress reports planned against completed study time for one day.
type DayProgress struct {
	DayOfWeek         int     `json:"dayOfWeek"`
	DayName           string  `json:"dayName"`
	PlannedSessions   int     `json:"plannedSessions"`
	CompletedSessions int     `json:"completedSessions"`
	PlannedMinutes    int     `json:"plannedMinutes"`
	CompletedMinutes  int     `json:"completedMinutes"`
	Percent           float64 `json:"percent"`
}

// WeekProgress aggregates DayProgress across the timetable.
type WeekProgress struct {
	Days             []DayProgress `json:"days"`
	PlannedMinutes   int           `json:"plannedMinutes"`
	CompletedMinutes int           `json:"completedMinutes"`
	Percent          float64       `json:"percent"`
}
