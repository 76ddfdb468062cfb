package models

import (
	"time"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/planner"
)

// Subject is a subject a student wants to study each week.
type Subject struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"userId"`
	Name         string    `db:"name" json:"name"`
	WeeklyHours  float64   `db:"weekly_hours" json:"weeklyHours"`
	Difficulty   string    `db:"difficulty" json:"difficulty"`
	ExamPriority int       `db:"exam_priority" json:"examPriority"`
	Color        string    `db:"color" json:"color"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// SubjectFilter captures supported filters for listing subjects.
type SubjectFilter struct {
	UserID          string
	IncludeInactive bool
	Search          string
	Page            int
	PageSize        int
	SortBy          string
	SortOrder       string
}

// ToPlanner converts the record into the scheduler's input shape.
func (s Subject) ToPlanner() planner.Subject {
	return planner.Subject{
		ID:           s.ID,
		Name:         s.Name,
		WeeklyHours:  s.WeeklyHours,
		Difficulty:   planner.Difficulty(s.Difficulty),
		ExamPriority: s.ExamPriority,
		Color:        s.Color,
	}
}

// PlannerSubjects converts a list of records.
func PlannerSubjects(subjects []Subject) []planner.Subject {
	out := make([]planner.Subject, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, s.ToPlanner())
	}
	return out
}
