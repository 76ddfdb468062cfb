package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/models"
)

// PreferenceRepository persists one study_preferences row per user.
type PreferenceRepository struct {
	db *sqlx.DB
}

// NewPreferenceRepository constructs the repository.
func NewPreferenceRepository(db *sqlx.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// FindByUser returns the stored preferences or sql.ErrNoRows.
func (r *PreferenceRepository) FindByUser(ctx context.Context, userID string) (*models.StudyPreference, error) {
	const query = `SELECT user_id, daily_hours, session_duration, break_duration, day_start, updated_at FROM study_preferences WHERE user_id = $1`
	var pref models.StudyPreference
	if err := r.db.GetContext(ctx, &pref, query, userID); err != nil {
		return nil, err
	}
	return &pref, nil
}

// Upsert inserts or replaces the user's preferences.
func (r *PreferenceRepository) Upsert(ctx context.Context, pref *models.StudyPreference) error {
	pref.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO study_preferences (user_id, daily_hours, session_duration, break_duration, day_start, updated_at)
VALUES (:user_id, :daily_hours, :session_duration, :break_duration, :day_start, :updated_at)
ON CONFLICT (user_id) DO UPDATE SET daily_hours = EXCLUDED.daily_hours, session_duration = EXCLUDED.session_duration,
break_duration = EXCLUDED.break_duration, day_start = EXCLUDED.day_start, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, pref); err != nil {
		return fmt.Errorf("upsert study preferences: %w", err)
	}
	return nil
}
