package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/models"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/database"
)

const timetableColumns = `id, user_id, days, coverage, seed, version, generated_at, updated_at`

// TimetableRepository persists the active weekly timetable of each user.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository constructs the repository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

func (r *TimetableRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// LockForUser takes a transaction-scoped advisory lock keyed by the user so
// writers for the same user run one at a time. exec must be a transaction.
func (r *TimetableRepository) LockForUser(ctx context.Context, exec sqlx.ExtContext, userID string) error {
	if _, err := r.exec(exec).ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID); err != nil {
		return fmt.Errorf("lock timetable for user: %w", err)
	}
	return nil
}

// WithUserLock runs fn in a transaction holding the user's advisory lock.
func (r *TimetableRepository) WithUserLock(ctx context.Context, userID string, fn func(exec sqlx.ExtContext) error) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := r.LockForUser(ctx, tx, userID); err != nil {
			return err
		}
		return fn(tx)
	})
}

// FindByUser returns the user's timetable or sql.ErrNoRows.
func (r *TimetableRepository) FindByUser(ctx context.Context, exec sqlx.ExtContext, userID string) (*models.Timetable, error) {
	query := `SELECT ` + timetableColumns + ` FROM timetables WHERE user_id = $1`
	var tt models.Timetable
	if err := sqlx.GetContext(ctx, r.exec(exec), &tt, query, userID); err != nil {
		return nil, err
	}
	return &tt, nil
}

// Upsert stores the timetable, replacing any previous one, and sets the
// persisted id and version back on tt.
func (r *TimetableRepository) Upsert(ctx context.Context, exec sqlx.ExtContext, tt *models.Timetable) error {
	if tt == nil {
		return fmt.Errorf("timetable payload is nil")
	}
	if tt.ID == "" {
		tt.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if tt.GeneratedAt.IsZero() {
		tt.GeneratedAt = now
	}
	tt.UpdatedAt = now

	const query = `INSERT INTO timetables (id, user_id, days, coverage, seed, version, generated_at, updated_at)
VALUES ($1, $2, $3, $4, $5, 1, $6, $7)
ON CONFLICT (user_id) DO UPDATE SET days = EXCLUDED.days, coverage = EXCLUDED.coverage, seed = EXCLUDED.seed,
version = timetables.version + 1, generated_at = EXCLUDED.generated_at, updated_at = EXCLUDED.updated_at
RETURNING id, version`
	row := r.exec(exec).QueryRowxContext(ctx, query, tt.ID, tt.UserID, tt.Days, tt.Coverage, tt.Seed, tt.GeneratedAt, tt.UpdatedAt)
	if err := row.Scan(&tt.ID, &tt.Version); err != nil {
		return fmt.Errorf("upsert timetable: %w", err)
	}
	return nil
}

// UpdateDays rewrites the stored week without touching generated_at and bumps the version.
func (r *TimetableRepository) UpdateDays(ctx context.Context, exec sqlx.ExtContext, tt *models.Timetable) error {
	tt.UpdatedAt = time.Now().UTC()
	const query = `UPDATE timetables SET days = $2, coverage = $3, version = version + 1, updated_at = $4 WHERE user_id = $1 RETURNING version`
	row := r.exec(exec).QueryRowxContext(ctx, query, tt.UserID, tt.Days, tt.Coverage, tt.UpdatedAt)
	if err := row.Scan(&tt.Version); err != nil {
		return fmt.Errorf("update timetable days: %w", err)
	}
	return nil
}
