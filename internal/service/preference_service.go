package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/dto"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/models"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/planner"
	appErrors "github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/errors"
)

type preferenceRepository interface {
	FindByUser(ctx context.Context, userID string) (*models.StudyPreference, error)
	Upsert(ctx context.Context, pref *models.StudyPreference) error
}

// PreferenceService reads and stores a student's study preferences.
type PreferenceService struct {
	repo      preferenceRepository
	cache     cacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPreferenceService constructs the service.
func NewPreferenceService(repo preferenceRepository, cache cacheInvalidator, validate *validator.Validate, logger *zap.Logger) *PreferenceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// Get returns the stored preferences, falling back to defaults.
func (s *PreferenceService) Get(ctx context.Context, userID string) (*models.StudyPreference, error) {
	pref, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			def := models.DefaultStudyPreference(userID)
			return &def, nil
		}
		return nil, appErrors.Internal(err, "failed to load preferences")
	}
	return pref, nil
}

// Update validates and stores new preferences.
func (s *PreferenceService) Update(ctx context.Context, userID string, req dto.UpdatePreferenceRequest) (*models.StudyPreference, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid preferences payload")
	}
	pref := &models.StudyPreference{
		UserID:          userID,
		DailyHours:      req.DailyHours,
		SessionDuration: req.SessionDuration,
		BreakDuration:   req.BreakDuration,
		DayStart:        req.DayStart,
	}
	if err := ValidatePreferences(pref.ToPlanner()); err != nil {
		return nil, err
	}
	if pref.DayStart != "" {
		if _, err := planner.ParseClock(pref.DayStart); err != nil {
			return nil, appErrors.Invalid(err, "invalid dayStart")
		}
	}

	if err := s.repo.Upsert(ctx, pref); err != nil {
		return nil, appErrors.Internal(err, "failed to save preferences")
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, TimetableCacheKey(userID)); err != nil {
			s.logger.Warn("failed to invalidate timetable cache", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return pref, nil
}

// ValidatePreferences rejects preferences that cannot fit a single study session per day.
func ValidatePreferences(p planner.Preferences) error {
	if p.SessionDuration <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "sessionDuration must be positive")
	}
	if p.BreakDuration < 0 {
		return appErrors.Clone(appErrors.ErrValidation, "breakDuration must not be negative")
	}
	if p.DailyMinutes() < p.SessionDuration {
		return appErrors.Clone(appErrors.ErrValidation, "sessionDuration exceeds the daily study budget")
	}
	return nil
}
