package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/dto"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/models"
	appErrors "github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/errors"
)

type subjectRepository interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, int, error)
	ListActive(ctx context.Context, userID string) ([]models.Subject, error)
	FindByID(ctx context.Context, userID, id string) (*models.Subject, error)
	ExistsByName(ctx context.Context, userID, name, excludeID string) (bool, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Deactivate(ctx context.Context, userID, id string) error
}

type cacheInvalidator interface {
	Delete(ctx context.Context, keys ...string) error
}

// SubjectService manages the subjects a student plans around.
type SubjectService struct {
	repo      subjectRepository
	cache     cacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService creates a new subject service.
func NewSubjectService(repo subjectRepository, cache cacheInvalidator, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns the user's subjects with pagination metadata.
func (s *SubjectService) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, *models.Pagination, error) {
	subjects, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list subjects")
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 50
	}
	return subjects, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns one of the user's subjects.
func (s *SubjectService) Get(ctx context.Context, userID, id string) (*models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Internal(err, "failed to load subject")
	}
	return subject, nil
}

// Create adds a subject, rejecting duplicate active names.
func (s *SubjectService) Create(ctx context.Context, userID string, req dto.CreateSubjectRequest) (*models.Subject, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid subject payload")
	}
	if err := s.ensureUniqueName(ctx, userID, req.Name, ""); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		UserID:       userID,
		Name:         req.Name,
		WeeklyHours:  req.WeeklyHours,
		Difficulty:   req.Difficulty,
		ExamPriority: req.ExamPriority,
		Color:        strings.ToUpper(req.Color),
		Active:       true,
	}
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, appErrors.Internal(err, "failed to create subject")
	}
	s.invalidate(ctx, userID)
	return subject, nil
}

// Update applies the non-nil fields of req.
func (s *SubjectService) Update(ctx context.Context, userID, id string, req dto.UpdateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid subject payload")
	}
	subject, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "name must not be empty")
		}
		if !strings.EqualFold(name, subject.Name) {
			if err := s.ensureUniqueName(ctx, userID, name, id); err != nil {
				return nil, err
			}
		}
		subject.Name = name
	}
	if req.WeeklyHours != nil {
		subject.WeeklyHours = *req.WeeklyHours
	}
	if req.Difficulty != nil {
		subject.Difficulty = *req.Difficulty
	}
	if req.ExamPriority != nil {
		subject.ExamPriority = *req.ExamPriority
	}
	if req.Color != nil {
		subject.Color = strings.ToUpper(*req.Color)
	}
	if req.Active != nil {
		subject.Active = *req.Active
	}

	if err := s.repo.Update(ctx, subject); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Internal(err, "failed to update subject")
	}
	s.invalidate(ctx, userID)
	return subject, nil
}

// Delete deactivates the subject. Existing timetables keep their sessions.
func (s *SubjectService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Deactivate(ctx, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return appErrors.Internal(err, "failed to delete subject")
	}
	s.invalidate(ctx, userID)
	return nil
}

// ListActive returns every active subject, used by the timetable service.
func (s *SubjectService) ListActive(ctx context.Context, userID string) ([]models.Subject, error) {
	subjects, err := s.repo.ListActive(ctx, userID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load subjects")
	}
	return subjects, nil
}

func (s *SubjectService) ensureUniqueName(ctx context.Context, userID, name, excludeID string) error {
	exists, err := s.repo.ExistsByName(ctx, userID, name, excludeID)
	if err != nil {
		return appErrors.Internal(err, "failed to check subject name")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "subject with this name already exists")
	}
	return nil
}

func (s *SubjectService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, TimetableCacheKey(userID)); err != nil {
		s.logger.Warn("failed to invalidate timetable cache", zap.String("user_id", userID), zap.Error(err))
	}
}
