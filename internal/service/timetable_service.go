package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/dto"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/models"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/planner"
	appErrors "github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/errors"
)

type timetableStore interface {
	WithUserLock(ctx context.Context, userID string, fn func(exec sqlx.ExtContext) error) error
	FindByUser(ctx context.Context, exec sqlx.ExtContext, userID string) (*models.Timetable, error)
	Upsert(ctx context.Context, exec sqlx.ExtContext, tt *models.Timetable) error
	UpdateDays(ctx context.Context, exec sqlx.ExtContext, tt *models.Timetable) error
}

type activeSubjectLister interface {
	ListActive(ctx context.Context, userID string) ([]models.Subject, error)
}

type preferenceReader interface {
	Get(ctx context.Context, userID string) (*models.StudyPreference, error)
}

type timetableCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// TimetableConfig tunes timetable generation.
type TimetableConfig struct {
	// DayStart applies when the student has not chosen one. Nil means 08:00.
	DayStart *planner.Clock
	// Seed fixes the allocator's random source for every run when non-zero.
	Seed     int64
	CacheTTL time.Duration
}

// TimetableService builds, stores and edits weekly study timetables.
type TimetableService struct {
	store    timetableStore
	subjects activeSubjectLister
	prefs    preferenceReader
	cache    timetableCache
	metrics  *MetricsService
	logger   *zap.Logger
	cfg      TimetableConfig
	dayStart planner.Clock
	now      func() time.Time
}

// TimetableCacheKey is the cache key of a user's timetable response.
func TimetableCacheKey(userID string) string {
	return "timetable:" + userID
}

// NewTimetableService constructs the service.
func NewTimetableService(store timetableStore, subjects activeSubjectLister, prefs preferenceReader, cache timetableCache, metrics *MetricsService, logger *zap.Logger, cfg TimetableConfig) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	dayStart := planner.DefaultDayStart
	if cfg.DayStart != nil {
		dayStart = *cfg.DayStart
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 15 * time.Minute
	}
	return &TimetableService{
		store:    store,
		subjects: subjects,
		prefs:    prefs,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg,
		dayStart: dayStart,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type planInput struct {
	subjects []planner.Subject
	prefs    planner.Preferences
	dayStart planner.Clock
}

// Generate builds a fresh week from the user's active subjects and
// preferences, replacing any stored timetable.
func (s *TimetableService) Generate(ctx context.Context, userID string, req dto.GenerateTimetableRequest) (*dto.TimetableResponse, error) {
	in, err := s.loadInput(ctx, userID)
	if err != nil {
		return nil, err
	}

	seed := s.cfg.Seed
	if req.Seed != nil {
		seed = *req.Seed
	}
	if seed == 0 {
		seed = s.now().UnixNano()
	}

	start := time.Now()
	gen := planner.NewGenerator(planner.Config{Seed: seed, DayStart: &in.dayStart})
	days := gen.Generate(in.subjects, in.prefs)
	if err := checkDays(days, in.prefs); err != nil {
		return nil, err
	}
	stampSessionIDs(days)
	coverage := planner.Summarize(in.subjects, in.prefs, days)
	s.metrics.ObservePlanner("generate", time.Since(start), coverage.Placed, coverage.Dropped, coverage.Saturated)

	tt := &models.Timetable{UserID: userID, Seed: &seed, GeneratedAt: s.now()}
	if err := encodeTimetable(tt, days, coverage); err != nil {
		return nil, err
	}
	dbStart := time.Now()
	err = s.store.WithUserLock(ctx, userID, func(exec sqlx.ExtContext) error {
		return s.store.Upsert(ctx, exec, tt)
	})
	s.metrics.ObserveDBQuery("timetable_upsert", time.Since(dbStart))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to save timetable")
	}

	resp := toTimetableResponse(tt, days, coverage)
	s.logger.Info("timetable generated",
		zap.String("user_id", userID),
		zap.Int("version", tt.Version),
		zap.Int("placed", coverage.Placed),
		zap.Int("dropped", coverage.Dropped),
		zap.Bool("saturated", coverage.Saturated),
	)
	s.storeCache(ctx, userID, resp)
	return resp, nil
}

// Get returns the stored timetable, served from cache when possible.
func (s *TimetableService) Get(ctx context.Context, userID string) (*dto.TimetableResponse, error) {
	resp, _, err := s.Lookup(ctx, userID)
	return resp, err
}

// Lookup is Get that also reports whether the cache served the response.
func (s *TimetableService) Lookup(ctx context.Context, userID string) (*dto.TimetableResponse, bool, error) {
	if s.cache != nil {
		var cached dto.TimetableResponse
		if hit, _ := s.cache.Get(ctx, TimetableCacheKey(userID), &cached); hit {
			return &cached, true, nil
		}
	}

	dbStart := time.Now()
	tt, err := s.store.FindByUser(ctx, nil, userID)
	s.metrics.ObserveDBQuery("timetable_find", time.Since(dbStart))
	if err != nil {
		return nil, false, notFoundOrInternal(err, "timetable not found", "failed to load timetable")
	}
	days, coverage, err := decodeTimetable(tt)
	if err != nil {
		return nil, false, err
	}
	resp := toTimetableResponse(tt, days, coverage)
	s.storeCache(ctx, userID, resp)
	return resp, false, nil
}

// RegenerateDay reshuffles one day of the stored timetable from the user's
// current subjects. Every other day is left untouched.
func (s *TimetableService) RegenerateDay(ctx context.Context, userID string, dayOfWeek int) (*dto.TimetableResponse, error) {
	if dayOfWeek < 0 || dayOfWeek >= planner.DaysPerWeek {
		return nil, appErrors.Clone(appErrors.ErrValidation, "day must be between 0 (Monday) and 6 (Sunday)")
	}
	in, err := s.loadInput(ctx, userID)
	if err != nil {
		return nil, err
	}

	var resp *dto.TimetableResponse
	dbStart := time.Now()
	err = s.store.WithUserLock(ctx, userID, func(exec sqlx.ExtContext) error {
		tt, err := s.store.FindByUser(ctx, exec, userID)
		if err != nil {
			return notFoundOrInternal(err, "generate a timetable first", "failed to load timetable")
		}
		days, _, err := decodeTimetable(tt)
		if err != nil {
			return err
		}
		idx := indexOfDay(days, dayOfWeek)
		if idx < 0 {
			return appErrors.Clone(appErrors.ErrNotFound, "day not found in timetable")
		}

		start := time.Now()
		seed := s.cfg.Seed
		if seed == 0 {
			seed = s.now().UnixNano()
		}
		gen := planner.NewGenerator(planner.Config{Seed: seed, DayStart: &in.dayStart})
		sessions := gen.RegenerateDay(days[idx], in.subjects, in.prefs)
		days[idx] = days[idx].WithSessions(sessions)
		if err := planner.CheckDay(days[idx], in.prefs); err != nil {
			return appErrors.Internal(err, "regenerated day is inconsistent")
		}
		stampSessionIDs(days[idx : idx+1])
		coverage := planner.Summarize(in.subjects, in.prefs, days)
		s.metrics.ObservePlanner("regenerate_day", time.Since(start), days[idx].StudyCount(), 0, false)

		if err := encodeTimetable(tt, days, coverage); err != nil {
			return err
		}
		if err := s.store.UpdateDays(ctx, exec, tt); err != nil {
			return appErrors.Internal(err, "failed to save timetable")
		}
		resp = toTimetableResponse(tt, days, coverage)
		return nil
	})
	s.metrics.ObserveDBQuery("timetable_regenerate_day", time.Since(dbStart))
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	s.storeCache(ctx, userID, resp)
	return resp, nil
}

// SetSessionCompleted marks a study session done or not done.
func (s *TimetableService) SetSessionCompleted(ctx context.Context, userID string, dayOfWeek int, sessionID string, completed bool) (*planner.Session, error) {
	if dayOfWeek < 0 || dayOfWeek >= planner.DaysPerWeek {
		return nil, appErrors.Clone(appErrors.ErrValidation, "day must be between 0 (Monday) and 6 (Sunday)")
	}

	var updated planner.Session
	dbStart := time.Now()
	err := s.store.WithUserLock(ctx, userID, func(exec sqlx.ExtContext) error {
		tt, err := s.store.FindByUser(ctx, exec, userID)
		if err != nil {
			return notFoundOrInternal(err, "timetable not found", "failed to load timetable")
		}
		days, coverage, err := decodeTimetable(tt)
		if err != nil {
			return err
		}
		idx := indexOfDay(days, dayOfWeek)
		if idx < 0 {
			return appErrors.Clone(appErrors.ErrNotFound, "day not found in timetable")
		}

		sessions := days[idx].Sessions
		pos := -1
		for i := range sessions {
			if sessions[i].ID == sessionID {
				pos = i
				break
			}
		}
		if pos < 0 {
			return appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		if !sessions[pos].IsStudy() {
			return appErrors.ErrBreakNotCompletable
		}
		if sessions[pos].Completed == completed {
			updated = sessions[pos]
			return nil
		}
		sessions[pos].Completed = completed
		updated = sessions[pos]

		if err := encodeTimetable(tt, days, coverage); err != nil {
			return err
		}
		if err := s.store.UpdateDays(ctx, exec, tt); err != nil {
			return appErrors.Internal(err, "failed to save timetable")
		}
		return nil
	})
	s.metrics.ObserveDBQuery("timetable_set_completed", time.Since(dbStart))
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	s.invalidate(ctx, userID)
	return &updated, nil
}

// Progress reports planned against completed study time per day and for the week.
func (s *TimetableService) Progress(ctx context.Context, userID string) (*models.WeekProgress, error) {
	tt, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress := ComputeProgress(tt.Days)
	return &progress, nil
}

// ComputeProgress aggregates completion of study sessions.
func ComputeProgress(days []planner.Day) models.WeekProgress {
	week := models.WeekProgress{Days: make([]models.DayProgress, 0, len(days))}
	for _, d := range days {
		dp := models.DayProgress{DayOfWeek: d.DayOfWeek, DayName: d.DayName}
		for _, session := range d.Sessions {
			if !session.IsStudy() {
				continue
			}
			dp.PlannedSessions++
			dp.PlannedMinutes += session.Duration
			if session.Completed {
				dp.CompletedSessions++
				dp.CompletedMinutes += session.Duration
			}
		}
		dp.Percent = percent(dp.CompletedMinutes, dp.PlannedMinutes)
		week.PlannedMinutes += dp.PlannedMinutes
		week.CompletedMinutes += dp.CompletedMinutes
		week.Days = append(week.Days, dp)
	}
	week.Percent = percent(week.CompletedMinutes, week.PlannedMinutes)
	return week
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

func (s *TimetableService) loadInput(ctx context.Context, userID string) (*planInput, error) {
	subjects, err := s.subjects.ListActive(ctx, userID)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	if len(subjects) == 0 {
		return nil, appErrors.ErrNoActiveSubjects
	}
	pref, err := s.prefs.Get(ctx, userID)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	prefs := pref.ToPlanner()
	if err := ValidatePreferences(prefs); err != nil {
		return nil, err
	}

	dayStart := s.dayStart
	if pref.DayStart != "" {
		parsed, err := planner.ParseClock(pref.DayStart)
		if err != nil {
			s.logger.Warn("ignoring invalid stored day start", zap.String("user_id", userID), zap.String("day_start", pref.DayStart))
		} else {
			dayStart = parsed
		}
	}
	return &planInput{subjects: models.PlannerSubjects(subjects), prefs: prefs, dayStart: dayStart}, nil
}

func (s *TimetableService) storeCache(ctx context.Context, userID string, resp *dto.TimetableResponse) {
	if s.cache == nil || resp == nil {
		return
	}
	if err := s.cache.Set(ctx, TimetableCacheKey(userID), resp, s.cfg.CacheTTL); err != nil {
		s.logger.Debug("timetable cache write skipped", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *TimetableService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, TimetableCacheKey(userID)); err != nil {
		s.logger.Warn("failed to invalidate timetable cache", zap.String("user_id", userID), zap.Error(err))
	}
}

func checkDays(days []planner.Day, prefs planner.Preferences) error {
	for _, d := range days {
		if err := planner.CheckDay(d, prefs); err != nil {
			return appErrors.Internal(err, "generated timetable is inconsistent")
		}
	}
	return nil
}

// stampSessionIDs gives every session without an ID a fresh one.
func stampSessionIDs(days []planner.Day) {
	for i := range days {
		for j := range days[i].Sessions {
			if days[i].Sessions[j].ID == "" {
				days[i].Sessions[j].ID = uuid.NewString()
			}
		}
	}
}

func indexOfDay(days []planner.Day, dayOfWeek int) int {
	for i, d := range days {
		if d.DayOfWeek == dayOfWeek {
			return i
		}
	}
	return -1
}

func encodeTimetable(tt *models.Timetable, days []planner.Day, coverage planner.Coverage) error {
	if err := tt.EncodeDays(days); err != nil {
		return appErrors.Internal(err, "failed to encode timetable")
	}
	if err := tt.EncodeCoverage(coverage); err != nil {
		return appErrors.Internal(err, "failed to encode timetable")
	}
	return nil
}

func decodeTimetable(tt *models.Timetable) ([]planner.Day, planner.Coverage, error) {
	days, err := tt.DecodeDays()
	if err != nil {
		return nil, planner.Coverage{}, appErrors.Internal(err, "stored timetable is corrupt")
	}
	coverage, err := tt.DecodeCoverage()
	if err != nil {
		return nil, planner.Coverage{}, appErrors.Internal(err, "stored timetable is corrupt")
	}
	return days, coverage, nil
}

func toTimetableResponse(tt *models.Timetable, days []planner.Day, coverage planner.Coverage) *dto.TimetableResponse {
	return &dto.TimetableResponse{
		ID:          tt.ID,
		Version:     tt.Version,
		GeneratedAt: tt.GeneratedAt,
		Days:        days,
		Coverage:    coverage,
	}
}

func notFoundOrInternal(err error, notFound, internal string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return appErrors.Internal(err, internal)
}
