package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/dto"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/models"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/planner"
	appErrors "github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/errors"
)

type preferenceRepoStub struct {
	prefs   map[string]models.StudyPreference
	findErr error
}

func (p *preferenceRepoStub) FindByUser(ctx context.Context, userID string) (*models.StudyPreference, error) {
	if p.findErr != nil {
		return nil, p.findErr
	}
	pref, ok := p.prefs[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &pref, nil
}

func (p *preferenceRepoStub) Upsert(ctx context.Context, pref *models.StudyPreference) error {
	if p.prefs == nil {
		p.prefs = map[string]models.StudyPreference{}
	}
	p.prefs[pref.UserID] = *pref
	return nil
}

func TestPreferenceServiceDefaults(t *testing.T) {
	svc := NewPreferenceService(&preferenceRepoStub{}, nil, nil, nil)

	pref, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, pref.DailyHours)
	assert.Equal(t, 45, pref.SessionDuration)
	assert.Equal(t, 10, pref.BreakDuration)
}

func TestPreferenceServiceGetError(t *testing.T) {
	svc := NewPreferenceService(&preferenceRepoStub{findErr: errors.New("db down")}, nil, nil, nil)

	_, err := svc.Get(context.Background(), "u1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestPreferenceServiceUpdate(t *testing.T) {
	repo := &preferenceRepoStub{}
	cache := &invalidatorStub{}
	svc := NewPreferenceService(repo, cache, nil, nil)

	pref, err := svc.Update(context.Background(), "u1", dto.UpdatePreferenceRequest{DailyHours: 2, SessionDuration: 25, BreakDuration: 5, DayStart: "07:30"})
	require.NoError(t, err)
	assert.Equal(t, 25, pref.SessionDuration)
	assert.Equal(t, "07:30", repo.prefs["u1"].DayStart)
	assert.Equal(t, []string{TimetableCacheKey("u1")}, cache.keys)
}

func TestPreferenceServiceUpdateRejectsInvalid(t *testing.T) {
	svc := NewPreferenceService(&preferenceRepoStub{}, nil, nil, nil)

	cases := []dto.UpdatePreferenceRequest{
		{DailyHours: 0, SessionDuration: 45, BreakDuration: 10},
		{DailyHours: 13, SessionDuration: 45, BreakDuration: 10},
		{DailyHours: 4, SessionDuration: 30, BreakDuration: 10},
		{DailyHours: 4, SessionDuration: 45, BreakDuration: 7},
		{DailyHours: 0.5, SessionDuration: 45, BreakDuration: 10},
		{DailyHours: 4, SessionDuration: 45, BreakDuration: 10, DayStart: "25:00"},
	}
	for _, req := range cases {
		_, err := svc.Update(context.Background(), "u1", req)
		require.Error(t, err, "%+v", req)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}

func TestValidatePreferences(t *testing.T) {
	assert.NoError(t, ValidatePreferences(planner.Preferences{DailyHours: 1, SessionDuration: 60, BreakDuration: 0}))
	assert.Error(t, ValidatePreferences(planner.Preferences{DailyHours: 1, SessionDuration: 0}))
	assert.Error(t, ValidatePreferences(planner.Preferences{DailyHours: 1, SessionDuration: 60, BreakDuration: -1}))
	assert.Error(t, ValidatePreferences(planner.Preferences{DailyHours: 0.5, SessionDuration: 45}))
}
