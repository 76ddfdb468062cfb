package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	cases := []struct {
		name    string
		subject Subject
		want    float64
	}{
		{"hard with exam", Subject{WeeklyHours: 5, Difficulty: DifficultyHard, ExamPriority: 5}, 2 * 2 * 0.5},
		{"medium no exam", Subject{WeeklyHours: 10, Difficulty: DifficultyMedium}, 1.5},
		{"easy saturated hours", Subject{WeeklyHours: 40, Difficulty: DifficultyEasy, ExamPriority: 10}, 1 * 3 * 2},
		{"unknown difficulty falls back", Subject{WeeklyHours: 10, Difficulty: "brutal"}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Score(tc.subject), 1e-9)
		})
	}
}

func TestScoreHoursSaturateAtTwenty(t *testing.T) {
	at20 := Score(Subject{WeeklyHours: 20, Difficulty: DifficultyHard})
	at35 := Score(Subject{WeeklyHours: 35, Difficulty: DifficultyHard})
	assert.Equal(t, at20, at35)
	assert.Greater(t, at20, Score(Subject{WeeklyHours: 19, Difficulty: DifficultyHard}))
}

func TestSessionsNeededRoundsUp(t *testing.T) {
	assert.Equal(t, 12, SessionsNeeded(Subject{WeeklyHours: 5}, 25))
	assert.Equal(t, 7, SessionsNeeded(Subject{WeeklyHours: 5}, 45))
	assert.Equal(t, 5, SessionsNeeded(Subject{WeeklyHours: 5}, 60))
	assert.Equal(t, 1, SessionsNeeded(Subject{WeeklyHours: 1}, 90))
	assert.Equal(t, 0, SessionsNeeded(Subject{WeeklyHours: 0}, 25))
	assert.Equal(t, 0, SessionsNeeded(Subject{WeeklyHours: 3}, 0))
}

func TestMaxSessionsPerDay(t *testing.T) {
	assert.Equal(t, 9, MaxSessionsPerDay(Preferences{DailyHours: 4, SessionDuration: 25}))
	assert.Equal(t, 2, MaxSessionsPerDay(Preferences{DailyHours: 1.5, SessionDuration: 45}))
	assert.Equal(t, 0, MaxSessionsPerDay(Preferences{DailyHours: 0.5, SessionDuration: 45}))
	assert.Equal(t, 0, MaxSessionsPerDay(Preferences{DailyHours: 4}))
}
