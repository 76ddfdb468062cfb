package planner

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed int64) *Generator {
	return NewGenerator(Config{Rand: rand.New(rand.NewSource(seed))})
}

func mathOnly() []Subject {
	return []Subject{{ID: "math", Name: "Math", WeeklyHours: 5, Difficulty: DifficultyHard, ExamPriority: 5, Color: "#EF4444"}}
}

func pomodoro() Preferences {
	return Preferences{DailyHours: 4, SessionDuration: 25, BreakDuration: 5}
}

func assertWellFormed(t *testing.T, days []Day, prefs Preferences) {
	t.Helper()
	require.Len(t, days, DaysPerWeek)
	for i, d := range days {
		assert.Equal(t, i, d.DayOfWeek)
		assert.Equal(t, DayName(i), d.DayName)
		assert.NotNil(t, d.Sessions)
		assert.NoError(t, CheckDay(d, prefs))
	}
}

func TestGenerateSingleSubjectSpreadsAcrossWeek(t *testing.T) {
	prefs := pomodoro()
	days := seeded(1).Generate(mathOnly(), prefs)
	assertWellFormed(t, days, prefs)

	placed := 0
	for i, d := range days {
		want := 2
		if i >= 5 {
			want = 1
		}
		assert.Equal(t, want, d.StudyCount(), d.DayName)
		placed += d.StudyCount()
	}
	assert.Equal(t, 12, placed)

	monday := days[0]
	require.Len(t, monday.Sessions, 3)
	assert.Equal(t, SessionStudy, monday.Sessions[0].Type)
	assert.Equal(t, "8:00 AM", monday.Sessions[0].StartTime)
	assert.Equal(t, "8:25 AM", monday.Sessions[0].EndTime)
	assert.Equal(t, SessionBreak, monday.Sessions[1].Type)
	assert.Equal(t, BreakColor, monday.Sessions[1].Color)
	assert.Equal(t, "8:30 AM", monday.Sessions[1].EndTime)
	assert.Equal(t, "8:30 AM", monday.Sessions[2].StartTime)
	assert.Equal(t, "8:55 AM", monday.Sessions[2].EndTime)
	assert.Equal(t, 50, monday.TotalStudyMinutes)
	assert.Equal(t, 5, monday.TotalBreakMinutes)

	sunday := days[6]
	require.Len(t, sunday.Sessions, 1)
	assert.Equal(t, "Math", sunday.Sessions[0].SubjectName)
	assert.Equal(t, "#EF4444", sunday.Sessions[0].Color)
	assert.Equal(t, 0, sunday.TotalBreakMinutes)
}

func TestGenerateIsReproducibleWithSeed(t *testing.T) {
	subjects := []Subject{
		{ID: "a", Name: "Algebra", WeeklyHours: 6, Difficulty: DifficultyMedium, ExamPriority: 3},
		{ID: "b", Name: "Biology", WeeklyHours: 6, Difficulty: DifficultyMedium, ExamPriority: 3},
		{ID: "c", Name: "Chemistry", WeeklyHours: 4, Difficulty: DifficultyHard},
	}
	prefs := Preferences{DailyHours: 2, SessionDuration: 45, BreakDuration: 10}

	first := NewGenerator(Config{Seed: 42}).Generate(subjects, prefs)
	second := NewGenerator(Config{Seed: 42}).Generate(subjects, prefs)
	assert.Equal(t, first, second)
	assertWellFormed(t, first, prefs)
}

func TestGenerateOrdersHarderSubjectsFirst(t *testing.T) {
	subjects := []Subject{
		{ID: "e", Name: "Art", WeeklyHours: 7, Difficulty: DifficultyEasy, ExamPriority: 10},
		{ID: "m", Name: "History", WeeklyHours: 7, Difficulty: DifficultyMedium},
		{ID: "h", Name: "Physics", WeeklyHours: 7, Difficulty: DifficultyHard},
	}
	prefs := Preferences{DailyHours: 3, SessionDuration: 60, BreakDuration: 10}

	for seed := int64(1); seed <= 20; seed++ {
		days := seeded(seed).Generate(subjects, prefs)
		assertWellFormed(t, days, prefs)
		for _, d := range days {
			studies := d.StudySessions()
			for i := 1; i < len(studies); i++ {
				assert.GreaterOrEqual(t, DifficultyWeight(studies[i-1].Difficulty), DifficultyWeight(studies[i].Difficulty))
			}
		}
	}
}

func TestGenerateHigherPriorityClaimsCapacityFirst(t *testing.T) {
	subjects := []Subject{
		{ID: "low", Name: "Music", WeeklyHours: 10, Difficulty: DifficultyEasy},
		{ID: "high", Name: "Calculus", WeeklyHours: 10, Difficulty: DifficultyHard, ExamPriority: 10},
	}
	prefs := Preferences{DailyHours: 1, SessionDuration: 60, BreakDuration: 10}

	for seed := int64(1); seed <= 25; seed++ {
		days := seeded(seed).Generate(subjects, prefs)
		assertWellFormed(t, days, prefs)
		cov := Summarize(subjects, prefs, days)
		require.Len(t, cov.Subjects, 2)
		assert.Equal(t, "high", cov.Subjects[0].SubjectID)
		assert.Equal(t, 7, cov.Subjects[0].Placed)
		assert.Equal(t, 0, cov.Subjects[1].Placed)
		assert.Equal(t, 10, cov.Subjects[1].Dropped)
		assert.True(t, cov.Saturated)
	}
}

func TestGenerateFillsRemainingCapacityWithLowerPriority(t *testing.T) {
	subjects := []Subject{
		{ID: "high", Name: "Calculus", WeeklyHours: 3, Difficulty: DifficultyHard, ExamPriority: 10},
		{ID: "low", Name: "Music", WeeklyHours: 10, Difficulty: DifficultyEasy},
	}
	prefs := Preferences{DailyHours: 1, SessionDuration: 60, BreakDuration: 10}

	cov := Summarize(subjects, prefs, seeded(7).Generate(subjects, prefs))
	assert.Equal(t, 3, cov.Subjects[0].Placed)
	assert.Equal(t, 4, cov.Subjects[1].Placed)
	assert.Equal(t, 6, cov.Dropped)
	assert.Equal(t, 7, cov.Capacity)
}

func TestGenerateRandomisesEqualPriorityTies(t *testing.T) {
	subjects := []Subject{
		{ID: "a", Name: "French", WeeklyHours: 7, Difficulty: DifficultyMedium, ExamPriority: 2},
		{ID: "b", Name: "Spanish", WeeklyHours: 7, Difficulty: DifficultyMedium, ExamPriority: 2},
	}
	prefs := Preferences{DailyHours: 1, SessionDuration: 60, BreakDuration: 5}

	outcomes := make(map[int]struct{})
	for seed := int64(1); seed <= 100; seed++ {
		cov := Summarize(subjects, prefs, seeded(seed).Generate(subjects, prefs))
		assert.Equal(t, 7, cov.Placed)
		outcomes[cov.Subjects[0].Placed] = struct{}{}
	}
	assert.Greater(t, len(outcomes), 1)
}

func TestGenerateWithZeroCapacityReturnsEmptyWeek(t *testing.T) {
	prefs := Preferences{DailyHours: 0.25, SessionDuration: 25, BreakDuration: 5}
	days := seeded(3).Generate(mathOnly(), prefs)
	require.Len(t, days, DaysPerWeek)
	for _, d := range days {
		assert.Empty(t, d.Sessions)
		assert.Zero(t, d.TotalStudyMinutes)
		assert.Zero(t, d.TotalBreakMinutes)
	}
}

func TestGenerateWithoutSubjectsReturnsEmptyWeek(t *testing.T) {
	days := seeded(3).Generate(nil, pomodoro())
	assertWellFormed(t, days, pomodoro())
	for _, d := range days {
		assert.Empty(t, d.Sessions)
	}
}

func TestGenerateWrapsPastMidnight(t *testing.T) {
	subjects := []Subject{{ID: "x", Name: "Thesis", WeeklyHours: 21, Difficulty: DifficultyHard}}
	prefs := Preferences{DailyHours: 3, SessionDuration: 60, BreakDuration: 10}
	start := NewClock(22, 0)
	g := NewGenerator(Config{Seed: 9, DayStart: &start})

	days := g.Generate(subjects, prefs)
	assertWellFormed(t, days, prefs)

	monday := days[0].Sessions
	require.Len(t, monday, 5)
	assert.Equal(t, "10:00 PM", monday[0].StartTime)
	assert.Equal(t, "11:10 PM", monday[2].StartTime)
	assert.Equal(t, "12:10 AM", monday[2].EndTime)
	assert.Equal(t, "1:20 AM", monday[4].EndTime)
}

func TestPickDayPrefersLowestIndexOnTies(t *testing.T) {
	days := make([]Day, DaysPerWeek)
	for i := range days {
		days[i] = NewDay(i, nil)
	}
	assert.Equal(t, 0, pickDay(days, 2))

	days[0] = NewDay(0, []Session{studySession(mathOnly()[0], 25)})
	assert.Equal(t, 1, pickDay(days, 2))

	for i := range days {
		days[i] = NewDay(i, []Session{studySession(mathOnly()[0], 25)})
	}
	assert.Equal(t, -1, pickDay(days, 1))
}

func TestRegenerateDayUsesEachSubjectOnce(t *testing.T) {
	subjects := []Subject{
		{ID: "a", Name: "Art", Difficulty: DifficultyEasy},
		{ID: "b", Name: "Biology", Difficulty: DifficultyMedium},
		{ID: "c", Name: "Chemistry", Difficulty: DifficultyHard},
	}
	prefs := Preferences{DailyHours: 4, SessionDuration: 60, BreakDuration: 15}

	sessions := seeded(5).RegenerateDay(NewDay(2, nil), subjects, prefs)
	require.Len(t, sessions, 5)

	seen := make(map[string]int)
	for i, s := range sessions {
		if i%2 == 1 {
			assert.Equal(t, SessionBreak, s.Type)
			assert.Equal(t, 15, s.Duration)
			continue
		}
		assert.Equal(t, SessionStudy, s.Type)
		seen[s.SubjectID]++
	}
	assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1}, seen)
	assert.Equal(t, "8:00 AM", sessions[0].StartTime)
	assert.Equal(t, "11:30 AM", sessions[4].EndTime)

	day := NewDay(2, sessions)
	assert.NoError(t, CheckDay(day, prefs))
}

func TestRegenerateDayCapsAtDailyCapacity(t *testing.T) {
	subjects := []Subject{
		{ID: "a", Name: "Art"}, {ID: "b", Name: "Biology"}, {ID: "c", Name: "Chemistry"},
		{ID: "d", Name: "Drama"}, {ID: "e", Name: "Economics"},
	}
	prefs := Preferences{DailyHours: 1.5, SessionDuration: 45, BreakDuration: 5}

	sessions := seeded(11).RegenerateDay(NewDay(0, nil), subjects, prefs)
	day := NewDay(0, sessions)
	assert.Equal(t, 2, day.StudyCount())
	assert.Len(t, sessions, 3)
	assert.NotEqual(t, sessions[0].SubjectID, sessions[2].SubjectID)
}

func TestRegenerateDayEdgeCases(t *testing.T) {
	g := seeded(1)
	assert.Empty(t, g.RegenerateDay(NewDay(0, nil), nil, pomodoro()))
	assert.NotNil(t, g.RegenerateDay(NewDay(0, nil), nil, pomodoro()))
	assert.Empty(t, g.RegenerateDay(Day{DayOfWeek: 7}, mathOnly(), pomodoro()))
	assert.Empty(t, g.RegenerateDay(NewDay(0, nil), mathOnly(), Preferences{DailyHours: 0.25, SessionDuration: 25}))
}

func TestGenerateStartsAtMidnight(t *testing.T) {
	subjects := []Subject{{ID: "m", Name: "Math", WeeklyHours: 1, Difficulty: DifficultyHard}}
	prefs := Preferences{DailyHours: 1, SessionDuration: 60, BreakDuration: 10}
	midnight := NewClock(0, 0)
	g := NewGenerator(Config{Seed: 3, DayStart: &midnight})

	assert.Equal(t, midnight, g.DayStart())
	days := g.Generate(subjects, prefs)
	require.Len(t, days[0].Sessions, 1)
	assert.Equal(t, "12:00 AM", days[0].Sessions[0].StartTime)
	assert.Equal(t, "1:00 AM", days[0].Sessions[0].EndTime)

	assert.Equal(t, DefaultDayStart, NewGenerator(Config{Seed: 3}).DayStart())
}
