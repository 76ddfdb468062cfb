package planner

import "math"

// DifficultyWeight maps a difficulty to its scheduling weight. Unknown values weigh 1.
func DifficultyWeight(d Difficulty) float64 {
	switch d {
	case DifficultyHard:
		return 2
	case DifficultyMedium:
		return 1.5
	default:
		return 1
	}
}

// Score computes the scheduling priority of a subject. Higher scores are placed first.
// The hours component saturates at 20 weekly hours.
func Score(s Subject) float64 {
	examWeight := 1 + 0.2*float64(s.ExamPriority)
	hoursWeight := math.Min(s.WeeklyHours/10, 2)
	return DifficultyWeight(s.Difficulty) * examWeight * hoursWeight
}

// SessionsNeeded returns how many session units cover the subject's weekly hours.
// Partial remainders round up to a full session.
func SessionsNeeded(s Subject, sessionDuration int) int {
	if s.WeeklyHours <= 0 || sessionDuration <= 0 {
		return 0
	}
	return int(math.Ceil(s.WeeklyHours * 60 / float64(sessionDuration)))
}

// MaxSessionsPerDay is the per-day study capacity for the preferences.
func MaxSessionsPerDay(p Preferences) int {
	if p.SessionDuration <= 0 || p.DailyHours <= 0 {
		return 0
	}
	return int(math.Floor(p.DailyHours * 60 / float64(p.SessionDuration)))
}
