package planner

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidDay is wrapped by every CheckDay failure.
var ErrInvalidDay = errors.New("planner: invalid day layout")

// Relayout rebuilds a day from its study sessions: harder sessions first
// (stable among equals), contiguous from dayStart, one break between each
// pair of study sessions and none after the last. Existing breaks and
// timestamps are discarded.
func Relayout(d Day, prefs Preferences, dayStart Clock) Day {
	studies := d.StudySessions()
	sort.SliceStable(studies, func(i, j int) bool {
		return DifficultyWeight(studies[i].Difficulty) > DifficultyWeight(studies[j].Difficulty)
	})
	return d.WithSessions(layout(studies, prefs.BreakDuration, dayStart))
}

// layout timestamps studies in order from start with interleaved breaks.
func layout(studies []Session, breakDuration int, start Clock) []Session {
	if len(studies) == 0 {
		return []Session{}
	}
	sessions := make([]Session, 0, len(studies)*2-1)
	cursor := start
	for i, s := range studies {
		s.StartTime = cursor.String()
		cursor = AddMinutes(cursor, s.Duration)
		s.EndTime = cursor.String()
		sessions = append(sessions, s)
		if i == len(studies)-1 {
			break
		}
		rest := breakSession(breakDuration)
		rest.StartTime = cursor.String()
		cursor = AddMinutes(cursor, rest.Duration)
		rest.EndTime = cursor.String()
		sessions = append(sessions, rest)
	}
	return sessions
}

// CheckDay verifies the structural invariants of a laid-out day.
func CheckDay(d Day, prefs Preferences) error {
	if d.DayOfWeek < 0 || d.DayOfWeek >= DaysPerWeek {
		return fmt.Errorf("%w: day index %d out of range", ErrInvalidDay, d.DayOfWeek)
	}
	if !d.Valid() {
		return fmt.Errorf("%w: %s totals do not match sessions", ErrInvalidDay, d.DayName)
	}
	if limit := MaxSessionsPerDay(prefs); d.StudyCount() > limit {
		return fmt.Errorf("%w: %s holds %d study sessions, capacity %d", ErrInvalidDay, d.DayName, d.StudyCount(), limit)
	}
	for i, s := range d.Sessions {
		if s.Type != SessionStudy && s.Type != SessionBreak {
			return fmt.Errorf("%w: %s session %d has type %q", ErrInvalidDay, d.DayName, i, s.Type)
		}
		if s.Type == SessionBreak {
			if i == 0 || i == len(d.Sessions)-1 {
				return fmt.Errorf("%w: %s has a break at position %d", ErrInvalidDay, d.DayName, i)
			}
			if !d.Sessions[i-1].IsStudy() || !d.Sessions[i+1].IsStudy() {
				return fmt.Errorf("%w: %s break %d is not between study sessions", ErrInvalidDay, d.DayName, i)
			}
		}
		if i > 0 && d.Sessions[i-1].EndTime != s.StartTime {
			return fmt.Errorf("%w: %s session %d starts at %s, previous ends at %s", ErrInvalidDay, d.DayName, i, s.StartTime, d.Sessions[i-1].EndTime)
		}
	}
	return nil
}
