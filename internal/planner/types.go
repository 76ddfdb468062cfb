package planner

// Difficulty grades how demanding a subject is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// SessionType distinguishes study blocks from breaks.
type SessionType string

const (
	SessionStudy SessionType = "study"
	SessionBreak SessionType = "break"
)

// BreakColor is the neutral colour assigned to every break session.
const BreakColor = "#9CA3AF"

// DaysPerWeek is the number of days the allocator always returns.
const DaysPerWeek = 7

var dayNames = [DaysPerWeek]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// DayName returns the weekday name for a Monday-first index, or "" when out of range.
func DayName(dayOfWeek int) string {
	if dayOfWeek < 0 || dayOfWeek >= DaysPerWeek {
		return ""
	}
	return dayNames[dayOfWeek]
}

// Subject is the scheduler's view of a subject the learner studies.
type Subject struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	WeeklyHours  float64    `json:"weeklyHours"`
	Difficulty   Difficulty `json:"difficulty"`
	ExamPriority int        `json:"examPriority"`
	Color        string     `json:"color"`
}

// Preferences controls daily budget and block lengths.
type Preferences struct {
	DailyHours      float64 `json:"dailyHours"`
	SessionDuration int     `json:"sessionDuration"`
	BreakDuration   int     `json:"breakDuration"`
}

// DailyMinutes returns the daily study budget in minutes.
func (p Preferences) DailyMinutes() int {
	return int(p.DailyHours * 60)
}

// Session is a placed, time-stamped block within a day.
type Session struct {
	ID          string      `json:"id,omitempty"`
	Type        SessionType `json:"type"`
	SubjectID   string      `json:"subjectId,omitempty"`
	SubjectName string      `json:"subjectName,omitempty"`
	Color       string      `json:"color"`
	Difficulty  Difficulty  `json:"difficulty,omitempty"`
	Duration    int         `json:"duration"`
	StartTime   string      `json:"startTime"`
	EndTime     string      `json:"endTime"`
	Completed   bool        `json:"completed"`
}

// IsStudy reports whether the session is a study block.
func (s Session) IsStudy() bool {
	return s.Type == SessionStudy
}

// Day is one weekday of a timetable. Totals are derived from Sessions; build
// days through NewDay or WithSessions so they never go stale.
type Day struct {
	DayOfWeek         int       `json:"dayOfWeek"`
	DayName           string    `json:"dayName"`
	Sessions          []Session `json:"sessions"`
	TotalStudyMinutes int       `json:"totalStudyMinutes"`
	TotalBreakMinutes int       `json:"totalBreakMinutes"`
}

// NewDay builds a day with totals computed from sessions.
func NewDay(dayOfWeek int, sessions []Session) Day {
	d := Day{DayOfWeek: dayOfWeek, DayName: DayName(dayOfWeek)}
	return d.WithSessions(sessions)
}

// WithSessions returns a copy of the day holding sessions, with totals recomputed.
func (d Day) WithSessions(sessions []Session) Day {
	if sessions == nil {
		sessions = []Session{}
	}
	study, rest := sumDurations(sessions)
	d.Sessions = sessions
	d.TotalStudyMinutes = study
	d.TotalBreakMinutes = rest
	return d
}

// Valid reports whether the stored totals match the session list.
func (d Day) Valid() bool {
	study, rest := sumDurations(d.Sessions)
	return study == d.TotalStudyMinutes && rest == d.TotalBreakMinutes
}

// StudySessions returns the study sessions of the day in temporal order.
func (d Day) StudySessions() []Session {
	out := make([]Session, 0, len(d.Sessions))
	for _, s := range d.Sessions {
		if s.IsStudy() {
			out = append(out, s)
		}
	}
	return out
}

// StudyCount returns the number of study sessions on the day.
func (d Day) StudyCount() int {
	n := 0
	for _, s := range d.Sessions {
		if s.IsStudy() {
			n++
		}
	}
	return n
}

func sumDurations(sessions []Session) (study, rest int) {
	for _, s := range sessions {
		switch s.Type {
		case SessionStudy:
			study += s.Duration
		case SessionBreak:
			rest += s.Duration
		}
	}
	return study, rest
}

// sessionToken is one not-yet-placed study block.
type sessionToken struct {
	subject  Subject
	priority float64
}
