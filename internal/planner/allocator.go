package planner

import (
	"math/rand"
	"sort"
	"sync"
	"time"
)

// Config configures a Generator.
// Zero values produce defaults; see field comments.
type Config struct {
	Seed     int64      // zero → seeded from the wall clock
	Rand     *rand.Rand // overrides Seed when set
	DayStart *Clock     // nil → DefaultDayStart
}

// Generator lays out weekly timetables. The only non-determinism is the
// shuffle of equal-priority work, drawn from the configured random source.
// A Generator is safe for concurrent use.
type Generator struct {
	mu       sync.Mutex
	rng      *rand.Rand
	dayStart Clock
}

// NewGenerator builds a Generator from cfg.
func NewGenerator(cfg Config) *Generator {
	rng := cfg.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	start := DefaultDayStart
	if cfg.DayStart != nil {
		start = *cfg.DayStart
	}
	return &Generator{rng: rng, dayStart: start}
}

// DayStart returns the clock every day's layout starts from.
func (g *Generator) DayStart() Clock {
	return g.dayStart
}

// Generate builds a seven-day timetable for subjects under prefs.
//
// Session tokens are shuffled and then stable-sorted by descending priority,
// so higher-priority subjects always claim capacity first while ties vary
// between calls. Each token goes to the least-loaded day still under
// capacity, preferring the earliest weekday on ties. Tokens that find no
// room are dropped; use Summarize to see how many.
func (g *Generator) Generate(subjects []Subject, prefs Preferences) []Day {
	maxPerDay := MaxSessionsPerDay(prefs)
	pool := buildPool(rankSubjects(subjects), prefs.SessionDuration)

	g.shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].priority > pool[j].priority
	})

	days := make([]Day, DaysPerWeek)
	for i := range days {
		days[i] = NewDay(i, nil)
	}
	for _, token := range pool {
		idx := pickDay(days, maxPerDay)
		if idx < 0 {
			continue
		}
		days[idx] = g.place(days[idx], token, prefs, maxPerDay)
	}
	for i := range days {
		days[i] = Relayout(days[i], prefs, g.dayStart)
	}
	return days
}

// RegenerateDay reshuffles the study sessions of a single day from the live
// subject list, ignoring weekly hours and priority. Each subject appears at
// most once. The returned sessions replace day's sessions; other days are
// not involved.
func (g *Generator) RegenerateDay(day Day, subjects []Subject, prefs Preferences) []Session {
	if len(subjects) == 0 || day.DayOfWeek < 0 || day.DayOfWeek >= DaysPerWeek {
		return []Session{}
	}
	shuffled := make([]Subject, len(subjects))
	copy(shuffled, subjects)
	g.shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	slots := MaxSessionsPerDay(prefs)
	if slots > len(shuffled) {
		slots = len(shuffled)
	}
	studies := make([]Session, 0, slots)
	for i := 0; i < slots; i++ {
		studies = append(studies, studySession(shuffled[i%len(shuffled)], prefs.SessionDuration))
	}
	return layout(studies, prefs.BreakDuration, g.dayStart)
}

func (g *Generator) shuffle(n int, swap func(i, j int)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rng.Shuffle(n, swap)
}

// place appends a provisional study block, and a break when more study slots
// remain. Relayout later recomputes every timestamp.
func (g *Generator) place(day Day, token sessionToken, prefs Preferences, maxPerDay int) Day {
	count := day.StudyCount()
	cursor := AddMinutes(g.dayStart, day.TotalStudyMinutes+day.TotalBreakMinutes)

	sessions := make([]Session, len(day.Sessions), len(day.Sessions)+2)
	copy(sessions, day.Sessions)

	study := studySession(token.subject, prefs.SessionDuration)
	study.StartTime = cursor.String()
	cursor = AddMinutes(cursor, study.Duration)
	study.EndTime = cursor.String()
	sessions = append(sessions, study)

	if count < maxPerDay-1 {
		rest := breakSession(prefs.BreakDuration)
		rest.StartTime = cursor.String()
		rest.EndTime = AddMinutes(cursor, rest.Duration).String()
		sessions = append(sessions, rest)
	}
	return day.WithSessions(sessions)
}

// rankSubjects orders subjects by descending priority, keeping input order on ties.
func rankSubjects(subjects []Subject) []Subject {
	ranked := make([]Subject, len(subjects))
	copy(ranked, subjects)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(ranked[i]) > Score(ranked[j])
	})
	return ranked
}

func buildPool(subjects []Subject, sessionDuration int) []sessionToken {
	var pool []sessionToken
	for _, s := range subjects {
		priority := Score(s)
		for i := SessionsNeeded(s, sessionDuration); i > 0; i-- {
			pool = append(pool, sessionToken{subject: s, priority: priority})
		}
	}
	return pool
}

// pickDay returns the index of the day with the fewest study sessions that is
// still under capacity, or -1 when every day is full. Ties go to the lowest index.
func pickDay(days []Day, maxPerDay int) int {
	best, bestCount := -1, 0
	for i, d := range days {
		count := d.StudyCount()
		if count >= maxPerDay {
			continue
		}
		if best < 0 || count < bestCount {
			best, bestCount = i, count
		}
	}
	return best
}

func studySession(s Subject, duration int) Session {
	return Session{
		Type:        SessionStudy,
		SubjectID:   s.ID,
		SubjectName: s.Name,
		Color:       s.Color,
		Difficulty:  s.Difficulty,
		Duration:    duration,
	}
}

func breakSession(duration int) Session {
	return Session{
		Type:     SessionBreak,
		Color:    BreakColor,
		Duration: duration,
	}
}
