package planner

// SubjectCoverage compares what a subject needed with what was placed.
type SubjectCoverage struct {
	SubjectID string  `json:"subjectId"`
	Name      string  `json:"name"`
	Priority  float64 `json:"priority"`
	Needed    int     `json:"needed"`
	Placed    int     `json:"placed"`
	Dropped   int     `json:"dropped"`
}

// Coverage summarises how much of the requested weekly load fits the timetable.
type Coverage struct {
	Subjects  []SubjectCoverage `json:"subjects"`
	Needed    int               `json:"needed"`
	Placed    int               `json:"placed"`
	Dropped   int               `json:"dropped"`
	Capacity  int               `json:"capacity"`
	Saturated bool              `json:"saturated"`
}

// Summarize reports required versus placed study sessions per subject,
// highest priority first.
func Summarize(subjects []Subject, prefs Preferences, days []Day) Coverage {
	placed := make(map[string]int)
	for _, d := range days {
		for _, s := range d.Sessions {
			if !s.IsStudy() {
				continue
			}
			key := s.SubjectID
			if key == "" {
				key = s.SubjectName
			}
			placed[key]++
		}
	}

	cov := Coverage{
		Subjects: make([]SubjectCoverage, 0, len(subjects)),
		Capacity: MaxSessionsPerDay(prefs) * DaysPerWeek,
	}
	for _, s := range rankSubjects(subjects) {
		key := s.ID
		if key == "" {
			key = s.Name
		}
		needed := SessionsNeeded(s, prefs.SessionDuration)
		got := placed[key]
		if got > needed {
			got = needed
		}
		placed[key] -= got
		cov.Subjects = append(cov.Subjects, SubjectCoverage{
			SubjectID: s.ID,
			Name:      s.Name,
			Priority:  Score(s),
			Needed:    needed,
			Placed:    got,
			Dropped:   needed - got,
		})
		cov.Needed += needed
		cov.Placed += got
		cov.Dropped += needed - got
	}
	cov.Saturated = cov.Needed > cov.Capacity
	return cov
}
