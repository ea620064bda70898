package services

import "banrai-schools/app/models"

// loadTracker tracks slot occupancy and day-level load for one date of a run.
// It is seeded from the regular weekly schedule and mutated as substitute
// duties are committed, so each period sees the commitments of the ones
// processed before it. Never shared across runs.
type loadTracker struct {
	day      string
	occupied map[models.Slot]bool
	loads    map[string]int
}

func newLoadTracker(day string, schedule []models.ScheduleEntry) *loadTracker {
	t := &loadTracker{
		day:      day,
		occupied: make(map[models.Slot]bool),
		loads:    make(map[string]int),
	}
	for _, e := range schedule {
		t.occupied[e.Slot()] = true
		if e.Day == day {
			t.loads[e.TeacherID]++
		}
	}
	return t
}

// Commit records a substitute duty, occupying the slot and raising the
// teacher's day-level load for subsequent periods.
func (t *loadTracker) Commit(teacherID, day string, period int) {
	t.occupied[models.Slot{TeacherID: teacherID, Day: day, Period: period}] = true
	t.loads[teacherID]++
}

// Occupied reports whether the teacher already holds the (day, period) slot,
// either on their regular schedule or from a duty committed this run.
func (t *loadTracker) Occupied(teacherID, day string, period int) bool {
	return t.occupied[models.Slot{TeacherID: teacherID, Day: day, Period: period}]
}

// Load returns the teacher's day-level load: regular periods plus substitute
// periods committed so far this run.
func (t *loadTracker) Load(teacherID string) int {
	return t.loads[teacherID]
}

// EligibleCandidates applies the hard exclusion rules for one absence period
// and returns the surviving candidate subset. Rules are evaluated in order and
// the first hit removes the candidate; no score is computed for excluded
// candidates. The result may be empty, which is a coverage gap, not an error.
func EligibleCandidates(
	period models.AbsencePeriod,
	pool []string,
	absent map[string]bool,
	tracker *loadTracker,
	dailyCap int,
) []string {
	var eligible []string
	for _, id := range pool {
		if absent[id] {
			continue
		}
		if tracker.Occupied(id, period.Day, period.Period) {
			continue
		}
		if tracker.Load(id) >= dailyCap {
			continue
		}
		eligible = append(eligible, id)
	}
	return eligible
}
