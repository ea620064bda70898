package services

import "banrai-schools/app/models"

// FairnessWindow selects which historical window feeds the fairness penalty.
type FairnessWindow string

const (
	WindowAllTime FairnessWindow = "all_time"
	WindowTerm    FairnessWindow = "term"
)

// FairnessSnapshot holds per-teacher cumulative substitution counts replayed
// from the finalized history at run start. It is immutable for the duration
// of a run; new history rows are appended only after finalization.
type FairnessSnapshot struct {
	allTime map[string]int
	term    map[string]int
}

// BuildFairnessSnapshot replays finalized assignment records into cumulative
// counts. Records without a substitute (coverage gaps) count toward nobody.
// Term counts include only records dated inside the given term; a nil term
// leaves the term window empty.
func BuildFairnessSnapshot(history []models.AssignmentRecord, term *models.Term) *FairnessSnapshot {
	s := &FairnessSnapshot{
		allTime: make(map[string]int),
		term:    make(map[string]int),
	}
	for i := range history {
		r := &history[i]
		if !r.HasSubstitute() {
			continue
		}
		sub := r.Substitute()
		s.allTime[sub]++
		if term != nil && term.Contains(r.Date) {
			s.term[sub]++
		}
	}
	return s
}

// AllTimeCount returns the teacher's total substitution count.
func (s *FairnessSnapshot) AllTimeCount(teacherID string) int {
	return s.allTime[teacherID]
}

// TermCount returns the teacher's substitution count within the current term.
func (s *FairnessSnapshot) TermCount(teacherID string) int {
	return s.term[teacherID]
}

// Count returns the count for the configured fairness window.
func (s *FairnessSnapshot) Count(teacherID string, window FairnessWindow) int {
	if window == WindowTerm {
		return s.term[teacherID]
	}
	return s.allTime[teacherID]
}
