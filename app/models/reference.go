package models

import "fmt"

// ReferenceData bundles the static capability tables and the read-only weekly
// schedule. It is loaded once at run start; corrupt or missing reference data
// aborts the run before any assignment attempt.
type ReferenceData struct {
	Teachers     map[string]*Teacher `json:"teachers"`
	Schedule     []ScheduleEntry     `json:"schedule"`
	NameToID     map[string]string   `json:"name_to_id"`
	SubjectNames map[string]string   `json:"subject_names"`
}

// TeacherIDs returns the ids of all active teachers, the full candidate pool.
func (r *ReferenceData) TeacherIDs() []string {
	ids := make([]string, 0, len(r.Teachers))
	for id := range r.Teachers {
		ids = append(ids, id)
	}
	return ids
}

// DisplayName resolves a teacher id to its display name, falling back to the
// id itself for unknown teachers.
func (r *ReferenceData) DisplayName(teacherID string) string {
	if t, ok := r.Teachers[teacherID]; ok {
		return t.DisplayName
	}
	return teacherID
}

// SubjectName resolves a subject id to its display name.
func (r *ReferenceData) SubjectName(subjectID string) string {
	if name, ok := r.SubjectNames[subjectID]; ok {
		return name
	}
	return subjectID
}

// Validate checks that the reference tables are usable. Any failure here is a
// configuration error and fatal to the run.
func (r *ReferenceData) Validate() error {
	if len(r.Teachers) == 0 {
		return fmt.Errorf("reference data: no teachers loaded")
	}
	if len(r.Schedule) == 0 {
		return fmt.Errorf("reference data: no schedule entries loaded")
	}
	if len(r.NameToID) == 0 {
		return fmt.Errorf("reference data: empty display-name map")
	}
	for name, id := range r.NameToID {
		if _, ok := r.Teachers[id]; !ok {
			return fmt.Errorf("reference data: name %q maps to unknown teacher %q", name, id)
		}
	}
	for _, e := range r.Schedule {
		if _, ok := r.Teachers[e.TeacherID]; !ok {
			return fmt.Errorf("reference data: schedule entry references unknown teacher %q", e.TeacherID)
		}
		if e.Period < 1 {
			return fmt.Errorf("reference data: schedule entry for %q has invalid period %d", e.TeacherID, e.Period)
		}
		if DayIndex(e.Day) < 0 {
			return fmt.Errorf("reference data: schedule entry for %q has invalid day %q", e.TeacherID, e.Day)
		}
	}
	return nil
}
