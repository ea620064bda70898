package models

// ScheduleEntry represents a single lesson in the read-only weekly schedule.
// The schedule table is produced by an external conversion process.
type ScheduleEntry struct {
	TeacherID string `json:"teacher_id" db:"teacher_id"`
	Day       string `json:"day" db:"day"`
	Period    int    `json:"period" db:"period"`
	ClassID   string `json:"class_id" db:"class_id"`
	SubjectID string `json:"subject_id" db:"subject_id"`
}

// Slot identifies one (teacher, day, period) cell of the weekly schedule.
type Slot struct {
	TeacherID string
	Day       string
	Period    int
}

// Slot returns the occupancy cell of this entry.
func (e ScheduleEntry) Slot() Slot {
	return Slot{TeacherID: e.TeacherID, Day: e.Day, Period: e.Period}
}
