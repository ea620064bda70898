package models

import "time"

// AssignmentKey is the composite identity of an assignment record. Records
// are matched on this key during reconciliation, never on row position.
type AssignmentKey struct {
	Date            string
	AbsentTeacherID string
	Day             string
	Period          int
}

// AssignmentRecord links one absence period to a substitute (or to none).
// It is staged as pending, and only the reconciliation gate moves it to
// finalized. Stale pending records are marked expired, never deleted.
type AssignmentRecord struct {
	ID              string           `json:"id" db:"id"`
	Date            string           `json:"date" db:"date"`
	AbsentTeacherID string           `json:"absent_teacher_id" db:"absent_teacher_id"`
	Day             string           `json:"day" db:"day"`
	Period          int              `json:"period" db:"period"`
	ClassID         string           `json:"class_id" db:"class_id"`
	SubjectID       string           `json:"subject_id" db:"subject_id"`
	SubstituteID    *string          `json:"substitute_id" db:"substitute_id"`
	Status          AssignmentStatus `json:"status" db:"status"`
	Reason          string           `json:"reason" db:"reason"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" db:"updated_at"`
}

// Key returns the composite key of the record.
func (r *AssignmentRecord) Key() AssignmentKey {
	return AssignmentKey{
		Date:            r.Date,
		AbsentTeacherID: r.AbsentTeacherID,
		Day:             r.Day,
		Period:          r.Period,
	}
}

// HasSubstitute reports whether a substitute was found for the period.
func (r *AssignmentRecord) HasSubstitute() bool {
	return r.SubstituteID != nil && *r.SubstituteID != ""
}

// Substitute returns the substitute teacher id, or "" for a coverage gap.
func (r *AssignmentRecord) Substitute() string {
	if r.SubstituteID == nil {
		return ""
	}
	return *r.SubstituteID
}
