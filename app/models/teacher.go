package models

import "time"

// Teacher represents a member of the teaching staff and their capabilities.
type Teacher struct {
	ID           string    `json:"id" db:"id"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	Subjects     []string  `json:"subjects"`
	Level        Level     `json:"level" db:"level"`
	IsLastResort bool      `json:"is_last_resort" db:"is_last_resort"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// CanTeach reports whether the teacher is qualified for the subject.
func (t *Teacher) CanTeach(subjectID string) bool {
	for _, s := range t.Subjects {
		if s == subjectID {
			return true
		}
	}
	return false
}
