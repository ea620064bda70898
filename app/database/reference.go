package database

import (
	"database/sql"
	"fmt"

	"banrai-schools/app/models"
)

// LoadReferenceData loads the static capability tables and the read-only
// weekly schedule. Any failure here is a configuration error: the caller must
// abort the run before attempting any assignment.
func LoadReferenceData(db *sql.DB) (*models.ReferenceData, error) {
	teachers, err := loadTeachers(db)
	if err != nil {
		return nil, fmt.Errorf("load teachers: %w", err)
	}

	if err := loadTeacherSubjects(db, teachers); err != nil {
		return nil, fmt.Errorf("load teacher subjects: %w", err)
	}

	schedule, err := loadSchedule(db)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}

	subjectNames, err := loadSubjectNames(db)
	if err != nil {
		return nil, fmt.Errorf("load subjects: %w", err)
	}

	nameToID := make(map[string]string, len(teachers))
	for id, t := range teachers {
		nameToID[t.DisplayName] = id
	}

	ref := &models.ReferenceData{
		Teachers:     teachers,
		Schedule:     schedule,
		NameToID:     nameToID,
		SubjectNames: subjectNames,
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return ref, nil
}

func loadTeachers(db *sql.DB) (map[string]*models.Teacher, error) {
	query := `SELECT id, display_name, level, is_last_resort, is_active, created_at, updated_at
			  FROM teachers WHERE is_active = true`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teachers := make(map[string]*models.Teacher)
	for rows.Next() {
		t := &models.Teacher{}
		if err := rows.Scan(&t.ID, &t.DisplayName, &t.Level, &t.IsLastResort,
			&t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		teachers[t.ID] = t
	}
	return teachers, rows.Err()
}

func loadTeacherSubjects(db *sql.DB, teachers map[string]*models.Teacher) error {
	query := `SELECT teacher_id, subject_id FROM teacher_subjects`

	rows, err := db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var teacherID, subjectID string
		if err := rows.Scan(&teacherID, &subjectID); err != nil {
			return err
		}
		if t, ok := teachers[teacherID]; ok {
			t.Subjects = append(t.Subjects, subjectID)
		}
	}
	return rows.Err()
}

func loadSchedule(db *sql.DB) ([]models.ScheduleEntry, error) {
	query := `SELECT teacher_id, day, period, class_id, subject_id FROM schedule_entries`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ScheduleEntry
	for rows.Next() {
		var e models.ScheduleEntry
		if err := rows.Scan(&e.TeacherID, &e.Day, &e.Period, &e.ClassID, &e.SubjectID); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func loadSubjectNames(db *sql.DB) (map[string]string, error) {
	query := `SELECT id, name FROM subjects`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

// GetCurrentTerm returns the term flagged current, or nil when no term is
// configured. The term bounds the term-to-date fairness window.
func GetCurrentTerm(db *sql.DB) (*models.Term, error) {
	term := &models.Term{}
	query := `SELECT id, name, to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'), is_current
			  FROM terms WHERE is_current = true LIMIT 1`

	var start, end string
	err := db.QueryRow(query).Scan(&term.ID, &term.Name, &start, &end, &term.IsCurrent)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := term.StartDate.UnmarshalJSON([]byte(`"` + start + `"`)); err != nil {
		return nil, err
	}
	if err := term.EndDate.UnmarshalJSON([]byte(`"` + end + `"`)); err != nil {
		return nil, err
	}
	return term, nil
}
